// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid usage")
	ErrNoPassphrase   = errors.New("no passphrase: set GOPASS_PASSPHRASE or run in a terminal")
	ErrNothingToCopy  = errors.New("entry has no password")
	ErrPickCancelled  = errors.New("no entry selected")

	errClipboardUnsupported = errors.New("no clipboard utility available")
)
