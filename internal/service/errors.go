// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrValidation marks caller input the service refused before touching
	// the store: a blank title, a malformed owner id, a missing passphrase,
	// impossible generator options or a malformed envelope.
	ErrValidation = errors.New("validation error")

	ErrVersionIsNotSpecified = errors.New("version is not specified")
)
