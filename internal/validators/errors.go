// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle            = errors.New("title is required")
	ErrInvalidOwnerID        = errors.New("invalid owner id")
	ErrEmptyPassphrase       = errors.New("passphrase is required")
	ErrInvalidPasswordLength = errors.New("invalid password length")
	ErrEmptyPasswordCharset  = errors.New("at least one character class must be selected")
)
