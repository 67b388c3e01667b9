// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrDecryptionFailure is the single error returned by Decrypt. It covers
	// a wrong passphrase, bad padding, a corrupted or foreign ciphertext and
	// plaintext that is not a well-formed record.
	ErrDecryptionFailure = errors.New("decryption failed")

	// ErrInvalidSaltLength is returned by [KDF.Derive] for a salt that is not
	// [SaltSize] bytes long.
	ErrInvalidSaltLength = errors.New("invalid salt length")

	// ErrRandomSource is returned when the random source cannot supply salt or
	// IV bytes.
	ErrRandomSource = errors.New("random source failure")
)
