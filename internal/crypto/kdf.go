// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	// SaltSize is the KDF salt length in bytes.
	SaltSize = 16

	// IVSize is the CBC initialization vector length in bytes.
	IVSize = 16

	// DefaultIterations is the PBKDF2-SHA256 work factor used for every
	// envelope written by this module (OWASP 2023 guidance). The wire format
	// does not carry it, so changing it makes existing envelopes unreadable.
	DefaultIterations = 600_000

	// LegacyIterations is the work factor of envelopes written by the
	// browser client. Only migration tooling should use it.
	LegacyIterations = 1_000
)

// pbkdf2KDF is the PBKDF2-HMAC-SHA256 implementation of [KDF].
type pbkdf2KDF struct {
	iterations int
}

// NewKDF returns the module-wide KDF with [DefaultIterations].
func NewKDF() KDF {
	return NewPBKDF2(DefaultIterations)
}

// NewPBKDF2 returns a PBKDF2-HMAC-SHA256 KDF with an explicit work factor.
// Non-positive values fall back to [DefaultIterations].
func NewPBKDF2(iterations int) KDF {
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	return &pbkdf2KDF{iterations: iterations}
}

// Derive implements [KDF].
func (k *pbkdf2KDF) Derive(passphrase, salt []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, ErrInvalidSaltLength
	}

	return pbkdf2.Key(passphrase, salt, k.iterations, KeySize, sha256.New), nil
}

// Iterations implements [KDF].
func (k *pbkdf2KDF) Iterations() int {
	return k.iterations
}
