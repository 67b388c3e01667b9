// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the vault's envelope encryption.
//
// Each record is encrypted on its own with key material derived from the
// owner's passphrase and a fresh salt:
//
//	Salt, IV  = 16 random bytes each        (per call)
//	Key       = PBKDF2-SHA256(passphrase, Salt)
//	CT        = AES-256-CBC(Key, IV, PKCS7(JSON(record)))
//	Envelope  = {CT, IV, Salt}
//
// Neither the passphrase nor the derived key outlives a single call.
package crypto

import "github.com/MKhiriev/go-pass-vault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KDF turns a passphrase and a salt into a fixed-length symmetric key.
type KDF interface {
	// Derive returns a [KeySize]-byte key. The result is deterministic for the
	// same inputs. A salt that is not [SaltSize] bytes long is rejected with
	// [ErrInvalidSaltLength].
	Derive(passphrase, salt []byte) ([]byte, error)

	// Iterations reports the work factor the KDF was built with.
	Iterations() int
}

// EnvelopeCodec encrypts plaintext records into envelopes and back.
type EnvelopeCodec interface {
	// Encrypt serializes record and encrypts it under a key derived from
	// passphrase and a fresh salt. Every call produces a new salt and IV.
	Encrypt(record models.VaultRecord, passphrase []byte) (models.Envelope, error)

	// Decrypt reverses Encrypt. Any failure is reported as
	// [ErrDecryptionFailure]; a wrong passphrase and a corrupted envelope are
	// indistinguishable.
	Decrypt(envelope models.Envelope, passphrase []byte) (models.VaultRecord, error)
}
