// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/MKhiriev/go-pass-vault/models"
)

// envelopeCodec is the AES-256-CBC implementation of [EnvelopeCodec].
type envelopeCodec struct {
	kdf KDF

	// random supplies salts and IVs. crypto/rand.Reader is safe for
	// concurrent use, so a single codec can serve parallel requests.
	random io.Reader
}

// CodecOption customizes an envelope codec.
type CodecOption func(*envelopeCodec)

// WithRandom replaces the random source. Intended for tests that need
// reproducible envelopes.
func WithRandom(r io.Reader) CodecOption {
	return func(c *envelopeCodec) {
		c.random = r
	}
}

// NewEnvelopeCodec constructs an [EnvelopeCodec] on top of kdf.
func NewEnvelopeCodec(kdf KDF, opts ...CodecOption) EnvelopeCodec {
	c := &envelopeCodec{
		kdf:    kdf,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Encrypt implements [EnvelopeCodec].
func (c *envelopeCodec) Encrypt(record models.VaultRecord, passphrase []byte) (models.Envelope, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(c.random, salt); err != nil {
		return models.Envelope{}, fmt.Errorf("%w: salt: %w", ErrRandomSource, err)
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return models.Envelope{}, fmt.Errorf("%w: iv: %w", ErrRandomSource, err)
	}

	key, err := c.kdf.Derive(passphrase, salt)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("derive key: %w", err)
	}
	defer wipe(key)

	plaintext, err := json.Marshal(record.WithoutID())
	if err != nil {
		return models.Envelope{}, fmt.Errorf("marshal record: %w", err)
	}
	defer wipe(plaintext)

	block, err := aes.NewCipher(key)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("create cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	defer wipe(padded)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return models.Envelope{
		Ciphertext: ciphertext,
		IV:         iv,
		Salt:       salt,
	}, nil
}

// Decrypt implements [EnvelopeCodec].
func (c *envelopeCodec) Decrypt(envelope models.Envelope, passphrase []byte) (models.VaultRecord, error) {
	if err := envelope.Validate(); err != nil {
		return models.VaultRecord{}, ErrDecryptionFailure
	}

	key, err := c.kdf.Derive(passphrase, envelope.Salt)
	if err != nil {
		return models.VaultRecord{}, ErrDecryptionFailure
	}
	defer wipe(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return models.VaultRecord{}, ErrDecryptionFailure
	}

	plaintext := make([]byte, len(envelope.Ciphertext))
	defer wipe(plaintext)
	cipher.NewCBCDecrypter(block, envelope.IV).CryptBlocks(plaintext, envelope.Ciphertext)

	unpadded, ok := pkcs7Unpad(plaintext, aes.BlockSize)
	if !ok {
		return models.VaultRecord{}, ErrDecryptionFailure
	}

	record, ok := decodeRecord(unpadded)
	if !ok {
		return models.VaultRecord{}, ErrDecryptionFailure
	}

	return record, nil
}

// decodeRecord accepts only a UTF-8 JSON object. Anything else is what a
// wrong key produces after a lucky padding check.
func decodeRecord(plaintext []byte) (models.VaultRecord, bool) {
	trimmed := bytes.TrimSpace(plaintext)
	if len(trimmed) == 0 || trimmed[0] != '{' || !utf8.Valid(trimmed) {
		return models.VaultRecord{}, false
	}

	var record models.VaultRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return models.VaultRecord{}, false
	}

	return record, true
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
