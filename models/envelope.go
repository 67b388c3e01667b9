// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// EnvelopeIVSize is the length of the CBC initialization vector in bytes.
	EnvelopeIVSize = 16

	// EnvelopeSaltSize is the length of the KDF salt in bytes.
	EnvelopeSaltSize = 16

	envelopeBlockSize = 16
)

// ErrMalformedEnvelope is returned when an envelope blob does not follow the
// {"ct","iv","s"} wire format.
var ErrMalformedEnvelope = errors.New("malformed envelope")

// Envelope is the only form in which secret content is persisted or
// transmitted: the ciphertext of a serialized [VaultRecord] together with
// the IV and salt used to produce it.
//
// An Envelope is immutable once created. Updating a record produces a new
// Envelope with a new salt, IV and ciphertext.
type Envelope struct {
	Ciphertext []byte
	IV         []byte
	Salt       []byte
}

// envelopeWire is the persisted text form. Field order is part of the
// compatibility contract.
type envelopeWire struct {
	CT string `json:"ct"`
	IV string `json:"iv"`
	S  string `json:"s"`
}

// MarshalJSON encodes e as {"ct": base64, "iv": hex, "s": hex}.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	return json.Marshal(envelopeWire{
		CT: base64.StdEncoding.EncodeToString(e.Ciphertext),
		IV: hex.EncodeToString(e.IV),
		S:  hex.EncodeToString(e.Salt),
	})
}

// UnmarshalJSON decodes the wire form and validates field sizes.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var wire envelopeWire

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&wire); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}

	if wire.CT == "" || wire.IV == "" || wire.S == "" {
		return fmt.Errorf("%w: ct, iv and s are required", ErrMalformedEnvelope)
	}

	ct, err := base64.StdEncoding.DecodeString(wire.CT)
	if err != nil {
		return fmt.Errorf("%w: ct: %w", ErrMalformedEnvelope, err)
	}
	iv, err := hex.DecodeString(wire.IV)
	if err != nil {
		return fmt.Errorf("%w: iv: %w", ErrMalformedEnvelope, err)
	}
	salt, err := hex.DecodeString(wire.S)
	if err != nil {
		return fmt.Errorf("%w: s: %w", ErrMalformedEnvelope, err)
	}

	parsed := Envelope{Ciphertext: ct, IV: iv, Salt: salt}
	if err = parsed.Validate(); err != nil {
		return err
	}

	*e = parsed
	return nil
}

// Validate checks the structural invariants of the envelope: 16-byte IV and
// salt, and a non-empty ciphertext made of whole cipher blocks.
func (e Envelope) Validate() error {
	if len(e.IV) != EnvelopeIVSize {
		return fmt.Errorf("%w: iv must be %d bytes, got %d", ErrMalformedEnvelope, EnvelopeIVSize, len(e.IV))
	}
	if len(e.Salt) != EnvelopeSaltSize {
		return fmt.Errorf("%w: salt must be %d bytes, got %d", ErrMalformedEnvelope, EnvelopeSaltSize, len(e.Salt))
	}
	if len(e.Ciphertext) == 0 || len(e.Ciphertext)%envelopeBlockSize != 0 {
		return fmt.Errorf("%w: ciphertext length %d is not a positive multiple of %d", ErrMalformedEnvelope, len(e.Ciphertext), envelopeBlockSize)
	}

	return nil
}

// Encode returns the wire string stored verbatim in [VaultEntry.Envelope].
func (e Envelope) Encode() (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

// ParseEnvelope decodes a wire string produced by [Envelope.Encode] or by any
// other implementation following the same format.
func ParseEnvelope(wire string) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal([]byte(wire), &e); err != nil {
		if errors.Is(err, ErrMalformedEnvelope) {
			return Envelope{}, err
		}
		return Envelope{}, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}

	return e, nil
}
