// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"regexp"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldTitle targets the mandatory title of a plaintext vault record.
	FieldTitle = "title"

	// FieldOwnerID targets the owner id carried by an identity.
	FieldOwnerID = "owner_id"

	// FieldPassphrase targets the vault passphrase carried by an identity.
	FieldPassphrase = "passphrase"

	// FieldLength targets the requested length of a generated password.
	FieldLength = "length"

	// FieldCharset targets the character classes of a generated password.
	FieldCharset = "charset"
)

// Bounds for generated passwords.
const (
	MinPasswordLength = 4
	MaxPasswordLength = 128
)

// ownerIDPattern is the id format issued by the Identity Provider.
var ownerIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// VaultValidator implements [Validator] for the vault's inputs:
// models.VaultRecord, models.Identity and models.PasswordOptions. Both value
// and pointer forms are accepted.
type VaultValidator struct{}

// NewVaultValidator constructs a VaultValidator and returns it as the
// Validator interface.
func NewVaultValidator() Validator {
	return &VaultValidator{}
}

// Validate dispatches to the type-specific check. With no fields every rule
// for the type is applied.
func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultRecord:
		return v.validateRecord(value, fields...)
	case *models.VaultRecord:
		return v.validateRecord(*value, fields...)

	case models.Identity:
		return v.validateIdentity(value, fields...)
	case *models.Identity:
		return v.validateIdentity(*value, fields...)

	case models.PasswordOptions:
		return v.validatePasswordOptions(value, fields...)
	case *models.PasswordOptions:
		return v.validatePasswordOptions(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultValidator) validateRecord(record models.VaultRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if !record.HasTitle() {
				return ErrEmptyTitle
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateIdentity(identity models.Identity, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOwnerID, FieldPassphrase}
	}

	for _, f := range fields {
		switch f {
		case FieldOwnerID:
			if !IsOwnerID(identity.OwnerID) {
				return ErrInvalidOwnerID
			}
		case FieldPassphrase:
			if !identity.HasPassphrase() {
				return ErrEmptyPassphrase
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validatePasswordOptions(opts models.PasswordOptions, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLength, FieldCharset}
	}

	for _, f := range fields {
		switch f {
		case FieldLength:
			if opts.Length < MinPasswordLength || opts.Length > MaxPasswordLength {
				return fmt.Errorf("%w: must be between %d and %d, got %d",
					ErrInvalidPasswordLength, MinPasswordLength, MaxPasswordLength, opts.Length)
			}
		case FieldCharset:
			if !opts.IncludeLetters && !opts.IncludeNumbers && !opts.IncludeSymbols {
				return ErrEmptyPasswordCharset
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// IsOwnerID reports whether id has the 24-hex-character owner id format.
func IsOwnerID(id string) bool {
	return ownerIDPattern.MatchString(id)
}
