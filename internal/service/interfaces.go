// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the vault's use cases. Services are stateless: every
// dependency is injected through the constructor and each call is an
// independent unit of work.
package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// VaultService encrypts records on the way in, decrypts them on the way out
// and never lets one owner touch another owner's entries.
type VaultService interface {
	// CreateItem encrypts record under passphrase and stores it for ownerID.
	// It returns the new entry id.
	CreateItem(ctx context.Context, record models.VaultRecord, passphrase []byte, ownerID string) (string, error)

	// ListItems decrypts every entry of ownerID, newest first. Entries that
	// fail to decrypt are left out and counted in VaultItemList.Skipped.
	ListItems(ctx context.Context, ownerID string, passphrase []byte) (models.VaultItemList, error)

	// GetItem decrypts a single entry. A missing or foreign entry yields
	// store.ErrNotFound; an entry that does not decrypt yields
	// crypto.ErrDecryptionFailure.
	GetItem(ctx context.Context, entryID, ownerID string, passphrase []byte) (models.VaultItem, error)

	// UpdateItem re-encrypts record with a fresh salt and IV and replaces the
	// stored envelope.
	UpdateItem(ctx context.Context, entryID string, record models.VaultRecord, passphrase []byte, ownerID string) (models.VaultEntry, error)

	// DeleteItem removes an entry of ownerID.
	DeleteItem(ctx context.Context, entryID, ownerID string) error
}

// EnvelopeService stores envelopes that were encrypted by the client. The
// server checks their shape but never decrypts them.
type EnvelopeService interface {
	StoreEnvelope(ctx context.Context, ownerID, wire string) (string, error)
	ListEnvelopes(ctx context.Context, ownerID string) ([]models.VaultEntry, error)
	ReplaceEnvelope(ctx context.Context, entryID, ownerID, wire string) (models.VaultEntry, error)
}

// PasswordService generates random passwords and scores their strength.
type PasswordService interface {
	Generate(opts models.PasswordOptions) (string, error)
	Strength(password string) int
	StrengthLabel(score int) string
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
