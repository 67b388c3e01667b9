// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists vault entries.
//
// A store never sees plaintext and never performs cryptography: it keeps the
// envelope wire string exactly as handed over and scopes every single-entry
// operation by owner. Backends are selected from the DSN scheme, see
// [NewStorages].
package store

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// VaultStore is the owner-scoped persistence contract shared by the
// PostgreSQL, SQLite, MongoDB and in-memory backends.
//
// Every single-entry operation matches on both entryID and ownerID in one
// atomic backend operation, so a foreign entry is indistinguishable from a
// missing one.
type VaultStore interface {
	// Create stores a new entry and returns its id.
	Create(ctx context.Context, ownerID, envelope string) (string, error)

	// List returns all entries of ownerID, newest-created first. An empty
	// slice is a valid result.
	List(ctx context.Context, ownerID string) ([]models.VaultEntry, error)

	// Get returns one entry or [ErrNotFound].
	Get(ctx context.Context, entryID, ownerID string) (models.VaultEntry, error)

	// Update replaces the envelope of an entry and refreshes UpdatedAt.
	Update(ctx context.Context, entryID, ownerID, envelope string) (models.VaultEntry, error)

	// Delete removes an entry or reports [ErrNotFound].
	Delete(ctx context.Context, entryID, ownerID string) error
}

// HealthChecker reports whether the backend is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
