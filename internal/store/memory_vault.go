// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

const memoryScheme = "memory://"

// memoryVaultStore keeps entries in a map guarded by a single mutex. Each
// operation is one critical section, which gives the same atomicity as a
// single SQL statement. Used for tests and local demos.
type memoryVaultStore struct {
	mu      sync.RWMutex
	entries map[string]models.VaultEntry
	ids     IDGenerator
	now     func() time.Time
}

// NewMemoryVaultStore returns an empty in-process [VaultStore].
func NewMemoryVaultStore() VaultStore {
	return &memoryVaultStore{
		entries: make(map[string]models.VaultEntry),
		ids:     utils.NewUUIDGenerator(),
		now:     utcNow,
	}
}

func (m *memoryVaultStore) Create(ctx context.Context, ownerID, envelope string) (string, error) {
	if err := ctxError(ctx); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	id := m.ids.Generate()
	m.entries[id] = models.VaultEntry{
		ID:        id,
		OwnerID:   ownerID,
		Envelope:  envelope,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return id, nil
}

func (m *memoryVaultStore) List(ctx context.Context, ownerID string) ([]models.VaultEntry, error) {
	if err := ctxError(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	entries := make([]models.VaultEntry, 0)
	for _, entry := range m.entries {
		if entry.OwnerID == ownerID {
			entries = append(entries, entry)
		}
	}
	m.mu.RUnlock()

	// newest first; UUIDv7 ids break ties between entries created in the
	// same instant
	slices.SortFunc(entries, func(a, b models.VaultEntry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})

	return entries, nil
}

func (m *memoryVaultStore) Get(ctx context.Context, entryID, ownerID string) (models.VaultEntry, error) {
	if err := ctxError(ctx); err != nil {
		return models.VaultEntry{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[entryID]
	if !ok || entry.OwnerID != ownerID {
		return models.VaultEntry{}, ErrNotFound
	}

	return entry, nil
}

func (m *memoryVaultStore) Update(ctx context.Context, entryID, ownerID, envelope string) (models.VaultEntry, error) {
	if err := ctxError(ctx); err != nil {
		return models.VaultEntry{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[entryID]
	if !ok || entry.OwnerID != ownerID {
		return models.VaultEntry{}, ErrNotFound
	}

	entry.Envelope = envelope
	entry.UpdatedAt = m.now()
	m.entries[entryID] = entry

	return entry, nil
}

func (m *memoryVaultStore) Delete(ctx context.Context, entryID, ownerID string) error {
	if err := ctxError(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[entryID]
	if !ok || entry.OwnerID != ownerID {
		return ErrNotFound
	}

	delete(m.entries, entryID)
	return nil
}

// Ping implements [HealthChecker]. The map is always reachable.
func (m *memoryVaultStore) Ping(context.Context) error {
	return nil
}

// ctxError reports a done context the way the SQL and Mongo stores report a
// faulted connection.
func ctxError(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}
