// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

const (
	ownerA = "aaaaaaaaaaaaaaaaaaaaaaaa"
	ownerB = "bbbbbbbbbbbbbbbbbbbbbbbb"
)

// runVaultStoreSuite checks the behaviour every VaultStore implementation
// shares, whatever the backend.
func runVaultStoreSuite(t *testing.T, newStore func(t *testing.T) VaultStore) {
	t.Run("create then get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.Create(ctx, ownerA, "env-1")
		require.NoError(t, err)
		require.NotEmpty(t, id)

		entry, err := s.Get(ctx, id, ownerA)
		require.NoError(t, err)
		assert.Equal(t, id, entry.ID)
		assert.Equal(t, ownerA, entry.OwnerID)
		assert.Equal(t, "env-1", entry.Envelope)
		assert.False(t, entry.CreatedAt.IsZero())
		assert.True(t, entry.CreatedAt.Equal(entry.UpdatedAt))
	})

	t.Run("list is newest first", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var ids []string
		for i := range 3 {
			id, err := s.Create(ctx, ownerA, fmt.Sprintf("env-%d", i))
			require.NoError(t, err)
			ids = append(ids, id)
		}

		entries, err := s.List(ctx, ownerA)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, ids[2], entries[0].ID)
		assert.Equal(t, ids[1], entries[1].ID)
		assert.Equal(t, ids[0], entries[2].ID)
	})

	t.Run("list of unknown owner is empty", func(t *testing.T) {
		s := newStore(t)

		entries, err := s.List(context.Background(), ownerB)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("owners are isolated", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.Create(ctx, ownerA, "secret-of-a")
		require.NoError(t, err)

		entries, err := s.List(ctx, ownerB)
		require.NoError(t, err)
		assert.Empty(t, entries)

		_, err = s.Get(ctx, id, ownerB)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.Update(ctx, id, ownerB, "overwritten")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, s.Delete(ctx, id, ownerB), ErrNotFound)

		entry, err := s.Get(ctx, id, ownerA)
		require.NoError(t, err)
		assert.Equal(t, "secret-of-a", entry.Envelope)
	})

	t.Run("update replaces envelope and keeps created_at", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.Create(ctx, ownerA, "old")
		require.NoError(t, err)
		before, err := s.Get(ctx, id, ownerA)
		require.NoError(t, err)

		updated, err := s.Update(ctx, id, ownerA, "new")
		require.NoError(t, err)
		assert.Equal(t, id, updated.ID)
		assert.Equal(t, "new", updated.Envelope)
		assert.True(t, before.CreatedAt.Equal(updated.CreatedAt))
		assert.False(t, updated.UpdatedAt.Before(before.UpdatedAt))

		after, err := s.Get(ctx, id, ownerA)
		require.NoError(t, err)
		assert.Equal(t, "new", after.Envelope)
		assert.True(t, updated.UpdatedAt.Equal(after.UpdatedAt))
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.Create(ctx, ownerA, "env")
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, id, ownerA))

		_, err = s.Get(ctx, id, ownerA)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, id, ownerA), ErrNotFound)
	})

	t.Run("unknown and malformed ids are not found", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, id := range []string{"", "missing", "0192f0c1-8c6e-7a4b-9d3e-1f2a3b4c5d6e"} {
			_, err := s.Get(ctx, id, ownerA)
			assert.ErrorIs(t, err, ErrNotFound, "id %q", id)
		}
	})

	t.Run("concurrent creates get distinct ids", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const n = 20
		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			ids = make(map[string]struct{}, n)
		)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id, err := s.Create(ctx, ownerA, fmt.Sprintf("env-%d", i))
				assert.NoError(t, err)
				mu.Lock()
				ids[id] = struct{}{}
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Len(t, ids, n)
		entries, err := s.List(ctx, ownerA)
		require.NoError(t, err)
		assert.Len(t, entries, n)
	})
}

func TestMemoryVaultStore_Suite(t *testing.T) {
	runVaultStoreSuite(t, func(t *testing.T) VaultStore {
		return NewMemoryVaultStore()
	})
}

func TestSQLiteVaultStore_Suite(t *testing.T) {
	runVaultStoreSuite(t, func(t *testing.T) VaultStore {
		dsn := "sqlite://" + filepath.Join(t.TempDir(), "vault.db")

		storages, err := NewStorages(context.Background(), config.DB{DSN: dsn}, logger.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = storages.Close(context.Background()) })

		require.Equal(t, BackendSQLite, storages.Backend)
		require.NoError(t, storages.Health.Ping(context.Background()))
		return storages.VaultStore
	})
}
