// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// Backend names the storage implementation selected from a DSN.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
	BackendMongo    Backend = "mongodb"
	BackendMemory   Backend = "memory"
)

// Storages groups the vault store with the hooks the server needs around it.
type Storages struct {
	// VaultStore is the owner-scoped entry store.
	VaultStore VaultStore

	// Health is pinged by the health watcher and the /api/health/ endpoint.
	Health HealthChecker

	// Backend reports which implementation was selected.
	Backend Backend

	closeFn func(ctx context.Context) error
}

// Close releases the underlying connection, if any.
func (s *Storages) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// BackendFromDSN maps a DSN scheme to a [Backend].
func BackendFromDSN(dsn string) (Backend, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres, nil
	case strings.HasPrefix(dsn, sqliteScheme), strings.HasPrefix(dsn, "file:"):
		return BackendSQLite, nil
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return BackendMongo, nil
	case strings.HasPrefix(dsn, memoryScheme):
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
	}
}

// NewStorages connects to the backend named by cfg.DSN, applies SQL
// migrations where relevant and returns the ready-to-use store.
func NewStorages(ctx context.Context, cfg config.DB, logger *logger.Logger) (*Storages, error) {
	backend, err := BackendFromDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("func", "NewStorages").Str("backend", string(backend)).Msg("creating new storages...")

	switch backend {
	case BackendPostgres, BackendSQLite:
		var db *DB
		if backend == BackendPostgres {
			db, err = NewConnectPostgres(ctx, cfg, logger)
		} else {
			db, err = NewConnectSQLite(ctx, cfg, logger)
		}
		if err != nil {
			return nil, fmt.Errorf("%s connection error: %w", backend, err)
		}

		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		return &Storages{
			VaultStore: NewVaultRepository(db, logger),
			Health:     db,
			Backend:    backend,
			closeFn:    func(context.Context) error { return db.Close() },
		}, nil

	case BackendMongo:
		mongoStore, err := NewConnectMongo(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("mongo connection error: %w", err)
		}

		return &Storages{
			VaultStore: mongoStore,
			Health:     mongoStore,
			Backend:    backend,
			closeFn:    mongoStore.Close,
		}, nil

	default:
		memoryStore := NewMemoryVaultStore()
		return &Storages{
			VaultStore: memoryStore,
			Health:     memoryStore.(HealthChecker),
			Backend:    backend,
		}, nil
	}
}

// redactDSN hides credentials before a DSN reaches an error or a log line.
func redactDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return "<redacted>"
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***" + rest[at:]
	}
	return scheme + "://" + rest
}
