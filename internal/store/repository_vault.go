// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	sqlMaxRetries  = 3
	sqlRetryBase   = 25 * time.Millisecond
	sqlRetryMaxGap = 500 * time.Millisecond
)

// IDGenerator produces new entry ids.
type IDGenerator interface {
	Generate() string
}

// vaultRepository is the database/sql implementation of [VaultStore] shared
// by PostgreSQL and SQLite. Dialect differences live in [DB].
//
// Errors the dialect's [ErrorClassificator] marks as retryable are retried
// with bounded exponential backoff; everything else is returned at once.
type vaultRepository struct {
	db      *DB
	ids     IDGenerator
	now     func() time.Time
	backoff func() retry.Backoff
	logger  *logger.Logger
}

// NewVaultRepository constructs a [VaultStore] backed by db. Entry ids are
// UUIDv7, so they sort by creation time.
func NewVaultRepository(db *DB, logger *logger.Logger) VaultStore {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		db:      db,
		ids:     utils.NewUUIDGenerator(),
		now:     utcNow,
		backoff: defaultSQLBackoff,
		logger:  logger,
	}
}

func utcNow() time.Time {
	// PostgreSQL keeps microseconds; truncating keeps returned values equal
	// to what a later read yields.
	return time.Now().UTC().Truncate(time.Microsecond)
}

func defaultSQLBackoff() retry.Backoff {
	b := retry.NewExponential(sqlRetryBase)
	b = retry.WithCappedDuration(sqlRetryMaxGap, b)
	return retry.WithMaxRetries(sqlMaxRetries, b)
}

// Create implements [VaultStore].
func (r *vaultRepository) Create(ctx context.Context, ownerID, envelope string) (string, error) {
	log := logger.FromContext(ctx)

	id := r.ids.Generate()
	query, args, err := buildInsertEntryQuery(r.db.builder(), id, ownerID, envelope, r.now())
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.Create").Msg("failed to build insert query")
		return "", err
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.Create").Msg("failed to insert vault entry")
		return "", fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrExecutingStatement, err)
	}

	return id, nil
}

// List implements [VaultStore].
func (r *vaultRepository) List(ctx context.Context, ownerID string) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListEntriesQuery(r.db.builder(), ownerID)
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.List").Msg("failed to build select query")
		return nil, err
	}

	var entries []models.VaultEntry
	err = r.withRetry(ctx, func(ctx context.Context) error {
		var queryErr error
		entries, queryErr = r.queryEntries(ctx, query, args)
		return queryErr
	})
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.List").Msg("failed to list vault entries")
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return entries, nil
}

func (r *vaultRepository) queryEntries(ctx context.Context, query string, args []any) ([]models.VaultEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.VaultEntry, 0, 16)
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// Get implements [VaultStore].
func (r *vaultRepository) Get(ctx context.Context, entryID, ownerID string) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	if !isEntryUUID(entryID) {
		return models.VaultEntry{}, ErrNotFound
	}

	query, args, err := buildGetEntryQuery(r.db.builder(), entryID, ownerID)
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.Get").Msg("failed to build select query")
		return models.VaultEntry{}, err
	}

	var entry models.VaultEntry
	err = r.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		entry, scanErr = scanEntry(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.VaultEntry{}, ErrNotFound
	case err != nil:
		log.Err(err).Str("func", "vaultRepository.Get").Str("entry_id", entryID).Msg("failed to get vault entry")
		return models.VaultEntry{}, fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrExecutingQuery, err)
	}

	return entry, nil
}

// Update implements [VaultStore]. The id and owner match, the write and the
// read-back happen in one UPDATE ... RETURNING statement.
func (r *vaultRepository) Update(ctx context.Context, entryID, ownerID, envelope string) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	if !isEntryUUID(entryID) {
		return models.VaultEntry{}, ErrNotFound
	}

	query, args, err := buildUpdateEntryQuery(r.db.builder(), entryID, ownerID, envelope, r.now())
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.Update").Msg("failed to build update query")
		return models.VaultEntry{}, err
	}

	var entry models.VaultEntry
	err = r.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		entry, scanErr = scanEntry(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.VaultEntry{}, ErrNotFound
	case err != nil:
		log.Err(err).Str("func", "vaultRepository.Update").Str("entry_id", entryID).Msg("failed to update vault entry")
		return models.VaultEntry{}, fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrExecutingStatement, err)
	}

	return entry, nil
}

// Delete implements [VaultStore].
func (r *vaultRepository) Delete(ctx context.Context, entryID, ownerID string) error {
	log := logger.FromContext(ctx)

	if !isEntryUUID(entryID) {
		return ErrNotFound
	}

	query, args, err := buildDeleteEntryQuery(r.db.builder(), entryID, ownerID)
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.Delete").Msg("failed to build delete query")
		return err
	}

	var affected int64
	err = r.withRetry(ctx, func(ctx context.Context) error {
		res, execErr := r.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.Delete").Str("entry_id", entryID).Msg("failed to delete vault entry")
		return fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *vaultRepository) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	attempt := 0
	return retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if err == nil || r.db.errorClassificator == nil {
			return err
		}

		if r.db.errorClassificator.Classify(err) == Retryable {
			logger.FromContext(ctx).Warn().Err(err).
				Str("func", "vaultRepository.withRetry").
				Int("attempt", attempt).
				Msg("retryable database error")
			return retry.RetryableError(err)
		}

		return err
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.VaultEntry, error) {
	var (
		entry              models.VaultEntry
		createdAt, updated sqlTime
	)
	err := row.Scan(&entry.ID, &entry.OwnerID, &entry.Envelope, &createdAt, &updated)
	if err != nil {
		return models.VaultEntry{}, err
	}

	entry.CreatedAt = createdAt.Time.UTC()
	entry.UpdatedAt = updated.Time.UTC()
	return entry, nil
}

// sqliteTimeLayouts are the text forms go-sqlite3 writes time.Time values in.
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

// sqlTime scans a timestamp column. SQLite hands back text instead of
// time.Time when it cannot see the declared column type, as with RETURNING.
type sqlTime struct {
	time.Time
}

func (t *sqlTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (t *sqlTime) parse(s string) error {
	for _, layout := range sqliteTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unparsable timestamp %q", s)
}

func isEntryUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
