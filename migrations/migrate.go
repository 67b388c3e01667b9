// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the vault schema for every SQL dialect and
// applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

// Dialect names a migration set. The value doubles as the directory inside
// the embedded filesystem.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package globals
var gooseMu sync.Mutex

// ErrUnknownDialect is returned for a dialect without a migration set.
var ErrUnknownDialect = errors.New("unknown migration dialect")

func gooseDialect(d Dialect) (string, error) {
	switch d {
	case Postgres:
		return "pgx", nil
	case SQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, d)
	}
}

// Migrate brings db up to the latest schema version for dialect.
func Migrate(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	name, err := gooseDialect(dialect)
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)

	if err = goose.SetDialect(name); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err = goose.Up(db, string(dialect)); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
