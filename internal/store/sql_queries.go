// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const vaultEntriesTable = "vault_entries"

var vaultEntryColumns = []string{"id", "owner_id", "envelope", "created_at", "updated_at"}

func buildInsertEntryQuery(b sq.StatementBuilderType, id, ownerID, envelope string, now time.Time) (string, []any, error) {
	query, args, err := b.
		Insert(vaultEntriesTable).
		Columns(vaultEntryColumns...).
		Values(id, ownerID, envelope, now, now).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildListEntriesQuery(b sq.StatementBuilderType, ownerID string) (string, []any, error) {
	query, args, err := b.
		Select(vaultEntryColumns...).
		From(vaultEntriesTable).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildGetEntryQuery(b sq.StatementBuilderType, entryID, ownerID string) (string, []any, error) {
	query, args, err := b.
		Select(vaultEntryColumns...).
		From(vaultEntriesTable).
		Where(sq.Eq{"id": entryID}).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateEntryQuery replaces the envelope and returns the updated row in
// the same statement, so the ownership check and the write are one step.
func buildUpdateEntryQuery(b sq.StatementBuilderType, entryID, ownerID, envelope string, now time.Time) (string, []any, error) {
	query, args, err := b.
		Update(vaultEntriesTable).
		Set("envelope", envelope).
		Set("updated_at", now).
		Where(sq.Eq{"id": entryID}).
		Where(sq.Eq{"owner_id": ownerID}).
		Suffix("RETURNING " + strings.Join(vaultEntryColumns, ", ")).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildDeleteEntryQuery(b sq.StatementBuilderType, entryID, ownerID string) (string, []any, error) {
	query, args, err := b.
		Delete(vaultEntriesTable).
		Where(sq.Eq{"id": entryID}).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
