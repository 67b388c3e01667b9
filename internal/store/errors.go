// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by every [VaultStore] implementation. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when the requested entry does not exist for the
	// given owner. An entry that exists but belongs to someone else, and an
	// id the backend cannot even parse, are reported the same way.
	ErrNotFound = errors.New("vault entry not found")

	// ErrStorageUnavailable is returned when the backend cannot be reached or
	// fails for reasons unrelated to the request itself.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUnsupportedDSN is returned by [NewStorages] for a DSN whose scheme
	// does not map to any backend.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)

// Low-level database operation errors. They are wrapped together with
// [ErrStorageUnavailable] so the service layer only has to look for the
// latter.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan vault entry row")

	// ErrScanningRows is returned when iterating a multi-row result fails
	// mid-result-set.
	ErrScanningRows = errors.New("failed to scan vault entry rows")
)
