// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-pass-vault server.
//
// The primary abstraction is [ServerAdapter], which decouples the CLI from
// the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) over the envelope endpoints: the client encrypts
// locally and the server only ever sees envelopes.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrNotFound] for
// 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// go-pass-vault server.
type ServerAdapter interface {
	// SetToken stores the bearer token issued by the Identity Provider.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// ListEnvelopes returns the owner's stored entries, newest first.
	ListEnvelopes(ctx context.Context) ([]models.VaultEntry, error)

	// StoreEnvelope uploads a locally produced envelope and returns the new
	// entry id.
	StoreEnvelope(ctx context.Context, envelope string) (string, error)

	// ReplaceEnvelope overwrites the envelope of an existing entry.
	ReplaceEnvelope(ctx context.Context, entryID, envelope string) (models.VaultEntry, error)

	// DeleteEnvelope removes an entry.
	DeleteEnvelope(ctx context.Context, entryID string) error

	// GeneratePassword asks the server's generator for a password.
	GeneratePassword(ctx context.Context, opts models.PasswordOptions) (models.GeneratedPassword, error)

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
