// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for carrying the request identity in a context,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the identity middleware stores the
// authenticated [models.Identity] of a request.
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// GetIdentityFromContext retrieves the request identity from the context.
//
// Returns the identity and an ok flag:
//   - ok == true: an identity with a non-empty owner id is present
//   - ok == false: value is missing, has an unexpected type or no owner
//
// Example usage:
//
//	identity, ok := utils.GetIdentityFromContext(ctx)
//	if !ok {
//	    // request did not pass the identity middleware
//	}
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	if !ok || identity.OwnerID == "" {
		return models.Identity{}, false
	}
	return identity, true
}
