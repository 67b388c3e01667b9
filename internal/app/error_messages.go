// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-pass-vault server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgUnauthorized is returned when the bearer token is missing, expired
	// or cannot be verified.
	MsgUnauthorized = "missing or invalid bearer token"

	// MsgNoIdentityProvided is returned when a vault handler runs without
	// the identity middleware having stored an identity in the context.
	MsgNoIdentityProvided = "no identity provided"

	// MsgVaultItemNotFound is returned when a read, update, or delete
	// operation targets an entry that does not exist for the caller.
	MsgVaultItemNotFound = "vault item not found"

	// MsgDecryptionFailed is returned when a stored envelope cannot be opened
	// with the supplied passphrase.
	MsgDecryptionFailed = "vault item could not be decrypted"

	// MsgStorageUnavailable is returned when the vault store cannot be
	// reached.
	MsgStorageUnavailable = "storage unavailable"

	// MsgTooManyRequests is returned when the caller exceeded the per-owner
	// request rate.
	MsgTooManyRequests = "too many requests"
)
