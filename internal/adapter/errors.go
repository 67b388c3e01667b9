// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Sentinel errors mapped from server HTTP status codes by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("vault item not found")
	ErrUndecryptable       = errors.New("vault item cannot be decrypted")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrServerUnavailable   = errors.New("server storage unavailable")
	ErrInternalServerError = errors.New("internal server error")
)
