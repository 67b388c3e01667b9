// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrNoIdentityInContext is reported when a vault handler is reached
	// without the identity middleware in front of it.
	ErrNoIdentityInContext = errors.New("no identity in request context")

	// ErrRateLimited is reported when an owner exceeded the request rate.
	ErrRateLimited = errors.New("rate limit exceeded")
)
