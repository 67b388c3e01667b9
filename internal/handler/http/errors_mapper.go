// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/identity"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

// errorStatusMap lists the errors with a dedicated status. Anything else,
// including query building and scanning failures, is a 500.
var errorStatusMap = map[error]int{
	service.ErrValidation: http.StatusBadRequest,

	identity.ErrMissingToken: http.StatusUnauthorized,
	identity.ErrInvalidToken: http.StatusUnauthorized,
	ErrNoIdentityInContext:   http.StatusUnauthorized,
	ErrRateLimited:           http.StatusTooManyRequests,

	store.ErrNotFound:           http.StatusNotFound,
	crypto.ErrDecryptionFailure: http.StatusUnprocessableEntity,
	store.ErrStorageUnavailable: http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError picks the response text for err. Only validation errors
// echo their cause; everything else gets a fixed message.
func messageFromError(err error, status int) string {
	switch status {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusUnauthorized:
		return app.MsgUnauthorized
	case http.StatusTooManyRequests:
		return app.MsgTooManyRequests
	case http.StatusNotFound:
		return app.MsgVaultItemNotFound
	case http.StatusUnprocessableEntity:
		return app.MsgDecryptionFailed
	case http.StatusServiceUnavailable:
		return app.MsgStorageUnavailable
	default:
		return app.MsgInternalServerError
	}
}

// writeError logs err and writes the mapped status and message.
func writeError(w http.ResponseWriter, r *http.Request, err error, fn string) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", fn).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, messageFromError(err, status), status)
}
