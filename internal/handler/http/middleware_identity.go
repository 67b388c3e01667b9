// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// withIdentity authenticates the request through the Identity Provider and
// stores the resulting identity in the request context. The request logger
// gains an owner_id field.
//
// The passphrase buffer lives only for the duration of the request: it is
// wiped once the downstream handler returns.
func (h *Handler) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.identity.Identify(r)
		if err != nil {
			writeError(w, r, err, "Handler.withIdentity")
			return
		}
		defer identity.Wipe()

		l := logger.FromRequest(r).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("owner_id", identity.OwnerID)
		})

		ctx := utils.WithIdentity(l.WithContext(r.Context()), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identityFromRequest returns the identity stored by withIdentity, writing a
// 401 when there is none.
func identityFromRequest(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoIdentityInContext, "identityFromRequest")
		return models.Identity{}, false
	}
	return identity, true
}
