// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without identity
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
		r.Get("/api/health/", h.checkHealth)
		r.Post("/api/password/generate", h.generatePassword)
	})

	// vault routes: every call is owner-scoped and most of them run the KDF
	router.Group(func(r chi.Router) {
		r.Use(h.withIdentity, h.withRateLimit)

		r.Get("/api/vault/", h.listItems)
		r.Post("/api/vault/", h.createItem)
		r.Get("/api/vault/{id}", h.getItem)
		r.Put("/api/vault/{id}", h.updateItem)
		r.Delete("/api/vault/{id}", h.deleteItem)

		r.Get("/api/envelopes/", h.listEnvelopes)
		r.Post("/api/envelopes/", h.storeEnvelope)
		r.Put("/api/envelopes/{id}", h.replaceEnvelope)
		r.Delete("/api/envelopes/{id}", h.deleteItem)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
