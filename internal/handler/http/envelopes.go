// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

// envelopeRequest carries an envelope produced by a client that encrypts
// locally. The server stores it without decrypting.
type envelopeRequest struct {
	Envelope string `json:"envelope"`
}

func (h *Handler) listEnvelopes(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	entries, err := h.services.EnvelopeService.ListEnvelopes(r.Context(), identity.OwnerID)
	if err != nil {
		writeError(w, r, err, "Handler.listEnvelopes")
		return
	}

	_, _ = utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) storeEnvelope(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	req, ok := decodeBody[envelopeRequest](w, r, "Handler.storeEnvelope")
	if !ok {
		return
	}

	entryID, err := h.services.EnvelopeService.StoreEnvelope(r.Context(), identity.OwnerID, req.Envelope)
	if err != nil {
		writeError(w, r, err, "Handler.storeEnvelope")
		return
	}

	_, _ = utils.WriteJSON(w, createdResponse{ID: entryID}, http.StatusCreated)
}

func (h *Handler) replaceEnvelope(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	req, ok := decodeBody[envelopeRequest](w, r, "Handler.replaceEnvelope")
	if !ok {
		return
	}

	entry, err := h.services.EnvelopeService.ReplaceEnvelope(r.Context(), chi.URLParam(r, "id"), identity.OwnerID, req.Envelope)
	if err != nil {
		writeError(w, r, err, "Handler.replaceEnvelope")
		return
	}

	_, _ = utils.WriteJSON(w, entry, http.StatusOK)
}
