// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// createdResponse is returned by every create endpoint.
type createdResponse struct {
	ID string `json:"id"`
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	list, err := h.services.VaultService.ListItems(r.Context(), identity.OwnerID, identity.Passphrase)
	if err != nil {
		writeError(w, r, err, "Handler.listItems")
		return
	}

	_, _ = utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	record, ok := decodeBody[models.VaultRecord](w, r, "Handler.createItem")
	if !ok {
		return
	}

	entryID, err := h.services.VaultService.CreateItem(r.Context(), record, identity.Passphrase, identity.OwnerID)
	if err != nil {
		writeError(w, r, err, "Handler.createItem")
		return
	}

	_, _ = utils.WriteJSON(w, createdResponse{ID: entryID}, http.StatusCreated)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	item, err := h.services.VaultService.GetItem(r.Context(), chi.URLParam(r, "id"), identity.OwnerID, identity.Passphrase)
	if err != nil {
		writeError(w, r, err, "Handler.getItem")
		return
	}

	_, _ = utils.WriteJSON(w, item, http.StatusOK)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	record, ok := decodeBody[models.VaultRecord](w, r, "Handler.updateItem")
	if !ok {
		return
	}

	entry, err := h.services.VaultService.UpdateItem(r.Context(), chi.URLParam(r, "id"), record, identity.Passphrase, identity.OwnerID)
	if err != nil {
		writeError(w, r, err, "Handler.updateItem")
		return
	}

	_, _ = utils.WriteJSON(w, models.EntryRef{ID: entry.ID, UpdatedAt: entry.UpdatedAt}, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.services.VaultService.DeleteItem(r.Context(), chi.URLParam(r, "id"), identity.OwnerID); err != nil {
		writeError(w, r, err, "Handler.deleteItem")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeBody decodes the JSON request body into a T. A body that does not
// decode is answered with 400.
func decodeBody[T any](w http.ResponseWriter, r *http.Request, fn string) (T, bool) {
	var v T
	if err := utils.DecodeJSON(w, r, &v); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrValidation, err), fn)
		return v, false
	}
	return v, true
}
