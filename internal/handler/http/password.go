// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

func (h *Handler) generatePassword(w http.ResponseWriter, r *http.Request) {
	opts, ok := decodeBody[models.PasswordOptions](w, r, "Handler.generatePassword")
	if !ok {
		return
	}

	passwords := h.services.PasswordService
	password, err := passwords.Generate(opts)
	if err != nil {
		writeError(w, r, err, "Handler.generatePassword")
		return
	}

	strength := passwords.Strength(password)
	_, _ = utils.WriteJSON(w, models.GeneratedPassword{
		Password: password,
		Strength: strength,
		Label:    passwords.StrengthLabel(strength),
	}, http.StatusOK)
}
