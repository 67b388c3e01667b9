// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) checkHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "Handler.checkHealth").Msg("vault store is unreachable")
		utils.WriteError(w, app.MsgStorageUnavailable, http.StatusServiceUnavailable)
		return
	}

	_, _ = utils.WriteJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}
