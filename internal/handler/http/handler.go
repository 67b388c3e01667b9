// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/identity"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

type Handler struct {
	services *service.Services
	identity identity.Provider
	health   store.HealthChecker

	// limiter is nil when rate limiting is disabled.
	limiter        *ownerLimiter
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, provider identity.Provider, health store.HealthChecker, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	h := &Handler{
		services:       services,
		identity:       provider,
		health:         health,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
	if cfg.RateLimitRPS > 0 {
		h.limiter = newOwnerLimiter(rate.Limit(cfg.RateLimitRPS), max(cfg.RateLimitBurst, 1), ownerLimiterTTL)
	}

	return h
}
