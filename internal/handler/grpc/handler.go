// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc holds the gRPC transport of the vault server. It exposes the
// standard grpc.health.v1.Health service whose status follows the vault
// store's reachability.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// VaultServiceName is the service name reported by the health service next
// to the overall ("") status.
const VaultServiceName = "gopassvault.Vault"

// Handler is the root gRPC transport handler.
//
// A handler instance is created once at startup and shared by the gRPC
// server and the health watcher worker.
type Handler struct {
	// health answers grpc.health.v1 Check and Watch calls.
	health *health.Server

	// logger is used for diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler]. The vault reports NOT_SERVING until the
// first successful store ping flips it.
func NewHandler(logger *logger.Logger) *Handler {
	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	h.health.SetServingStatus(VaultServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the handler's services to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// SetServing flips the reported status of the vault and of the server as a
// whole.
func (h *Handler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(VaultServiceName, status)
}

// Shutdown reports NOT_SERVING for every service and ignores later updates.
func (h *Handler) Shutdown() {
	h.logger.Debug().Str("func", "grpc.Handler.Shutdown").Msg("health service shutting down")
	h.health.Shutdown()
}
