// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	myGRPC "github.com/MKhiriev/go-pass-vault/internal/handler/grpc"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	address         string
	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer()
	handler.Register(server)

	return &grpcServer{
		handler: handler,
		address: cfg.GRPCAddress,
		server:  server,
		logger:  logger,
	}
}

func (g *grpcServer) Listen() error {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("gRPC server listen on %s: %w", g.address, err)
	}
	g.gRPCNetListener = listener
	return nil
}

func (g *grpcServer) Addr() string {
	if g.gRPCNetListener == nil {
		return g.address
	}
	return g.gRPCNetListener.Addr().String()
}

func (g *grpcServer) RunServer() error {
	g.logger.Info().Str("address", g.Addr()).Msg("Launching GRPC server")
	if err := g.server.Serve(g.gRPCNetListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		g.logger.Err(err).Msg("gRPC server Serve")
		return err
	}
	return nil
}

// Shutdown reports NOT_SERVING, then drains in-flight calls. Health Watch
// streams never end on their own, so the server is stopped hard once ctx
// expires.
func (g *grpcServer) Shutdown(ctx context.Context) {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		g.logger.Warn().Msg("gRPC graceful stop timed out, forcing")
		g.server.Stop()
	}
}
