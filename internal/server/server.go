// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/handler"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// shutdownTimeout bounds the graceful shutdown of all servers.
const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := new(server)

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	servers.logger = logger

	return servers, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(
		ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.listen(); err != nil {
		return err
	}

	return s.serve(ctx)
}

func (s *server) Shutdown(ctx context.Context) {
	// finish HTTP server
	if s.httpServer != nil {
		s.httpServer.Shutdown(ctx)
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown(ctx)
	}
}

// listen binds every configured address so that a taken port fails startup
// instead of a background goroutine.
func (s *server) listen() error {
	// check if any server was created
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersToRun
	}

	if s.httpServer != nil {
		if err := s.httpServer.Listen(); err != nil {
			return err
		}
	}
	if s.gRPCServer != nil {
		if err := s.gRPCServer.Listen(); err != nil {
			if s.httpServer != nil {
				_ = s.httpServer.listener.Close()
			}
			return err
		}
	}

	return nil
}

// serve runs the listening servers until ctx is done or one of them fails,
// then shuts all of them down.
func (s *server) serve(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	// launch all created servers
	if s.httpServer != nil {
		g.Go(s.httpServer.RunServer)
	}
	if s.gRPCServer != nil {
		g.Go(s.gRPCServer.RunServer)
	}

	// listen for stop signals
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		// finish started servers
		s.Shutdown(shutdownCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
