// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

// HealthWatcher pings the vault store on a fixed interval and reports the
// result to a [StatusSetter], typically the gRPC health service.
type HealthWatcher struct {
	store    store.HealthChecker
	status   StatusSetter
	interval time.Duration
	timeout  time.Duration

	logger *logger.Logger
}

func NewHealthWatcher(health store.HealthChecker, status StatusSetter, cfg config.Workers, logger *logger.Logger) *HealthWatcher {
	interval := cfg.HealthInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}

	return &HealthWatcher{
		store:    health,
		status:   status,
		interval: interval,
		timeout:  min(interval, 5*time.Second),
		logger:   logger,
	}
}

// Run checks once immediately, then on every tick until ctx is cancelled.
func (p *HealthWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	serving := p.check(ctx)
	p.status.SetServing(serving)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := p.check(ctx)
			if ctx.Err() != nil {
				return
			}
			if now != serving {
				p.logger.Info().Str("func", "HealthWatcher.Run").Bool("serving", now).Msg("vault store health changed")
			}
			serving = now
			p.status.SetServing(serving)
		}
	}
}

func (p *HealthWatcher) check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.store.Ping(pingCtx); err != nil {
		p.logger.Warn().Err(err).Str("func", "HealthWatcher.check").Msg("vault store ping failed")
		return false
	}
	return true
}
