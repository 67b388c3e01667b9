// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"net/url"
)

// validate checks that the final merged [StructuredConfig] can start a
// server. All problems are reported at once.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		errs = append(errs, ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		errs = append(errs, ErrInvalidServerConfigs)
	}

	if cfg.Server.RateLimitRPS < 0 || cfg.Server.RateLimitBurst < 0 {
		errs = append(errs, ErrInvalidServerConfigs)
	}

	if cfg.Workers.DecryptConcurrency < 0 || cfg.Workers.HealthInterval < 0 {
		errs = append(errs, ErrInvalidWorkerConfigs)
	}

	return errors.Join(errs...)
}

func (cfg *ClientConfig) validate() error {
	u, err := url.Parse(cfg.Adapter.BaseURL)
	if cfg.Adapter.BaseURL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Adapter.Token == "" {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
