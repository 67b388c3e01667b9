// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

type Services struct {
	VaultService    VaultService
	EnvelopeService EnvelopeService
	PasswordService PasswordService
	AppInfoService  AppInfoService
}

func NewServices(vaultStore store.VaultStore, codec crypto.EnvelopeCodec, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	logger.Info().Msg("creating new services...")

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		VaultService:    NewVaultService(codec, vaultStore, cfg.Workers, logger),
		EnvelopeService: NewEnvelopeService(vaultStore, logger),
		PasswordService: NewPasswordService(),
		AppInfoService:  appInfoService,
	}, nil
}
