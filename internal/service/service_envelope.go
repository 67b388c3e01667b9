// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

type envelopeService struct {
	store     store.VaultStore
	validator validators.Validator

	logger *logger.Logger
}

func NewEnvelopeService(vaultStore store.VaultStore, logger *logger.Logger) EnvelopeService {
	return &envelopeService{
		store:     vaultStore,
		validator: validators.NewVaultValidator(),
		logger:    logger,
	}
}

func (s *envelopeService) StoreEnvelope(ctx context.Context, ownerID, wire string) (string, error) {
	canonical, err := s.prepare(ctx, ownerID, wire)
	if err != nil {
		return "", err
	}

	entryID, err := s.store.Create(ctx, ownerID, canonical)
	if err != nil {
		return "", fmt.Errorf("error storing envelope: %w", err)
	}

	return entryID, nil
}

func (s *envelopeService) ListEnvelopes(ctx context.Context, ownerID string) ([]models.VaultEntry, error) {
	if err := s.validateOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	entries, err := s.store.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing envelopes: %w", err)
	}

	return entries, nil
}

func (s *envelopeService) ReplaceEnvelope(ctx context.Context, entryID, ownerID, wire string) (models.VaultEntry, error) {
	canonical, err := s.prepare(ctx, ownerID, wire)
	if err != nil {
		return models.VaultEntry{}, err
	}

	entry, err := s.store.Update(ctx, entryID, ownerID, canonical)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("error replacing envelope: %w", err)
	}

	return entry, nil
}

// prepare validates the owner and re-encodes wire in canonical field order.
func (s *envelopeService) prepare(ctx context.Context, ownerID, wire string) (string, error) {
	if err := s.validateOwner(ctx, ownerID); err != nil {
		return "", err
	}

	envelope, err := models.ParseEnvelope(wire)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "envelopeService.prepare").Msg("rejected malformed envelope")
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}

	canonical, err := envelope.Encode()
	if err != nil {
		return "", fmt.Errorf("error encoding envelope: %w", err)
	}

	return canonical, nil
}

func (s *envelopeService) validateOwner(ctx context.Context, ownerID string) error {
	if err := s.validator.Validate(ctx, models.Identity{OwnerID: ownerID}, validators.FieldOwnerID); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
