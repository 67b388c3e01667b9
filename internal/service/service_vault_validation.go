// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validation.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService
}

// VaultValidationService rejects bad input with [ErrValidation] before it
// reaches the wrapped VaultService.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultValidator(),
	}
}

func (v *VaultValidationService) Wrap(inner VaultService) VaultService {
	v.inner = inner
	return v
}

func (v *VaultValidationService) CreateItem(ctx context.Context, record models.VaultRecord, passphrase []byte, ownerID string) (string, error) {
	if err := v.validateRecord(ctx, record); err != nil {
		return "", err
	}
	if err := v.validateIdentity(ctx, ownerID, passphrase); err != nil {
		return "", err
	}

	return v.inner.CreateItem(ctx, record, passphrase, ownerID)
}

func (v *VaultValidationService) ListItems(ctx context.Context, ownerID string, passphrase []byte) (models.VaultItemList, error) {
	if err := v.validateIdentity(ctx, ownerID, passphrase); err != nil {
		return models.VaultItemList{}, err
	}

	return v.inner.ListItems(ctx, ownerID, passphrase)
}

func (v *VaultValidationService) GetItem(ctx context.Context, entryID, ownerID string, passphrase []byte) (models.VaultItem, error) {
	if err := v.validateIdentity(ctx, ownerID, passphrase); err != nil {
		return models.VaultItem{}, err
	}

	return v.inner.GetItem(ctx, entryID, ownerID, passphrase)
}

func (v *VaultValidationService) UpdateItem(ctx context.Context, entryID string, record models.VaultRecord, passphrase []byte, ownerID string) (models.VaultEntry, error) {
	if err := v.validateRecord(ctx, record); err != nil {
		return models.VaultEntry{}, err
	}
	if err := v.validateIdentity(ctx, ownerID, passphrase); err != nil {
		return models.VaultEntry{}, err
	}

	return v.inner.UpdateItem(ctx, entryID, record, passphrase, ownerID)
}

func (v *VaultValidationService) DeleteItem(ctx context.Context, entryID, ownerID string) error {
	if err := v.validator.Validate(ctx, models.Identity{OwnerID: ownerID}, validators.FieldOwnerID); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.DeleteItem(ctx, entryID, ownerID)
}

func (v *VaultValidationService) validateRecord(ctx context.Context, record models.VaultRecord) error {
	if err := v.validator.Validate(ctx, record); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func (v *VaultValidationService) validateIdentity(ctx context.Context, ownerID string, passphrase []byte) error {
	identity := models.Identity{OwnerID: ownerID, Passphrase: passphrase}
	if err := v.validator.Validate(ctx, identity); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
