// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

type vaultService struct {
	codec crypto.EnvelopeCodec
	store store.VaultStore

	decryptConcurrency int

	logger *logger.Logger
}

// NewVaultService builds the vault access service. Inputs are validated
// before they reach the codec or the store.
func NewVaultService(codec crypto.EnvelopeCodec, vaultStore store.VaultStore, cfg config.Workers, logger *logger.Logger) VaultService {
	concurrency := cfg.DecryptConcurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	return NewVaultValidationService().Wrap(&vaultService{
		codec:              codec,
		store:              vaultStore,
		decryptConcurrency: concurrency,
		logger:             logger,
	})
}

func (s *vaultService) CreateItem(ctx context.Context, record models.VaultRecord, passphrase []byte, ownerID string) (string, error) {
	wire, err := s.seal(record, passphrase)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "vaultService.CreateItem").Msg("failed to encrypt vault record")
		return "", err
	}

	entryID, err := s.store.Create(ctx, ownerID, wire)
	if err != nil {
		return "", fmt.Errorf("error creating vault item: %w", err)
	}

	return entryID, nil
}

// decryptResult is the outcome of decrypting one entry. Each list goroutine
// owns exactly one slot.
type decryptResult struct {
	item models.VaultItem
	err  error
}

func (s *vaultService) ListItems(ctx context.Context, ownerID string, passphrase []byte) (models.VaultItemList, error) {
	log := logger.FromContext(ctx)

	entries, err := s.store.List(ctx, ownerID)
	if err != nil {
		return models.VaultItemList{}, fmt.Errorf("error listing vault items: %w", err)
	}

	results := make([]decryptResult, len(entries))

	var g errgroup.Group
	g.SetLimit(s.decryptConcurrency)
	for i, entry := range entries {
		g.Go(func() error {
			item, openErr := s.open(entry, passphrase)
			results[i] = decryptResult{item: item, err: openErr}
			return nil
		})
	}
	_ = g.Wait()

	list := models.VaultItemList{Items: make([]models.VaultItem, 0, len(entries))}
	for i, res := range results {
		if res.err != nil {
			list.Skipped++
			log.Warn().Err(res.err).
				Str("func", "vaultService.ListItems").
				Str("entry_id", entries[i].ID).
				Msg("skipping vault entry that could not be decrypted")
			continue
		}
		list.Items = append(list.Items, res.item)
	}

	return list, nil
}

func (s *vaultService) GetItem(ctx context.Context, entryID, ownerID string, passphrase []byte) (models.VaultItem, error) {
	entry, err := s.store.Get(ctx, entryID, ownerID)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("error getting vault item: %w", err)
	}

	item, err := s.open(entry, passphrase)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "vaultService.GetItem").
			Str("entry_id", entryID).
			Msg("vault entry could not be decrypted")
		return models.VaultItem{}, err
	}

	return item, nil
}

func (s *vaultService) UpdateItem(ctx context.Context, entryID string, record models.VaultRecord, passphrase []byte, ownerID string) (models.VaultEntry, error) {
	wire, err := s.seal(record, passphrase)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "vaultService.UpdateItem").Msg("failed to encrypt vault record")
		return models.VaultEntry{}, err
	}

	entry, err := s.store.Update(ctx, entryID, ownerID, wire)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("error updating vault item: %w", err)
	}

	return entry, nil
}

func (s *vaultService) DeleteItem(ctx context.Context, entryID, ownerID string) error {
	if err := s.store.Delete(ctx, entryID, ownerID); err != nil {
		return fmt.Errorf("error deleting vault item: %w", err)
	}

	return nil
}

// seal encrypts record into its wire form. The store assigns ids, so a
// caller-supplied id is not encrypted.
func (s *vaultService) seal(record models.VaultRecord, passphrase []byte) (string, error) {
	envelope, err := s.codec.Encrypt(record.WithoutID(), passphrase)
	if err != nil {
		return "", fmt.Errorf("error encrypting vault record: %w", err)
	}

	wire, err := envelope.Encode()
	if err != nil {
		return "", fmt.Errorf("error encoding envelope: %w", err)
	}

	return wire, nil
}

// open turns a stored entry back into a plaintext item. A stored envelope
// that does not even parse is reported like any other decryption failure.
func (s *vaultService) open(entry models.VaultEntry, passphrase []byte) (models.VaultItem, error) {
	envelope, err := models.ParseEnvelope(entry.Envelope)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", crypto.ErrDecryptionFailure, err)
	}

	record, err := s.codec.Decrypt(envelope, passphrase)
	if err != nil {
		if !errors.Is(err, crypto.ErrDecryptionFailure) {
			err = fmt.Errorf("%w: %w", crypto.ErrDecryptionFailure, err)
		}
		return models.VaultItem{}, err
	}
	record.ID = entry.ID

	return models.VaultItem{
		ID:        entry.ID,
		Record:    record,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}, nil
}
