// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command named by args and returns when it is done.
	Run(ctx context.Context, args []string) error
}

// PassphraseSource supplies the vault passphrase. The caller owns the
// returned buffer and wipes it after use.
type PassphraseSource interface {
	Passphrase() ([]byte, error)
}

// Clipboard receives copied secrets.
type Clipboard interface {
	WriteAll(text string) error
}

// Picker lets the user choose one of the decrypted records and returns its
// id.
type Picker interface {
	Pick(records []models.VaultRecord) (string, error)
}
