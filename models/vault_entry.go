// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// VaultEntry is the persisted unit of the vault. Stores only ever see this
// type; the Envelope field is an opaque wire string (see [Envelope.Encode]).
type VaultEntry struct {
	// ID is assigned by the store on creation and is stable for the lifetime
	// of the entry.
	ID string `json:"id"`

	// OwnerID is the opaque identity that created the entry. Immutable.
	OwnerID string `json:"owner_id"`

	// Envelope is replaced wholesale on every update.
	Envelope string `json:"envelope"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VaultItem is a decrypted entry handed to the boundary layer.
type VaultItem struct {
	ID        string      `json:"id"`
	Record    VaultRecord `json:"record"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// VaultItemList is the result of listing an owner's vault. Skipped counts the
// entries that could not be decrypted and were left out of Items.
type VaultItemList struct {
	Items   []VaultItem `json:"items"`
	Skipped int         `json:"skipped"`
}

// EntryRef identifies an entry after a write.
type EntryRef struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}
