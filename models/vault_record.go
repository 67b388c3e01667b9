// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// VaultRecord is the plaintext form of a single secret.
//
// It exists only in memory for the duration of an encrypt or decrypt
// operation and is never handed to a store. The JSON tags define the
// serialized form that is encrypted inside an [Envelope]; they match the
// field names used by the browser client so that envelopes stay portable.
type VaultRecord struct {
	// ID is the store-assigned entry id. Empty until the record is persisted.
	ID string `json:"_id,omitempty"`

	// Title is the only mandatory field.
	Title string `json:"title"`

	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}

// HasTitle reports whether the record carries a non-blank title.
func (r VaultRecord) HasTitle() bool {
	return strings.TrimSpace(r.Title) != ""
}

// WithoutID returns a copy of r with the ID cleared. The id is never part of
// the encrypted payload because it is assigned by the store afterwards.
func (r VaultRecord) WithoutID() VaultRecord {
	r.ID = ""
	return r
}
