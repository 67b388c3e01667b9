// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Identity is what the Identity Provider supplies for an authenticated
// session: a stable owner id and the raw vault passphrase.
//
// Identity values are request-scoped. The passphrase must never be stored
// or forwarded to a store; call [Identity.Wipe] once the request is done.
type Identity struct {
	OwnerID    string
	Passphrase []byte
}

// HasPassphrase reports whether a passphrase was supplied with the session.
func (i Identity) HasPassphrase() bool {
	return len(i.Passphrase) > 0
}

// Wipe zeroes the passphrase bytes in place.
func (i Identity) Wipe() {
	for idx := range i.Passphrase {
		i.Passphrase[idx] = 0
	}
}
