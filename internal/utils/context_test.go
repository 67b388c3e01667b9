// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-pass-vault/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestIdentityCtxKey(t *testing.T) {
	if IdentityCtxKey.String() != "identity" {
		t.Errorf("expected 'identity', got '%s'", IdentityCtxKey.String())
	}
}

func TestGetIdentityFromContext_Success(t *testing.T) {
	want := models.Identity{OwnerID: "64b7f0c2a1d3e4f5a6b7c8d9", Passphrase: []byte("secret")}
	ctx := WithIdentity(context.Background(), want)

	identity, ok := GetIdentityFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if identity.OwnerID != want.OwnerID {
		t.Errorf("expected owner %q, got %q", want.OwnerID, identity.OwnerID)
	}
	if string(identity.Passphrase) != "secret" {
		t.Errorf("expected passphrase to be carried, got %q", identity.Passphrase)
	}
}

func TestGetIdentityFromContext_SharesPassphraseBuffer(t *testing.T) {
	passphrase := []byte("secret")
	ctx := WithIdentity(context.Background(), models.Identity{OwnerID: "owner", Passphrase: passphrase})

	identity, _ := GetIdentityFromContext(ctx)
	identity.Wipe()

	for _, b := range passphrase {
		if b != 0 {
			t.Fatal("expected wiping the context identity to wipe the original buffer")
		}
	}
}

func TestGetIdentityFromContext_Missing(t *testing.T) {
	identity, ok := GetIdentityFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if identity.OwnerID != "" {
		t.Errorf("expected empty owner, got %q", identity.OwnerID)
	}
}

func TestGetIdentityFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), IdentityCtxKey, "not-an-identity")

	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetIdentityFromContext_EmptyOwner(t *testing.T) {
	ctx := WithIdentity(context.Background(), models.Identity{Passphrase: []byte("secret")})

	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for identity without owner, got true")
	}
}
