// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package identity is the boundary to the external Identity Provider. It
// turns an inbound request into a [models.Identity]: the owner id comes from
// a verified bearer token and the vault passphrase from a request header.
package identity

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// PassphraseHeader carries the raw vault passphrase on vault routes.
const PassphraseHeader = "X-Vault-Passphrase"

var (
	// ErrMissingToken is returned when the request has no Authorization header.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken is returned for a token that is malformed, expired,
	// signed with another key or issued by someone else.
	ErrInvalidToken = errors.New("invalid bearer token")
)

// Provider authenticates a request.
type Provider interface {
	Identify(r *http.Request) (models.Identity, error)
}

// JWTProvider verifies HS256 bearer tokens issued by the Identity Provider.
// The "sub" claim is the owner id.
type JWTProvider struct {
	signKey string
	issuer  string
}

func NewJWTProvider(cfg config.App) *JWTProvider {
	return &JWTProvider{
		signKey: cfg.TokenSignKey,
		issuer:  cfg.TokenIssuer,
	}
}

// Identify returns the caller's identity. The passphrase is copied into a
// fresh buffer the caller owns and must wipe; it is empty when the header is
// absent.
func (p *JWTProvider) Identify(r *http.Request) (models.Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return models.Identity{}, ErrMissingToken
	}

	raw, err := utils.ParseBearerToken(header)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	token, err := utils.ValidateAndParseJWTToken(raw, p.signKey, p.issuer)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	identity := models.Identity{OwnerID: token.OwnerID}
	if passphrase := r.Header.Get(PassphraseHeader); passphrase != "" {
		identity.Passphrase = []byte(passphrase)
	}

	return identity, nil
}
