// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a session JWT issued by the Identity Provider.
//
// The "sub" claim carries the owner id. SignedString holds the compact form
// sent in the Authorization header; OwnerID caches the parsed subject.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	SignedString string `json:"-"`

	OwnerID string `json:"-"`
}

// GetOwnerID returns the owner id: the cached OwnerID when set, otherwise
// the "sub" claim of the embedded claims or of the parsed token.
func (t *Token) GetOwnerID() (string, error) {
	if t.OwnerID != "" {
		return t.OwnerID, nil
	}

	ownerID := t.Subject
	if ownerID == "" && t.Token != nil && t.Token.Claims != nil {
		subject, err := t.Token.Claims.GetSubject()
		if err != nil {
			return "", fmt.Errorf("error extracting owner id from token: %w", err)
		}
		ownerID = subject
	}
	if ownerID == "" {
		return "", fmt.Errorf("error extracting owner id from token: empty subject")
	}

	return ownerID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
