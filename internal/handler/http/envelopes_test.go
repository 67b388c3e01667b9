// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

const testWire = `{"ct":"AAECAwQFBgcICQoLDA0ODw==","iv":"101112131415161718191a1b1c1d1e1f","s":"000102030405060708090a0b0c0d0e0f"}`

func TestListEnvelopes(t *testing.T) {
	env := newTestEnv(t, config.Server{})
	entries := []models.VaultEntry{{ID: "entry-1", OwnerID: testOwnerID, Envelope: testWire}}
	env.envelopes.EXPECT().ListEnvelopes(gomock.Any(), testOwnerID).Return(entries, nil)

	rec := env.do(t, http.MethodGet, "/api/envelopes/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeResponse[[]models.VaultEntry](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, testWire, got[0].Envelope)
}

func TestStoreEnvelope(t *testing.T) {
	env := newTestEnv(t, config.Server{})
	env.envelopes.EXPECT().StoreEnvelope(gomock.Any(), testOwnerID, testWire).Return("entry-1", nil)

	rec := env.do(t, http.MethodPost, "/api/envelopes/", envelopeRequest{Envelope: testWire})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "entry-1", decodeResponse[createdResponse](t, rec).ID)
}

func TestStoreEnvelope_Malformed(t *testing.T) {
	env := newTestEnv(t, config.Server{})
	env.envelopes.EXPECT().
		StoreEnvelope(gomock.Any(), testOwnerID, "plaintext").
		Return("", fmt.Errorf("%w: malformed envelope", service.ErrValidation))

	rec := env.do(t, http.MethodPost, "/api/envelopes/", envelopeRequest{Envelope: "plaintext"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReplaceEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "replaced", wantStatus: http.StatusOK},
		{name: "not owned", err: store.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, config.Server{})
			env.envelopes.EXPECT().
				ReplaceEnvelope(gomock.Any(), "entry-1", testOwnerID, testWire).
				Return(models.VaultEntry{ID: "entry-1", OwnerID: testOwnerID, Envelope: testWire}, tt.err)

			rec := env.do(t, http.MethodPut, "/api/envelopes/entry-1", envelopeRequest{Envelope: testWire})

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestDeleteEnvelope(t *testing.T) {
	env := newTestEnv(t, config.Server{})
	env.vault.EXPECT().DeleteItem(gomock.Any(), "entry-1", testOwnerID).Return(nil)

	rec := env.do(t, http.MethodDelete, "/api/envelopes/entry-1", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
