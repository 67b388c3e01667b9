// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

type envelopeRequest struct {
	Envelope string `json:"envelope"`
}

type createdResponse struct {
	ID string `json:"id"`
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates adapterCfg.BaseURL and
// configures the underlying client with the request timeout and the bearer
// token, if any.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	h := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}
	h.SetToken(adapterCfg.Token)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent vault requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// ListEnvelopes implements [ServerAdapter] via GET /api/envelopes/.
func (h *httpServerAdapter) ListEnvelopes(ctx context.Context) ([]models.VaultEntry, error) {
	var entries []models.VaultEntry

	resp, err := h.authedRequest(ctx).
		SetResult(&entries).
		Get("/api/envelopes/")
	if err != nil {
		return nil, fmt.Errorf("list envelopes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return entries, nil
}

// StoreEnvelope implements [ServerAdapter] via POST /api/envelopes/.
func (h *httpServerAdapter) StoreEnvelope(ctx context.Context, envelope string) (string, error) {
	var created createdResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(envelopeRequest{Envelope: envelope}).
		SetResult(&created).
		Post("/api/envelopes/")
	if err != nil {
		return "", fmt.Errorf("store envelope request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return created.ID, nil
}

// ReplaceEnvelope implements [ServerAdapter] via PUT /api/envelopes/{id}.
func (h *httpServerAdapter) ReplaceEnvelope(ctx context.Context, entryID, envelope string) (models.VaultEntry, error) {
	var entry models.VaultEntry

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", entryID).
		SetBody(envelopeRequest{Envelope: envelope}).
		SetResult(&entry).
		Put("/api/envelopes/{id}")
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("replace envelope request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultEntry{}, err
	}

	return entry, nil
}

// DeleteEnvelope implements [ServerAdapter] via DELETE /api/envelopes/{id}.
func (h *httpServerAdapter) DeleteEnvelope(ctx context.Context, entryID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", entryID).
		Delete("/api/envelopes/{id}")
	if err != nil {
		return fmt.Errorf("delete envelope request: %w", err)
	}

	return mapHTTPError(resp)
}

// GeneratePassword implements [ServerAdapter] via POST
// /api/password/generate. The endpoint needs no token.
func (h *httpServerAdapter) GeneratePassword(ctx context.Context, opts models.PasswordOptions) (models.GeneratedPassword, error) {
	var generated models.GeneratedPassword

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(opts).
		SetResult(&generated).
		Post("/api/password/generate")
	if err != nil {
		return models.GeneratedPassword{}, fmt.Errorf("generate password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.GeneratedPassword{}, err
	}

	return generated, nil
}

// Version implements [ServerAdapter] via GET /api/version/.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
