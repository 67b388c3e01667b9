// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultClientRetryCount   = 2
	defaultClientRetryWait    = 200 * time.Millisecond
	defaultClientRetryMaxWait = 2 * time.Second
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080", 10*time.Second)
//	resp, err := client.R().Get("/api/version/")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client rooted at baseURL. Every request is bounded
// by timeout (zero leaves it unbounded) and is retried on transport errors
// and 503 responses.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(defaultClientRetryCount).
		SetRetryWaitTime(defaultClientRetryWait).
		SetRetryMaxWaitTime(defaultClientRetryMaxWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() == http.StatusServiceUnavailable
		})
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
