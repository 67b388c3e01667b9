// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": {
			"token_sign_key": "jwt_secret",
			"token_issuer": "test_issuer",
			"version": "0.9.0"
		},
		"server": {
			"http_address": "localhost:8080",
			"grpc_address": "localhost:9090",
			"request_timeout": "30s",
			"rate_limit_rps": 1.5,
			"rate_limit_burst": 3
		},
		"storage": {
			"db": { "dsn": "mongodb://localhost:27017", "name": "vault", "max_open_conns": 7 }
		},
		"adapter": {
			"base_url": "http://localhost:8080",
			"request_timeout": 5000000000,
			"token": "bearer"
		},
		"workers": {
			"health_interval": "10s",
			"decrypt_concurrency": 2
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "0.9.0", cfg.App.Version)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "localhost:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.InDelta(t, 1.5, cfg.Server.RateLimitRPS, 1e-9)
	assert.Equal(t, 3, cfg.Server.RateLimitBurst)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.DB.DSN)
	assert.Equal(t, "vault", cfg.Storage.DB.Name)
	assert.Equal(t, 7, cfg.Storage.DB.MaxOpenConns)

	assert.Equal(t, "http://localhost:8080", cfg.Adapter.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "bearer", cfg.Adapter.Token)

	assert.Equal(t, 10*time.Second, cfg.Workers.HealthInterval)
	assert.Equal(t, 2, cfg.Workers.DecryptConcurrency)

	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	// Act
	cfg, err := parseJSON("definitely-does-not-exist.json")

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{ this is not json }`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "bad-duration.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"server": {"request_timeout": "eventually"}}`), 0o600))

	cfg, err := parseJSON(p)

	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestDuration_JSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"string", `"1m30s"`, 90 * time.Second, false},
		{"nanoseconds", `1000`, 1000, false},
		{"bool", `true`, 0, true},
		{"garbage string", `"later"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}

	out, err := json.Marshal(Duration(2 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"2s"`, string(out))
}
