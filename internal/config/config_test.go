// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://127.0.0.1:8000", cfg.Service.BaseURL)
	assert.Equal(t, "@gov.in", cfg.Access.RequiredSuffix)
	assert.Equal(t, 3, cfg.Access.MaxAttempts)
	assert.Equal(t, 60, cfg.Access.LockoutSeconds)
	assert.Equal(t, 10, cfg.Access.AuditCap)
	assert.Equal(t, 10, cfg.History.Cap)
	assert.Equal(t, 1000, cfg.Scan.DebounceMillis)
	assert.Equal(t, 5, cfg.Scan.MinLength)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Service.BaseURL, cfg.Service.BaseURL)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[service]
base_url = "https://vault.example.gov.in"

[access]
required_suffix = "@example.gov.in"
max_attempts = 5

[history]
cap = 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://vault.example.gov.in", cfg.Service.BaseURL)
	assert.Equal(t, "@example.gov.in", cfg.Access.RequiredSuffix)
	assert.Equal(t, 5, cfg.Access.MaxAttempts)
	assert.Equal(t, 20, cfg.History.Cap)
	// Untouched sections keep defaults.
	assert.Equal(t, 60, cfg.Access.LockoutSeconds)
	assert.Equal(t, 1000, cfg.Scan.DebounceMillis)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STEGVAULT_SERVICE_URL", "http://10.0.0.5:9000")
	t.Setenv("STEGVAULT_MAX_ATTEMPTS", "4")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:9000", cfg.Service.BaseURL)
	assert.Equal(t, 4, cfg.Access.MaxAttempts)
}

func TestValidateRejectsBadURL(t *testing.T) {
	cfg := Default()
	cfg.Service.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadSuffix(t *testing.T) {
	cfg := Default()
	cfg.Access.RequiredSuffix = "gov.in"
	assert.Error(t, cfg.Validate())
}

func TestValidateClampsZeroes(t *testing.T) {
	cfg := Default()
	cfg.Access.MaxAttempts = 0
	cfg.History.Cap = -1
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Access.MaxAttempts)
	assert.Equal(t, 10, cfg.History.Cap)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Access.MaxAttempts = 7
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Access.MaxAttempts)
}
