// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the stegvault client.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - path passed explicitly by the caller
//   - ~/.stegvault/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/asetha/stegvault-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete stegvault client configuration.
type Config struct {
	// Service configuration (the remote steganography backend)
	Service ServiceConfig `toml:"service"`

	// Access configuration (admission gate, lockout, audit)
	Access AccessConfig `toml:"access"`

	// History configuration (bounded operation ledger)
	History HistoryConfig `toml:"history"`

	// Scan configuration (background risk analysis of secret text)
	Scan ScanConfig `toml:"scan"`

	// Storage configuration (local profile persistence)
	Storage StorageConfig `toml:"storage"`
}

// ServiceConfig contains the remote service endpoint configuration.
type ServiceConfig struct {
	// BaseURL is the steganography service base URL.
	// Note: uses an explicit IPv4 address instead of localhost to avoid
	// IPv6 resolution issues on Windows.
	BaseURL string `toml:"base_url"`
}

// AccessConfig contains admission-gate configuration.
type AccessConfig struct {
	// RequiredSuffix is the mandatory login-name domain suffix. Names
	// without it are rejected before the allow-list is consulted.
	RequiredSuffix string `toml:"required_suffix"`

	// MaxAttempts is the number of consecutive failed logins before lockout.
	MaxAttempts int `toml:"max_attempts"`

	// LockoutSeconds is how long the login step stays locked after the
	// attempt limit is reached.
	LockoutSeconds int `toml:"lockout_seconds"`

	// AuditCap is the number of access-ledger entries retained.
	AuditCap int `toml:"audit_cap"`

	// CredentialsPath is the TOML file holding the identity allow-list.
	// Empty means <state dir>/credentials.toml.
	CredentialsPath string `toml:"credentials_path"`
}

// HistoryConfig contains operation-history configuration.
type HistoryConfig struct {
	// Cap is the number of history entries retained (oldest evicted).
	Cap int `toml:"cap"`
}

// ScanConfig contains risk-scan trigger configuration.
type ScanConfig struct {
	// DebounceMillis is the input-inactivity window before a scan fires.
	DebounceMillis int `toml:"debounce_millis"`

	// MinLength is the minimum secret-text length that triggers a scan.
	MinLength int `toml:"min_length"`
}

// StorageConfig contains local persistence configuration.
type StorageConfig struct {
	// ProfilePath is the profile database file. Empty means
	// <state dir>/profile.db.
	ProfilePath string `toml:"profile_path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: "http://127.0.0.1:8000",
		},
		Access: AccessConfig{
			RequiredSuffix: "@gov.in",
			MaxAttempts:    3,
			LockoutSeconds: 60,
			AuditCap:       10,
		},
		History: HistoryConfig{
			Cap: 10,
		},
		Scan: ScanConfig{
			DebounceMillis: 1000,
			MinLength:      5,
		},
		Storage: StorageConfig{},
	}
}

// StateDir returns the client state directory (~/.stegvault), creating it
// if needed.
func StateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".stegvault")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("cannot create state directory: %w", err)
	}
	return dir, nil
}

// DefaultPath returns the default configuration file path.
func DefaultPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from path. A missing file is not an error: the
// defaults are returned. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies STEGVAULT_* environment overrides. Only a handful of
// knobs are env-tunable; everything else lives in the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("STEGVAULT_SERVICE_URL"); v != "" {
		c.Service.BaseURL = v
	}
	if v := os.Getenv("STEGVAULT_REQUIRED_SUFFIX"); v != "" {
		c.Access.RequiredSuffix = v
	}
	if v := os.Getenv("STEGVAULT_CREDENTIALS"); v != "" {
		c.Access.CredentialsPath = v
	}
	if v := os.Getenv("STEGVAULT_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Access.MaxAttempts = n
		}
	}
	if v := os.Getenv("STEGVAULT_LOCKOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Access.LockoutSeconds = n
		}
	}
}

// Validate checks configuration consistency. Out-of-range numeric values
// are clamped back to the defaults rather than treated as fatal.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid service base URL: %q", c.Service.BaseURL)
	}

	if !strings.HasPrefix(c.Access.RequiredSuffix, "@") {
		return fmt.Errorf("required suffix must start with '@': %q", c.Access.RequiredSuffix)
	}

	d := Default()
	if c.Access.MaxAttempts <= 0 {
		c.Access.MaxAttempts = d.Access.MaxAttempts
	}
	if c.Access.LockoutSeconds <= 0 {
		c.Access.LockoutSeconds = d.Access.LockoutSeconds
	}
	if c.Access.AuditCap <= 0 {
		c.Access.AuditCap = d.Access.AuditCap
	}
	if c.History.Cap <= 0 {
		c.History.Cap = d.History.Cap
	}
	if c.Scan.DebounceMillis <= 0 {
		c.Scan.DebounceMillis = d.Scan.DebounceMillis
	}
	if c.Scan.MinLength <= 0 {
		c.Scan.MinLength = d.Scan.MinLength
	}
	return nil
}

// ResolveProfilePath returns the configured profile store path, defaulting
// to profile.db inside the state directory.
func (c *Config) ResolveProfilePath() (string, error) {
	if c.Storage.ProfilePath != "" {
		return c.Storage.ProfilePath, nil
	}
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profile.db"), nil
}

// ResolveCredentialsPath returns the configured credential allow-list path,
// defaulting to credentials.toml inside the state directory.
func (c *Config) ResolveCredentialsPath() (string, error) {
	if c.Access.CredentialsPath != "" {
		return c.Access.CredentialsPath, nil
	}
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.toml"), nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to path atomically.
func (c *Config) Save(path string) error {
	var sb strings.Builder
	sb.WriteString("# stegvault client configuration\n\n")
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(sb.String()), 0600)
}
