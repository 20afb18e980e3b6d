// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// audit_cmd.go - Access-log inspection commands.
//
// Command: audit [n]
// Short:   Show the most recent access-log entries
//
// Examples:
//   stegvault audit            Show the last 10 entries
//   stegvault audit 25         Show the last 25 entries
//   stegvault audit --json     Entries as JSON
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/asetha/stegvault-tui/internal/access"
	"github.com/asetha/stegvault-tui/internal/config"
	"github.com/asetha/stegvault-tui/internal/profile"
)

// HandleAudit prints recent access-log entries.
func HandleAudit(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	store := openStore(cfg)
	defer store.Close()

	n := 10
	if args.Subcommand != "" {
		parsed, err := strconv.Atoi(args.Subcommand)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("invalid entry count %q", args.Subcommand)
		}
		n = parsed
	}

	ledger := access.NewLedger(store, cfg.Access.AuditCap)
	entries := ledger.Recent(n)

	if args.JSON {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No access-log entries.")
		return nil
	}

	fmt.Printf("%-28s %-20s %-16s %s\n", "IDENTITY", "TIMESTAMP", "DEVICE", "OUTCOME")
	for _, e := range entries {
		outcome := deniedStyle.Render(e.Outcome)
		if e.Outcome == access.OutcomeGranted {
			outcome = grantedStyle.Render(e.Outcome)
		}
		fmt.Printf("%-28s %-20s %-16s %s\n", e.LoginName, e.Timestamp, e.Device, outcome)
	}
	return nil
}

// loadConfig resolves the configuration for CLI commands, honoring --config.
func loadConfig(args Args) (*config.Config, error) {
	path := args.ConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

// openStore opens the profile store referenced by the configuration.
func openStore(cfg *config.Config) *profile.Store {
	path, err := cfg.ResolveProfilePath()
	if err != nil {
		return profile.OpenMemory()
	}
	store, err := profile.Open(path)
	if err != nil {
		// Open already degrades to memory internally.
		return profile.OpenMemory()
	}
	return store
}
