// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - Operation history inspection.
//
// Command: history
// Short:   Show recorded embed operations, newest first
//
// Examples:
//   stegvault history          Tabular listing
//   stegvault history --json   Entries as JSON
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/asetha/stegvault-tui/internal/history"
	"github.com/asetha/stegvault-tui/internal/util"
)

// HandleHistory prints the operation history ledger.
func HandleHistory(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	store := openStore(cfg)
	defer store.Close()

	ledger := history.NewLedger(store, cfg.History.Cap)
	entries := ledger.Entries()

	if args.JSON {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No recorded operations.")
		return nil
	}

	// Fit the asset column to the terminal; piped output stays untruncated.
	assetMax := 0
	if IsStdoutTTY() {
		assetMax = TerminalWidth(120) - 66
		if assetMax < 20 {
			assetMax = 20
		}
	}

	fmt.Printf("%-17s %-24s %-22s %s\n", "WHEN", "OPERATION", "KEY", "ASSET")
	for _, e := range entries {
		asset := e.AssetURL
		if assetMax > 0 {
			asset = util.TruncateRunes(asset, assetMax)
		}
		fmt.Printf("%-17s %-24s %-22s %s\n",
			e.CreatedAt.Format("2006-01-02 15:04"),
			util.TruncateRunes(e.Operation, 24),
			util.TruncateRunes(e.Key, 22),
			asset)
	}
	return nil
}
