// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// status_cmd.go - Service reachability and counter display.
//
// Command: status
// Short:   Ping the steganography service and print its counters
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/asetha/stegvault-tui/internal/stego"
)

// HandleStatus polls the service once and prints the result.
func HandleStatus(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	client := stego.NewClientWithConfig(&stego.ClientConfig{
		BaseURL:      cfg.Service.BaseURL,
		StatsTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
	defer cancel()

	stats, err := client.DashboardStats(ctx)
	if err != nil {
		return fmt.Errorf("service at %s is unreachable: %w", cfg.Service.BaseURL, err)
	}

	if args.JSON {
		return json.NewEncoder(os.Stdout).Encode(stats)
	}

	fmt.Printf("Service:         %s\n", cfg.Service.BaseURL)
	fmt.Printf("Files secured:   %d\n", stats.Stats.FilesSecured)
	fmt.Printf("Attacks blocked: %d\n", stats.Stats.AttacksBlocked)
	fmt.Printf("Active keys:     %d\n", stats.Stats.ActiveKeys)
	fmt.Printf("Uptime:          %s\n", stats.SystemHealth.Uptime)
	if !args.Quiet && len(stats.ActivityLog) > 0 {
		fmt.Println("\nRecent activity:")
		for _, a := range stats.ActivityLog {
			// Status goes last so its color escapes never skew padding.
			status := a.Status
			switch a.Status {
			case "SUCCESS":
				status = grantedStyle.Render(a.Status)
			case "BLOCKED":
				status = blockedStyle.Render(a.Status)
			}
			fmt.Printf("  %-20s %-14s %-40s %s\n", a.Time, a.Event, a.Message, status)
		}
	}
	return nil
}
