// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for stegvault.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAudit
	CmdHistory
	CmdStatus
	CmdHashSecret
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet      bool
	JSON       bool
	ConfigPath string

	// Command-specific
	Subcommand string
	Raw        []string
}

const usageText = `stegvault - secure steganography client for the terminal

StegVault is the operator console for a remote steganography service.

It provides:
  - Hiding files and text inside cover images and videos
  - Key-based payload recovery
  - Background risk analysis of secret text
  - Gated access (agreement + credentials) with lockout and audit trail

Usage:
  stegvault                   Start TUI (default)
  stegvault audit [n]         Show the last n access-log entries (default 10)
  stegvault history           Show the operation history
  stegvault status            Ping the service and show its counters
  stegvault hash-secret       Generate a hashed credential entry
  stegvault version           Show version information
  stegvault help              Show this help

Global flags:
  --config PATH   Use an alternate configuration file
  --json          Machine-readable output where supported
  --quiet         Suppress informational output

Configuration lives in ~/.stegvault/config.toml; the credential allow-list
is a TOML file referenced from it.
`

// Parse reads os.Args and routes to a command.
func Parse() (Command, Args) {
	args := os.Args[1:]
	remaining, parsed := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining
	if len(remaining) > 0 {
		parsed.Subcommand = remaining[0]
	}

	switch cmd {
	case "tui":
		return CmdTUI, parsed
	case "audit", "access-log":
		return CmdAudit, parsed
	case "history":
		return CmdHistory, parsed
	case "status", "s":
		return CmdStatus, parsed
	case "hash-secret", "hash":
		return CmdHashSecret, parsed
	case "version", "-v", "--version":
		return CmdVersion, parsed
	case "help", "-h", "--help":
		return CmdHelp, parsed
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsed
	}
}

// parseGlobalFlags peels the global flags off the front of the argument
// list and returns whatever is left.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	remaining := make([]string, 0, len(args))

	i := 0
	for i < len(args) {
		switch arg := args[i]; {
		case arg == "--quiet" || arg == "-q":
			parsed.Quiet = true
		case arg == "--json":
			parsed.JSON = true
		case arg == "--config":
			if i+1 < len(args) {
				i++
				parsed.ConfigPath = args[i]
			}
		case strings.HasPrefix(arg, "--config="):
			parsed.ConfigPath = strings.TrimPrefix(arg, "--config=")
		default:
			remaining = append(remaining, arg)
		}
		i++
	}
	return remaining, parsed
}

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("stegvault %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
