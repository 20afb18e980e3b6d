// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"testing"
)

// =============================================================================
// PARSE TESTS (cli.go)
// =============================================================================

func TestParse_CommandRouting(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCmd  Command
		validate func(*testing.T, Args)
	}{
		{
			name:    "no arguments starts the TUI",
			args:    nil,
			wantCmd: CmdTUI,
		},
		{
			name:    "explicit tui command",
			args:    []string{"tui"},
			wantCmd: CmdTUI,
		},
		{
			name:    "audit with entry count",
			args:    []string{"audit", "25"},
			wantCmd: CmdAudit,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "25" {
					t.Errorf("Subcommand = %q, want %q", a.Subcommand, "25")
				}
			},
		},
		{
			name:    "access-log alias",
			args:    []string{"access-log"},
			wantCmd: CmdAudit,
		},
		{
			name:    "history",
			args:    []string{"history"},
			wantCmd: CmdHistory,
		},
		{
			name:    "status short alias",
			args:    []string{"s"},
			wantCmd: CmdStatus,
		},
		{
			name:    "hash-secret with login",
			args:    []string{"hash-secret", "officer@gov.in"},
			wantCmd: CmdHashSecret,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "officer@gov.in" {
					t.Errorf("Subcommand = %q, want the login name", a.Subcommand)
				}
			},
		},
		{
			name:    "version flag form",
			args:    []string{"--version"},
			wantCmd: CmdVersion,
		},
		{
			name:    "unknown command falls back to help",
			args:    []string{"frobnicate"},
			wantCmd: CmdHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args)
			cmd, parsed := Parse()
			if cmd != tt.wantCmd {
				t.Errorf("Parse() cmd = %v, want %v", cmd, tt.wantCmd)
			}
			if tt.validate != nil {
				tt.validate(t, parsed)
			}
		})
	}
}

func TestParse_GlobalFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCmd  Command
		validate func(*testing.T, Args)
	}{
		{
			name:    "json flag before the command",
			args:    []string{"--json", "history"},
			wantCmd: CmdHistory,
			validate: func(t *testing.T, a Args) {
				if !a.JSON {
					t.Error("JSON should be set")
				}
			},
		},
		{
			name:    "quiet short flag after the command",
			args:    []string{"status", "-q"},
			wantCmd: CmdStatus,
			validate: func(t *testing.T, a Args) {
				if !a.Quiet {
					t.Error("Quiet should be set")
				}
			},
		},
		{
			name:    "config with separate value",
			args:    []string{"--config", "/tmp/alt.toml", "audit"},
			wantCmd: CmdAudit,
			validate: func(t *testing.T, a Args) {
				if a.ConfigPath != "/tmp/alt.toml" {
					t.Errorf("ConfigPath = %q, want /tmp/alt.toml", a.ConfigPath)
				}
			},
		},
		{
			name:    "config with equals form",
			args:    []string{"--config=/tmp/alt.toml"},
			wantCmd: CmdTUI,
			validate: func(t *testing.T, a Args) {
				if a.ConfigPath != "/tmp/alt.toml" {
					t.Errorf("ConfigPath = %q, want /tmp/alt.toml", a.ConfigPath)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args)
			cmd, parsed := Parse()
			if cmd != tt.wantCmd {
				t.Errorf("Parse() cmd = %v, want %v", cmd, tt.wantCmd)
			}
			if tt.validate != nil {
				tt.validate(t, parsed)
			}
		})
	}
}

// =============================================================================
// TERMINAL DETECTION TESTS (terminal.go)
// =============================================================================

func TestColorEnabledHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled() {
		t.Error("ColorEnabled must be false when NO_COLOR is set")
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	// Under go test stdout is not a terminal, so the fallback applies.
	if IsStdoutTTY() {
		t.Skip("stdout is a terminal")
	}
	if w := TerminalWidth(120); w != 120 {
		t.Errorf("TerminalWidth fallback = %d, want 120", w)
	}
}

// setArgs swaps os.Args for one test case.
func setArgs(t *testing.T, args []string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"stegvault"}, args...)
	t.Cleanup(func() { os.Args = old })
}
