// stegvault TUI - terminal client for the StegVault steganography service.
//
// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asetha/stegvault-tui/internal/access"
	"github.com/asetha/stegvault-tui/internal/cli"
	"github.com/asetha/stegvault-tui/internal/config"
	"github.com/asetha/stegvault-tui/internal/credstore"
	"github.com/asetha/stegvault-tui/internal/gate"
	"github.com/asetha/stegvault-tui/internal/history"
	"github.com/asetha/stegvault-tui/internal/profile"
	"github.com/asetha/stegvault-tui/internal/riskscan"
	"github.com/asetha/stegvault-tui/internal/stego"
	"github.com/asetha/stegvault-tui/internal/ui"
	"github.com/asetha/stegvault-tui/internal/workflow"
)

// Version information (set at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAudit:
		exitOn(cli.HandleAudit(args))
	case cli.CmdHistory:
		exitOn(cli.HandleHistory(args))
	case cli.CmdStatus:
		exitOn(cli.HandleStatus(args))
	case cli.CmdHashSecret:
		exitOn(cli.HandleHashSecret(args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI wires the full component stack and starts the interactive client.
func runTUI(args cli.Args) {
	if !cli.IsTTY() {
		fmt.Fprintln(os.Stderr, "Error: the interactive client requires a terminal")
		fmt.Fprintln(os.Stderr, "Hint: run 'stegvault status' or 'stegvault history' for non-interactive use")
		os.Exit(1)
	}

	path := args.ConfigPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Local profile store. When the state dir is unusable the client still
	// runs; admission state and history just will not survive restart.
	var store *profile.Store
	profilePath, err := cfg.ResolveProfilePath()
	if err == nil {
		store, err = profile.Open(profilePath)
	}
	if err != nil {
		log.Printf("profile store unavailable, running in-memory: %v", err)
		store = profile.OpenMemory()
	}
	defer store.Close()

	creds := loadCredentials(cfg)
	defer creds.Close()

	lockout := access.NewLockout(cfg.Access.MaxAttempts, cfg.Access.LockoutSeconds)
	auditLedger := access.NewLedger(store, cfg.Access.AuditCap)
	verifier := access.NewVerifier(creds, cfg.Access.RequiredSuffix, lockout, auditLedger)
	ctrl := gate.NewController(store, verifier)

	client := stego.NewClientWithConfig(&stego.ClientConfig{
		BaseURL: cfg.Service.BaseURL,
	})

	opHistory := history.NewLedger(store, cfg.History.Cap)
	orch := workflow.NewOrchestrator(client, opHistory)

	trigger := riskscan.NewTrigger(client,
		riskscan.WithDebounce(time.Duration(cfg.Scan.DebounceMillis)*time.Millisecond),
		riskscan.WithMinLength(cfg.Scan.MinLength),
	)
	defer trigger.Close()

	m := ui.New(ui.Deps{
		Config:  cfg,
		Gate:    ctrl,
		Client:  client,
		Orch:    orch,
		Trigger: trigger,
		History: opHistory,
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadCredentials opens the identity allow-list, falling back to the
// built-in demo identities when no file has been provisioned.
func loadCredentials(cfg *config.Config) *credstore.Store {
	credPath, err := cfg.ResolveCredentialsPath()
	if err == nil {
		if _, statErr := os.Stat(credPath); statErr == nil {
			creds, loadErr := credstore.Load(credPath)
			if loadErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", loadErr)
				os.Exit(1)
			}
			if watchErr := creds.Watch(); watchErr != nil {
				log.Printf("credentials hot reload disabled: %v", watchErr)
			}
			return creds
		}
	}
	log.Printf("no credentials file, using built-in identities (see credentials.example.toml)")
	return credstore.FromCredentials(credstore.Defaults())
}
