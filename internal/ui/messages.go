// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asetha/stegvault-tui/internal/stego"
	"github.com/asetha/stegvault-tui/internal/workflow"
)

// =============================================================================
// MESSAGES
// =============================================================================

// embedDoneMsg carries a successful embed outcome.
type embedDoneMsg struct {
	outcome *workflow.EmbedOutcome
}

// extractDoneMsg carries a successful recovery outcome.
type extractDoneMsg struct {
	outcome *workflow.ExtractOutcome
}

// operationErrMsg carries the terminal failure of a submission.
type operationErrMsg struct {
	err error
}

// progressMsg carries one upload progress update in whole percent.
type progressMsg struct {
	percent int
}

// scanResultMsg carries a risk assessment update; nil clears the panel.
type scanResultMsg struct {
	analysis *stego.RiskAnalysis
}

// statsMsg carries a dashboard stats poll result.
type statsMsg struct {
	stats *stego.DashboardStats
	err   error
}

// lockoutTickMsg drives the lockout countdown display.
type lockoutTickMsg struct{}

// statsTickMsg schedules the next dashboard poll.
type statsTickMsg struct{}

// =============================================================================
// COMMANDS
// =============================================================================

// submitEmbedCmd runs one embed submission to completion.
func submitEmbedCmd(orch *workflow.Orchestrator, req workflow.EmbedRequest) tea.Cmd {
	return func() tea.Msg {
		outcome, err := orch.SubmitEmbed(context.Background(), req)
		if err != nil {
			return operationErrMsg{err: err}
		}
		return embedDoneMsg{outcome: outcome}
	}
}

// submitExtractCmd runs one recovery submission to completion.
func submitExtractCmd(orch *workflow.Orchestrator, req workflow.ExtractRequest) tea.Cmd {
	return func() tea.Msg {
		outcome, err := orch.SubmitExtract(context.Background(), req)
		if err != nil {
			return operationErrMsg{err: err}
		}
		return extractDoneMsg{outcome: outcome}
	}
}

// waitForScan blocks on the risk-assessment channel.
func waitForScan(ch <-chan *stego.RiskAnalysis) tea.Cmd {
	return func() tea.Msg {
		return scanResultMsg{analysis: <-ch}
	}
}

// waitForProgress blocks on the upload-progress channel.
func waitForProgress(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		return progressMsg{percent: <-ch}
	}
}

// pollStatsCmd fetches dashboard counters once.
func pollStatsCmd(client *stego.Client) tea.Cmd {
	return func() tea.Msg {
		stats, err := client.DashboardStats(context.Background())
		return statsMsg{stats: stats, err: err}
	}
}

// statsTick schedules the next dashboard poll.
func statsTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return statsTickMsg{}
	})
}

// lockoutTick drives the once-a-second countdown refresh.
func lockoutTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return lockoutTickMsg{}
	})
}

// loadAsset reads a file from disk into an upload asset.
func loadAsset(path string) (stego.Asset, error) {
	if path == "" {
		return stego.Asset{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return stego.Asset{}, err
	}
	return stego.Asset{Name: filepath.Base(path), Data: data}, nil
}
