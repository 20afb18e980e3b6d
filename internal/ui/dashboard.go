// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/asetha/stegvault-tui/internal/stego"
	"github.com/asetha/stegvault-tui/internal/ui/styles"
)

// =============================================================================
// DASHBOARD
// =============================================================================

// Dashboard shows the service's aggregate counters and recent activity.
// It holds the last successful poll; a failed poll keeps prior numbers on
// screen with a staleness note.
type Dashboard struct {
	theme *styles.Theme

	stats   *stego.DashboardStats
	stale   bool
	lastErr string
	width   int
}

// NewDashboard creates the dashboard tab.
func NewDashboard(theme *styles.Theme) Dashboard {
	return Dashboard{theme: theme}
}

// SetWidth adjusts the dashboard layout width.
func (d *Dashboard) SetWidth(w int) { d.width = w }

// Apply folds one poll result into the dashboard.
func (d *Dashboard) Apply(msg statsMsg) {
	if msg.err != nil {
		d.stale = d.stats != nil
		d.lastErr = msg.err.Error()
		return
	}
	d.stats = msg.stats
	d.stale = false
	d.lastErr = ""
}

// View renders the dashboard.
func (d Dashboard) View() string {
	var b strings.Builder
	b.WriteString(d.theme.FormTitle.Render("Command Dashboard"))
	b.WriteString("\n")

	if d.stats == nil {
		if d.lastErr != "" {
			b.WriteString(d.theme.ErrorBox.Render("Stats unavailable: " + d.lastErr))
		} else {
			b.WriteString(d.theme.Hint.Render("Polling service..."))
		}
		return d.theme.Container.Render(b.String())
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		d.card(fmt.Sprintf("%d", d.stats.Stats.FilesSecured), "Files Secured"),
		" ",
		d.card(fmt.Sprintf("%d", d.stats.Stats.AttacksBlocked), "Attacks Blocked"),
		" ",
		d.card(d.stats.SystemHealth.Uptime, "Uptime"),
	)
	b.WriteString(cards)
	b.WriteString("\n\n")

	health := d.stats.SystemHealth
	fmt.Fprintf(&b, "%s  CPU %.0f%%   RAM %.0f%%   Entropy %.1f%%\n\n",
		d.theme.Label.Render("System Health"),
		health.CPULoad, health.RAMUsage, health.QuantumEntropy)

	b.WriteString(d.theme.SidebarTitle.Render("Recent Activity"))
	b.WriteString("\n")
	if len(d.stats.ActivityLog) == 0 {
		b.WriteString(d.theme.HistoryMeta.Render("no recent activity"))
		b.WriteString("\n")
	}
	for _, a := range d.stats.ActivityLog {
		status := d.theme.SuccessStyle
		switch a.Status {
		case "BLOCKED":
			status = d.theme.WarningStyle
		case "SUCCESS":
			status = d.theme.SuccessStyle
		default:
			status = d.theme.InfoStyle
		}
		fmt.Fprintf(&b, "%s  %s  %s  %s\n",
			d.theme.HistoryMeta.Render(a.Time),
			a.Event,
			d.theme.HistoryMeta.Render(a.Message),
			status.Render(a.Status))
	}

	if d.stale {
		b.WriteString("\n")
		b.WriteString(d.theme.WarningStyle.Render("Last poll failed; showing previous numbers."))
	}

	return d.theme.Container.Render(b.String())
}

func (d Dashboard) card(value, label string) string {
	content := d.theme.StatValue.Render(value) + "\n" + d.theme.StatLabel.Render(label)
	return d.theme.StatCard.Render(content)
}
