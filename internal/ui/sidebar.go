// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asetha/stegvault-tui/internal/history"
	"github.com/asetha/stegvault-tui/internal/ui/styles"
	"github.com/asetha/stegvault-tui/internal/util"
)

// =============================================================================
// HISTORY SIDEBAR
// =============================================================================

// historyReuseMsg carries a selected history entry's reusable projection.
type historyReuseMsg struct {
	reused history.Reused
}

// Sidebar lists past operations, newest first, and lets the operator reuse a
// stored key.
type Sidebar struct {
	theme  *styles.Theme
	ledger *history.Ledger

	cursor int
	width  int
	height int
}

// NewSidebar creates the history sidebar over the given ledger.
func NewSidebar(theme *styles.Theme, ledger *history.Ledger) Sidebar {
	return Sidebar{theme: theme, ledger: ledger, width: 32}
}

// SetSize adjusts the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Update handles selection movement and reuse.
func (s Sidebar) Update(msg tea.Msg) (Sidebar, tea.Cmd) {
	entries := s.ledger.Entries()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(entries)-1 {
				s.cursor++
			}
		case "enter":
			if s.cursor < len(entries) {
				reused := s.ledger.Reuse(entries[s.cursor])
				return s, func() tea.Msg { return historyReuseMsg{reused: reused} }
			}
		}
	}
	return s, nil
}

// View renders the sidebar.
func (s Sidebar) View() string {
	entries := s.ledger.Entries()

	var b strings.Builder
	b.WriteString(s.theme.SidebarTitle.Render("Operation History"))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(s.theme.HistoryMeta.Render("no operations yet"))
		return s.theme.Sidebar.Render(b.String())
	}

	inner := s.width - 4
	if inner < 12 {
		inner = 12
	}
	for i, e := range entries {
		line := util.TruncateWidth(e.Operation, inner)
		meta := e.CreatedAt.Format("Jan 02 15:04")
		if e.Key != "" {
			meta += "  " + util.TruncateWidth(e.Key, inner-util.StringWidth(meta)-2)
		}

		if i == s.cursor {
			b.WriteString(s.theme.HistorySelected.Render(line))
		} else {
			b.WriteString(s.theme.HistoryItem.Render(line))
		}
		b.WriteString("\n")
		b.WriteString(s.theme.HistoryMeta.Render("  " + util.TruncateWidth(meta, inner)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.theme.Hint.Render("Enter: reuse key"))
	return s.theme.Sidebar.Render(b.String())
}
