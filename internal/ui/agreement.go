// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/asetha/stegvault-tui/internal/gate"
	"github.com/asetha/stegvault-tui/internal/ui/styles"
)

// =============================================================================
// AGREEMENT SCREEN
// =============================================================================

// agreementAcceptedMsg signals that the operator accepted the agreement.
type agreementAcceptedMsg struct{}

// AgreementScreen shows the confidentiality agreement in a scrollable
// viewport. The accept action stays disabled until the operator has scrolled
// to the end of the text.
type AgreementScreen struct {
	theme    *styles.Theme
	viewport viewport.Model
	ready    bool

	// reachedEnd latches once the bottom has been seen; scrolling back up
	// does not re-disable accept.
	reachedEnd bool

	width  int
	height int
}

// NewAgreementScreen creates the agreement gate screen.
func NewAgreementScreen(theme *styles.Theme) AgreementScreen {
	vp := viewport.New(80, 20)
	return AgreementScreen{theme: theme, viewport: vp}
}

// SetSize updates the dimensions and re-renders the agreement text.
func (a *AgreementScreen) SetSize(width, height int) {
	a.width = width
	a.height = height

	vpWidth := width - 8
	if vpWidth < 20 {
		vpWidth = 20
	}
	vpHeight := height - 8
	if vpHeight < 5 {
		vpHeight = 5
	}
	a.viewport.Width = vpWidth
	a.viewport.Height = vpHeight
	a.viewport.SetContent(a.renderAgreement(vpWidth))
	a.ready = true

	// A short agreement on a tall terminal needs no scrolling at all.
	if a.viewport.AtBottom() {
		a.reachedEnd = true
	}
}

// renderAgreement renders the agreement markdown for the given width.
func (a *AgreementScreen) renderAgreement(width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return gate.AgreementText
	}
	out, err := renderer.Render(gate.AgreementText)
	if err != nil {
		return gate.AgreementText
	}
	return out
}

// CanAccept reports whether the operator has read to the end.
func (a *AgreementScreen) CanAccept() bool {
	return a.reachedEnd
}

// Update handles scrolling and the accept key.
func (a AgreementScreen) Update(msg tea.Msg) (AgreementScreen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && a.reachedEnd {
			return a, func() tea.Msg { return agreementAcceptedMsg{} }
		}
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	if a.viewport.AtBottom() {
		a.reachedEnd = true
	}
	return a, cmd
}

// View renders the agreement screen.
func (a AgreementScreen) View() string {
	if !a.ready {
		return "Loading agreement..."
	}

	var b strings.Builder
	b.WriteString(a.theme.GateTitle.Render(gate.AgreementTitle))
	b.WriteString("\n\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n\n")

	if a.reachedEnd {
		b.WriteString(a.theme.ButtonActive.Render("Enter: I Agree"))
		b.WriteString("  ")
		b.WriteString(a.theme.ShortcutDesc.Render("Ctrl+C: decline and exit"))
	} else {
		pct := int(a.viewport.ScrollPercent() * 100)
		b.WriteString(a.theme.ScrollPrompt.Render(
			"Scroll to the end to enable acceptance"))
		b.WriteString(a.theme.HistoryMeta.Render(
			"  ("+strconv.Itoa(pct)+"% read)"))
	}

	return a.theme.GateBox.Render(b.String())
}
