// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asetha/stegvault-tui/internal/gate"
	"github.com/asetha/stegvault-tui/internal/ui/styles"
)

// =============================================================================
// LOGOUT CONFIRMATION
// =============================================================================

// logoutDoneMsg signals that the session was torn down.
type logoutDoneMsg struct{}

// logoutCancelledMsg signals that the operator backed out.
type logoutCancelledMsg struct{}

// LogoutScreen re-verifies the secret before tearing the session down.
// A mismatch keeps the confirmation open with an error message.
type LogoutScreen struct {
	theme  *styles.Theme
	gate   *gate.Controller
	secret textinput.Model

	errText string
}

// NewLogoutScreen creates the logout confirmation overlay.
func NewLogoutScreen(theme *styles.Theme, ctrl *gate.Controller) LogoutScreen {
	secret := textinput.New()
	secret.Placeholder = "confirm password"
	secret.CharLimit = 128
	secret.Width = 40
	secret.EchoMode = textinput.EchoPassword
	secret.EchoCharacter = '•'

	return LogoutScreen{theme: theme, gate: ctrl, secret: secret}
}

// Open prepares the overlay for a fresh confirmation.
func (l *LogoutScreen) Open() {
	l.secret.SetValue("")
	l.errText = ""
	l.secret.Focus()
}

// Update handles the confirm/cancel keys.
func (l LogoutScreen) Update(msg tea.Msg) (LogoutScreen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			l.gate.CancelLogout()
			return l, func() tea.Msg { return logoutCancelledMsg{} }

		case "enter":
			if err := l.gate.ConfirmLogout(l.secret.Value()); err != nil {
				l.errText = err.Error()
				l.secret.SetValue("")
				return l, nil
			}
			return l, func() tea.Msg { return logoutDoneMsg{} }
		}
	}

	var cmd tea.Cmd
	l.secret, cmd = l.secret.Update(msg)
	return l, cmd
}

// View renders the confirmation overlay.
func (l LogoutScreen) View() string {
	var b strings.Builder
	b.WriteString(l.theme.GateTitle.Render("Confirm Logout"))
	b.WriteString("\n\n")
	b.WriteString(l.theme.Label.Render("Re-enter your passphrase to end the session"))
	b.WriteString("\n")
	b.WriteString(l.theme.FieldFocused.Render(l.secret.View()))
	b.WriteString("\n\n")

	if l.errText != "" {
		b.WriteString(l.theme.ErrorBox.Render(l.errText))
		b.WriteString("\n")
	}

	b.WriteString(l.theme.ButtonActive.Render("Enter: Logout"))
	b.WriteString("  ")
	b.WriteString(l.theme.Button.Render("Esc: Stay"))

	return l.theme.GateBox.Render(b.String())
}
