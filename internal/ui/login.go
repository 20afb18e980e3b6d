// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asetha/stegvault-tui/internal/access"
	"github.com/asetha/stegvault-tui/internal/gate"
	"github.com/asetha/stegvault-tui/internal/ui/styles"
)

// =============================================================================
// LOGIN SCREEN
// =============================================================================

// loginGrantedMsg signals that the credential check succeeded.
type loginGrantedMsg struct{}

// LoginScreen collects the identity and secret. While a lockout window is
// active the submit action is disabled and a live countdown is shown.
type LoginScreen struct {
	theme *styles.Theme
	gate  *gate.Controller

	identity textinput.Model
	secret   textinput.Model
	focused  int

	errText string
}

// NewLoginScreen creates the credential gate screen. The identity field is
// pre-filled from the last granted login when one is known.
func NewLoginScreen(theme *styles.Theme, ctrl *gate.Controller) LoginScreen {
	identity := textinput.New()
	identity.Placeholder = "name@gov.in"
	identity.CharLimit = 128
	identity.Width = 40
	identity.Focus()
	if last := ctrl.LastLoginName(); last != "" {
		identity.SetValue(last)
	}

	secret := textinput.New()
	secret.Placeholder = "password"
	secret.CharLimit = 128
	secret.Width = 40
	secret.EchoMode = textinput.EchoPassword
	secret.EchoCharacter = '•'

	return LoginScreen{
		theme:    theme,
		gate:     ctrl,
		identity: identity,
		secret:   secret,
	}
}

// locked reports whether the lockout window is currently active.
func (l *LoginScreen) locked() bool {
	return l.gate.Verifier().Lockout().Locked()
}

// Reset clears the secret field and error text for a fresh attempt.
func (l *LoginScreen) Reset() {
	l.secret.SetValue("")
	l.errText = ""
	l.focused = 0
	l.identity.Focus()
	l.secret.Blur()
}

func (l *LoginScreen) submit() tea.Cmd {
	if l.locked() {
		return nil
	}

	// Empty fields are a validation problem, not an attempt: they never
	// reach the verifier and never feed the lockout counter.
	if l.identity.Value() == "" || l.secret.Value() == "" {
		l.errText = "Enter email and password."
		return nil
	}

	err := l.gate.SubmitCredentials(l.identity.Value(), l.secret.Value())
	if err == nil {
		l.errText = ""
		return func() tea.Msg { return loginGrantedMsg{} }
	}

	l.errText = err.Error()
	l.secret.SetValue("")
	if access.IsLocked(err) {
		// Start the countdown refresh loop.
		return lockoutTick()
	}
	return nil
}

// Update handles field focus, input, and submission.
func (l LoginScreen) Update(msg tea.Msg) (LoginScreen, tea.Cmd) {
	switch msg := msg.(type) {
	case lockoutTickMsg:
		if l.locked() {
			return l, lockoutTick()
		}
		l.errText = ""
		return l, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			l.focused = (l.focused + 1) % 2
			if l.focused == 0 {
				l.identity.Focus()
				l.secret.Blur()
			} else {
				l.identity.Blur()
				l.secret.Focus()
			}
			return l, nil

		case "enter":
			if l.focused == 0 {
				l.focused = 1
				l.identity.Blur()
				l.secret.Focus()
				return l, nil
			}
			return l, l.submit()
		}
	}

	var cmd tea.Cmd
	if l.focused == 0 {
		l.identity, cmd = l.identity.Update(msg)
	} else {
		l.secret, cmd = l.secret.Update(msg)
	}
	return l, cmd
}

// View renders the login screen.
func (l LoginScreen) View() string {
	var b strings.Builder
	b.WriteString(l.theme.GateTitle.Render("Secure Access"))
	b.WriteString("\n\n")

	b.WriteString(l.theme.Label.Render("Government Identity"))
	b.WriteString("\n")
	b.WriteString(l.fieldStyle(0).Render(l.identity.View()))
	b.WriteString("\n")
	b.WriteString(l.theme.Label.Render("Passphrase"))
	b.WriteString("\n")
	b.WriteString(l.fieldStyle(1).Render(l.secret.View()))
	b.WriteString("\n\n")

	if l.locked() {
		remaining := l.gate.Verifier().Lockout().Remaining()
		b.WriteString(l.theme.LockoutNotice.Render(
			fmt.Sprintf("Account locked. Try again in %ds.", remaining)))
	} else {
		if l.errText != "" {
			b.WriteString(l.theme.ErrorBox.Render(l.errText))
			b.WriteString("\n")
		}
		b.WriteString(l.theme.ButtonActive.Render("Enter: Authenticate"))
	}

	b.WriteString("\n\n")
	b.WriteString(l.theme.Hint.Render("Authorized @gov.in personnel only."))

	return l.theme.GateBox.Render(b.String())
}

func (l LoginScreen) fieldStyle(idx int) interface{ Render(...string) string } {
	if l.focused == idx {
		return l.theme.FieldFocused
	}
	return l.theme.FieldBlurred
}
