// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View is the root renderer.
func (m Model) View() string {
	switch m.screen {
	case ScreenAgreement:
		return m.centered(m.agreement.View())
	case ScreenLogin:
		return m.centered(m.login.View())
	}

	if m.showLogout {
		return m.centered(m.logout.View())
	}

	var body string
	if m.tab == TabDashboard {
		body = m.dashboard.View()
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.embed.View(),
			" ",
			m.extract.View(),
		)
	}

	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.sidebar.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusBar(),
	)
}

// renderHeader shows the brand, tabs, and the current identity.
func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("StegVault"))

	home := m.theme.Tab
	dash := m.theme.Tab
	if m.tab == TabHome {
		home = m.theme.TabActive
	} else {
		dash = m.theme.TabActive
	}
	b.WriteString(home.Render("Home"))
	b.WriteString(dash.Render("Dashboard"))

	if id := m.gate.State().CurrentIdentity; id != "" {
		b.WriteString("  ")
		b.WriteString(m.theme.Identity.Render(id))
	}
	return b.String()
}

// renderStatusBar shows the global shortcuts.
func (m Model) renderStatusBar() string {
	parts := make([]string, 0, 8)
	for _, pair := range m.keys.shortcuts() {
		parts = append(parts,
			m.theme.ShortcutKey.Render(pair[0])+" "+m.theme.ShortcutDesc.Render(pair[1]))
	}
	return m.theme.StatusBar.Render(strings.Join(parts, "  "))
}

// centered places content in the middle of the terminal when dimensions are
// known.
func (m Model) centered(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
