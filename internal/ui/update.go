// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update is the root message dispatcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.agreement.SetSize(msg.Width, msg.Height)
		m.embed.SetWidth(msg.Width * 2 / 3)
		m.dashboard.SetWidth(msg.Width)
		m.sidebar.SetSize(34, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

	// Channel pump results: forward and re-arm the pump.
	case scanResultMsg:
		var cmd tea.Cmd
		m.embed, cmd = m.embed.Update(msg)
		return m, tea.Batch(cmd, waitForScan(m.scanCh))

	case progressMsg:
		var cmd tea.Cmd
		m.embed, cmd = m.embed.Update(msg)
		return m, tea.Batch(cmd, waitForProgress(m.progressCh))

	// Gate transitions.
	case agreementAcceptedMsg:
		m.screen = screenForStage(m.gate.AcceptCompliance())
		if m.screen == ScreenLogin {
			m.login.Reset()
		}
		return m, nil

	case loginGrantedMsg:
		m.screen = screenForStage(m.gate.RequestAdmission())
		return m, nil

	case logoutDoneMsg:
		m.showLogout = false
		m.screen = screenForStage(m.gate.RequestAdmission())
		m.login.Reset()
		m.agreement.reachedEnd = false
		m.agreement.viewport.GotoTop()
		return m, nil

	case logoutCancelledMsg:
		m.showLogout = false
		return m, nil

	case historyReuseMsg:
		m.reusePrefill(msg.reused)
		return m, nil

	// Dashboard polling.
	case statsTickMsg:
		if m.screen == ScreenMain && m.tab == TabDashboard {
			return m, pollStatsCmd(m.client)
		}
		return m, nil

	case statsMsg:
		m.dashboard.Apply(msg)
		if m.tab == TabDashboard {
			return m, statsTick(statsPollInterval)
		}
		return m, nil
	}

	switch m.screen {
	case ScreenAgreement:
		var cmd tea.Cmd
		m.agreement, cmd = m.agreement.Update(msg)
		return m, cmd

	case ScreenLogin:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd

	default:
		return m.updateMain(msg)
	}
}

// updateMain routes messages inside the admitted workspace.
func (m Model) updateMain(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The logout overlay captures everything while open.
	if m.showLogout {
		var cmd tea.Cmd
		m.logout, cmd = m.logout.Update(msg)
		return m, cmd
	}

	// Operation outcomes always reach the forms, whatever has focus.
	switch msg.(type) {
	case embedDoneMsg, operationErrMsg:
		var embedCmd, extractCmd tea.Cmd
		m.embed, embedCmd = m.embed.Update(msg)
		m.extract, extractCmd = m.extract.Update(msg)
		return m, tea.Batch(embedCmd, extractCmd)
	case extractDoneMsg:
		var cmd tea.Cmd
		m.extract, cmd = m.extract.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Logout):
			if err := m.gate.RequestLogout(); err == nil {
				m.showLogout = true
				m.logout.Open()
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.ToggleSidebar):
			m.showSidebar = !m.showSidebar
			return m, nil

		case key.Matches(keyMsg, m.keys.Dashboard):
			if m.tab == TabDashboard {
				m.tab = TabHome
				return m, nil
			}
			m.tab = TabDashboard
			return m, pollStatsCmd(m.client)

		case key.Matches(keyMsg, m.keys.CycleMode):
			m.embed.CycleMode()
			return m, nil

		case key.Matches(keyMsg, m.keys.ToggleSource):
			m.extract.ToggleSource()
			return m, nil

		case key.Matches(keyMsg, m.keys.SwapForm):
			m.focusExtract = !m.focusExtract
			return m, nil
		}

		// The sidebar owns navigation keys while it is open.
		if m.showSidebar {
			var cmd tea.Cmd
			m.sidebar, cmd = m.sidebar.Update(msg)
			return m, cmd
		}

		if m.tab == TabDashboard {
			return m, nil
		}

		// Home tab: keys go to the focused form.
		var cmd tea.Cmd
		if m.focusExtract {
			m.extract, cmd = m.extract.Update(msg)
		} else {
			m.embed, cmd = m.embed.Update(msg)
		}
		return m, cmd
	}

	// Everything else (blink ticks, spinner frames) reaches both forms.
	var embedCmd, extractCmd tea.Cmd
	m.embed, embedCmd = m.embed.Update(msg)
	m.extract, extractCmd = m.extract.Update(msg)
	return m, tea.Batch(embedCmd, extractCmd)
}
