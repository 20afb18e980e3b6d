// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for the tabular CLI commands.
//
// Colors are disabled automatically for piped/redirected output and when
// NO_COLOR is set (https://no-color.org/).
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

func init() {
	lipgloss.SetColorProfile(colorProfile())
}

var (
	// grantedStyle marks positive outcomes (ACCESS GRANTED, SUCCESS).
	grantedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	// deniedStyle marks negative outcomes (ACCESS DENIED).
	deniedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	// blockedStyle marks defensive outcomes (BLOCKED).
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)
