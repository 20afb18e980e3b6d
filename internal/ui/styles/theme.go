// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER AND TAB STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	Identity    lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormBox      lipgloss.Style
	FormTitle    lipgloss.Style
	Label        lipgloss.Style
	FieldFocused lipgloss.Style
	FieldBlurred lipgloss.Style
	CheckboxOn   lipgloss.Style
	CheckboxOff  lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	Hint         lipgloss.Style

	// ==========================================================================
	// RESULT AND STATUS STYLES
	// ==========================================================================

	KeyBox       lipgloss.Style
	ResultBox    lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorBox     lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	LinkStyle    lipgloss.Style

	// ==========================================================================
	// RISK ASSESSMENT STYLES
	// ==========================================================================

	RiskBox      lipgloss.Style
	RiskHigh     lipgloss.Style
	RiskMedium   lipgloss.Style
	RiskLow      lipgloss.Style
	RiskIssue    lipgloss.Style
	RiskFootnote lipgloss.Style

	// ==========================================================================
	// GATE SCREEN STYLES
	// ==========================================================================

	GateBox       lipgloss.Style
	GateTitle     lipgloss.Style
	LockoutNotice lipgloss.Style
	ScrollPrompt  lipgloss.Style

	// ==========================================================================
	// SIDEBAR AND DASHBOARD STYLES
	// ==========================================================================

	Sidebar         lipgloss.Style
	SidebarTitle    lipgloss.Style
	HistoryItem     lipgloss.Style
	HistorySelected lipgloss.Style
	HistoryMeta     lipgloss.Style
	StatCard        lipgloss.Style
	StatValue       lipgloss.Style
	StatLabel       lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header and tabs
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Slate)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceBright).
		Padding(0, 2)

	t.Identity = lipgloss.NewStyle().
		Foreground(Emerald).
		Italic(true)

	// Forms
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Slate).
		MarginBottom(1)

	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.FieldFocused = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.FieldBlurred = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	t.CheckboxOn = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.CheckboxOff = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceBright).
		Padding(0, 3)

	t.ButtonActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Surface).
		Background(Cyan).
		Padding(0, 3)

	t.Hint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Results
	t.KeyBox = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Cyan).
		Padding(0, 2)

	t.ResultBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(1, 2)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ErrorBox = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 2)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(Cyan)

	t.LinkStyle = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)

	// Risk assessment
	t.RiskBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(0, 2)

	t.RiskHigh = lipgloss.NewStyle().Bold(true).Foreground(Rose)
	t.RiskMedium = lipgloss.NewStyle().Bold(true).Foreground(Amber)
	t.RiskLow = lipgloss.NewStyle().Bold(true).Foreground(Emerald)

	t.RiskIssue = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.RiskFootnote = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Gate screens
	t.GateBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Slate).
		Padding(1, 3)

	t.GateTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Slate).
		Align(lipgloss.Center)

	t.LockoutNotice = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 2)

	t.ScrollPrompt = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	// Sidebar and dashboard
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Slate)

	t.HistoryItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.HistorySelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(Surface).
		Background(Cyan).
		Padding(0, 1)

	t.HistoryMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.StatValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.StatLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Cyan)
}
