// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asetha/stegvault-tui/internal/config"
	"github.com/asetha/stegvault-tui/internal/gate"
	"github.com/asetha/stegvault-tui/internal/history"
	"github.com/asetha/stegvault-tui/internal/riskscan"
	"github.com/asetha/stegvault-tui/internal/stego"
	"github.com/asetha/stegvault-tui/internal/ui/styles"
	"github.com/asetha/stegvault-tui/internal/workflow"
)

// =============================================================================
// ROOT MODEL
// =============================================================================

// Screen is the top-level admission stage shown to the operator.
type Screen int

const (
	ScreenAgreement Screen = iota
	ScreenLogin
	ScreenMain
)

// Tab selects the workspace view once admitted.
type Tab int

const (
	TabHome Tab = iota
	TabDashboard
)

// statsPollInterval paces the dashboard refresh loop.
const statsPollInterval = 5 * time.Second

// Deps carries the wired application components into the UI.
type Deps struct {
	Config  *config.Config
	Gate    *gate.Controller
	Client  *stego.Client
	Orch    *workflow.Orchestrator
	Trigger *riskscan.Trigger
	History *history.Ledger
}

// Model is the root Bubble Tea model.
type Model struct {
	theme *styles.Theme
	keys  KeyMap

	cfg     *config.Config
	gate    *gate.Controller
	client  *stego.Client
	orch    *workflow.Orchestrator
	trigger *riskscan.Trigger

	screen Screen
	tab    Tab

	agreement AgreementScreen
	login     LoginScreen
	logout    LogoutScreen
	embed     EmbedForm
	extract   ExtractForm
	sidebar   Sidebar
	dashboard Dashboard

	showSidebar  bool
	showLogout   bool
	focusExtract bool

	// Channels bridge component callbacks into the Bubble Tea loop.
	scanCh     chan *stego.RiskAnalysis
	progressCh chan int

	width  int
	height int
}

// New wires the root model from the application components.
func New(deps Deps) Model {
	theme := styles.NewTheme()

	m := Model{
		theme:      theme,
		keys:       DefaultKeyMap(),
		cfg:        deps.Config,
		gate:       deps.Gate,
		client:     deps.Client,
		orch:       deps.Orch,
		trigger:    deps.Trigger,
		agreement:  NewAgreementScreen(theme),
		login:      NewLoginScreen(theme, deps.Gate),
		logout:     NewLogoutScreen(theme, deps.Gate),
		embed:      NewEmbedForm(theme, deps.Orch, deps.Trigger),
		extract:    NewExtractForm(theme, deps.Orch, DefaultOutputDir()),
		sidebar:    NewSidebar(theme, deps.History),
		dashboard:  NewDashboard(theme),
		scanCh:     make(chan *stego.RiskAnalysis, 8),
		progressCh: make(chan int, 64),
	}

	// Callbacks fire on foreign goroutines; a full channel drops the
	// update rather than blocking the producer.
	deps.Trigger.OnResult(func(a *stego.RiskAnalysis) {
		select {
		case m.scanCh <- a:
		default:
		}
	})
	deps.Orch.OnProgress(func(pct int) {
		select {
		case m.progressCh <- pct:
		default:
		}
	})

	m.screen = screenForStage(deps.Gate.RequestAdmission())
	return m
}

// screenForStage maps the admission stage onto a screen.
func screenForStage(stage gate.Stage) Screen {
	switch stage {
	case gate.StageCompliance:
		return ScreenAgreement
	case gate.StageCredentials:
		return ScreenLogin
	default:
		return ScreenMain
	}
}

// Init starts the channel pumps and cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForScan(m.scanCh),
		waitForProgress(m.progressCh),
		textinput.Blink,
	)
}

// reusePrefill pushes a history selection into the active forms.
func (m *Model) reusePrefill(reused history.Reused) {
	m.extract.Prefill(reused.Key)
	if reused.AssetURL != "" {
		m.embed.PrefillFromHistory(&workflow.EmbedOutcome{
			Key:      reused.Key,
			AssetURL: reused.AssetURL,
		})
	}
	m.showSidebar = false
	m.tab = TabHome
	m.focusExtract = true
}
