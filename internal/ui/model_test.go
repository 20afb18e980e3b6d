// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asetha/stegvault-tui/internal/access"
	"github.com/asetha/stegvault-tui/internal/config"
	"github.com/asetha/stegvault-tui/internal/credstore"
	"github.com/asetha/stegvault-tui/internal/gate"
	"github.com/asetha/stegvault-tui/internal/history"
	"github.com/asetha/stegvault-tui/internal/profile"
	"github.com/asetha/stegvault-tui/internal/riskscan"
	"github.com/asetha/stegvault-tui/internal/stego"
	"github.com/asetha/stegvault-tui/internal/workflow"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	store := profile.OpenMemory()
	creds := credstore.FromCredentials([]credstore.Credential{
		{Login: "officer@gov.in", Secret: "govAccess456"},
	})
	verifier := access.NewVerifier(creds, "@gov.in",
		access.NewLockout(3, 60), access.NewLedger(store, 10))
	ctrl := gate.NewController(store, verifier)

	client := stego.NewClientWithConfig(&stego.ClientConfig{BaseURL: "http://127.0.0.1:1"})
	ledger := history.NewLedger(store, 10)
	orch := workflow.NewOrchestrator(client, ledger)
	trigger := riskscan.NewTrigger(client)
	t.Cleanup(trigger.Close)

	return New(Deps{
		Config:  config.Default(),
		Gate:    ctrl,
		Client:  client,
		Orch:    orch,
		Trigger: trigger,
		History: ledger,
	})
}

func TestFreshSessionStartsAtAgreement(t *testing.T) {
	m := newTestModel(t)
	if m.screen != ScreenAgreement {
		t.Errorf("screen = %v, want ScreenAgreement", m.screen)
	}
}

func TestAdmissionFlowAdvancesThroughGates(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(agreementAcceptedMsg{})
	m = next.(Model)
	if m.screen != ScreenLogin {
		t.Fatalf("after acceptance screen = %v, want ScreenLogin", m.screen)
	}

	if err := m.gate.SubmitCredentials("officer@gov.in", "govAccess456"); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	next, _ = m.Update(loginGrantedMsg{})
	m = next.(Model)
	if m.screen != ScreenMain {
		t.Errorf("after grant screen = %v, want ScreenMain", m.screen)
	}
}

func TestLogoutReturnsToAgreement(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(agreementAcceptedMsg{})
	m = next.(Model)
	if err := m.gate.SubmitCredentials("officer@gov.in", "govAccess456"); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	next, _ = m.Update(loginGrantedMsg{})
	m = next.(Model)

	if err := m.gate.RequestLogout(); err != nil {
		t.Fatalf("RequestLogout: %v", err)
	}
	if err := m.gate.ConfirmLogout("govAccess456"); err != nil {
		t.Fatalf("ConfirmLogout: %v", err)
	}

	next, _ = m.Update(logoutDoneMsg{})
	m = next.(Model)
	if m.screen != ScreenAgreement {
		t.Errorf("after logout screen = %v, want ScreenAgreement (compliance re-accepted)", m.screen)
	}
}

func TestLoginViewRendersBothFocusStates(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(agreementAcceptedMsg{})
	m = next.(Model)

	if got := m.login.fieldStyle(0).Render("field"); !strings.Contains(got, "field") {
		t.Errorf("focused field style dropped content: %q", got)
	}
	if got := m.login.fieldStyle(1).Render("field"); !strings.Contains(got, "field") {
		t.Errorf("blurred field style dropped content: %q", got)
	}
	if view := m.login.View(); !strings.Contains(view, "Secure Access") {
		t.Errorf("login view missing title:\n%s", view)
	}
}

func TestEmptyLoginSubmitIsNotAnAttempt(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(agreementAcceptedMsg{})
	m = next.(Model)

	for i := 0; i < 3; i++ {
		m.login.submit()
	}

	lockout := m.gate.Verifier().Lockout()
	if lockout.Failures() != 0 {
		t.Errorf("Failures = %d, want 0 (empty submit is a validation problem, not an attempt)", lockout.Failures())
	}
	if lockout.Locked() {
		t.Error("empty submits must never lock the login step")
	}
	if n := m.gate.Verifier().Ledger().Len(); n != 0 {
		t.Errorf("access ledger has %d entries, want 0", n)
	}
	if m.login.errText != "Enter email and password." {
		t.Errorf("errText = %q, want the inline validation message", m.login.errText)
	}

	// A real wrong attempt still feeds the counter.
	m.login.identity.SetValue("officer@gov.in")
	m.login.secret.SetValue("wrong")
	m.login.submit()
	if lockout.Failures() != 1 {
		t.Errorf("Failures = %d after a real wrong attempt, want 1", lockout.Failures())
	}
}

func TestHistoryReusePrefillsExtractForm(t *testing.T) {
	m := newTestModel(t)
	m.screen = ScreenMain
	m.showSidebar = true
	m.tab = TabDashboard

	next, _ := m.Update(historyReuseMsg{reused: history.Reused{
		Key:      "QK-REUSE",
		AssetURL: "http://127.0.0.1:8000/download/x.png",
	}})
	m = next.(Model)

	if m.extract.key.Value() != "QK-REUSE" {
		t.Errorf("extract key = %q, want QK-REUSE", m.extract.key.Value())
	}
	if m.showSidebar {
		t.Error("sidebar should close on reuse")
	}
	if m.tab != TabHome {
		t.Error("reuse should land on the home tab")
	}
	if !m.focusExtract {
		t.Error("reuse should focus the extract form")
	}
}

func TestEmbedModeCycleResetsResult(t *testing.T) {
	m := newTestModel(t)
	m.screen = ScreenMain

	m.embed.result = &workflow.EmbedOutcome{Key: "stale"}
	m.embed.CycleMode()
	if m.embed.Mode() != workflow.ModeEmbedText {
		t.Errorf("mode = %v, want ModeEmbedText", m.embed.Mode())
	}
	if m.embed.result != nil {
		t.Error("cycling modes must clear the stale result panel")
	}

	m.embed.CycleMode()
	m.embed.CycleMode()
	if m.embed.Mode() != workflow.ModeHideFile {
		t.Errorf("mode = %v, want wrap back to ModeHideFile", m.embed.Mode())
	}
}

func TestQuitKeyAlwaysQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if msg := cmd(); msg == nil {
		t.Fatal("quit command returned nil msg")
	}
}
