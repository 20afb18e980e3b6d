// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewThemeInitializesStyles(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// Spot-check that styles render without panicking and carry content.
	if got := theme.HeaderTitle.Render("StegVault"); got == "" {
		t.Error("HeaderTitle rendered empty")
	}
	if got := theme.KeyBox.Render("QK-123"); got == "" {
		t.Error("KeyBox rendered empty")
	}
	if got := theme.LockoutNotice.Render("locked"); got == "" {
		t.Error("LockoutNotice rendered empty")
	}
}

func TestRiskStylesAreDistinct(t *testing.T) {
	theme := NewTheme()
	high := theme.RiskHigh.GetForeground()
	low := theme.RiskLow.GetForeground()
	if high == low {
		t.Error("high and low risk styles share a foreground color")
	}
}
