// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package riskscan debounces background risk analysis of secret text.
//
// The trigger watches the secret-text field in the text-bearing embed modes,
// waits for a quiet period before issuing a scan, and discards any result
// that arrives after a newer edit or after the assessment was cleared.
package riskscan

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/asetha/stegvault-tui/internal/stego"
	"github.com/asetha/stegvault-tui/internal/util"
)

// =============================================================================
// DEFAULTS AND OPTIONS
// =============================================================================

const (
	// DefaultDebounce is the quiet period after the last edit before a
	// scan is issued.
	DefaultDebounce = 1000 * time.Millisecond

	// DefaultMinLength is the minimum secret-text length that warrants a
	// scan at all.
	DefaultMinLength = 5
)

// analyzer is the slice of the service client the trigger needs.
type analyzer interface {
	AnalyzeText(ctx context.Context, text string) (*stego.RiskAnalysis, error)
}

// Option configures a Trigger.
type Option func(*Trigger)

// WithDebounce overrides the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(t *Trigger) { t.debounce = d }
}

// WithMinLength overrides the minimum text length.
func WithMinLength(n int) Option {
	return func(t *Trigger) { t.minLen = n }
}

// =============================================================================
// TRIGGER
// =============================================================================

// Trigger owns the debounce timer and the current risk assessment.
// It is safe for concurrent use.
type Trigger struct {
	scan     analyzer
	debounce time.Duration
	minLen   int

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	scanning   bool
	assessment *stego.RiskAnalysis
	onResult   func(*stego.RiskAnalysis)
}

// NewTrigger creates a trigger over the given analyzer.
func NewTrigger(scan analyzer, opts ...Option) *Trigger {
	t := &Trigger{
		scan:     scan,
		debounce: DefaultDebounce,
		minLen:   DefaultMinLength,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnResult registers a callback invoked whenever the assessment changes,
// including when it is cleared (with nil).
func (t *Trigger) OnResult(fn func(*stego.RiskAnalysis)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResult = fn
}

// Assessment returns the current risk assessment, or nil when none is
// displayed.
func (t *Trigger) Assessment() *stego.RiskAnalysis {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.assessment
}

// Scanning reports whether a scan is pending or in flight.
func (t *Trigger) Scanning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scanning
}

// Observe reacts to an edit of the secret-text field. textMode must be false
// for file-hiding submissions, where the scanner stays inactive. Every call
// supersedes any pending or in-flight scan.
func (t *Trigger) Observe(text string, textMode bool) {
	t.mu.Lock()

	// Every edit invalidates whatever was pending.
	t.generation++
	gen := t.generation
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}

	if !textMode || util.RuneLen(text) < t.minLen {
		t.scanning = false
		changed := t.assessment != nil
		t.assessment = nil
		fn := t.onResult
		t.mu.Unlock()
		if changed && fn != nil {
			fn(nil)
		}
		return
	}

	t.scanning = true
	t.timer = time.AfterFunc(t.debounce, func() {
		t.fire(gen, text)
	})
	t.mu.Unlock()
}

// fire runs the scan for one debounce expiry. Results are kept only if no
// newer edit happened in the meantime.
func (t *Trigger) fire(gen uint64, text string) {
	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	analysis, err := t.scan.AnalyzeText(context.Background(), text)

	t.mu.Lock()
	if gen != t.generation {
		// A newer edit or a clear superseded this scan.
		t.mu.Unlock()
		return
	}
	t.scanning = false
	if err != nil {
		log.Printf("riskscan: analysis failed: %v", err)
		t.mu.Unlock()
		return
	}
	t.assessment = analysis
	fn := t.onResult
	t.mu.Unlock()

	if fn != nil {
		fn(analysis)
	}
}

// ClearAssessment drops the current assessment and invalidates any pending
// or in-flight scan. Called when a submission begins so a stale assessment
// never displays against a new result.
func (t *Trigger) ClearAssessment() {
	t.mu.Lock()
	t.generation++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.scanning = false
	changed := t.assessment != nil
	t.assessment = nil
	fn := t.onResult
	t.mu.Unlock()
	if changed && fn != nil {
		fn(nil)
	}
}

// Close tears the trigger down, cancelling any pending scan.
func (t *Trigger) Close() {
	t.ClearAssessment()
}

// =============================================================================
// RECOMMENDATIONS
// =============================================================================

// ApplyRecommendations folds an assessment's auto-enable flags into the
// operator's protective options. Flags are only ever turned on; an option the
// operator set stays set.
func ApplyRecommendations(opts stego.ProtectiveOptions, a *stego.RiskAnalysis) stego.ProtectiveOptions {
	if a == nil {
		return opts
	}
	if a.AutoEnableBurn {
		opts.SelfDestruct = true
	}
	if a.AutoEnableDecoy {
		opts.StealthBitplane = true
	}
	return opts
}

// ExplainIssue maps a detected-issue label to an operator-facing explanation.
func ExplainIssue(issue string) string {
	switch {
	case strings.Contains(issue, "SSN"):
		return "Pattern matches a Social Security Number. High risk of identity theft if exposed."
	case strings.Contains(issue, "EMAIL"):
		return "Email address detected. Potential privacy risk for personal contact info."
	case strings.Contains(issue, "PHONE"):
		return "Phone number detected. PII (Personal Identifiable Information) found."
	case strings.Contains(issue, "IP_ADDRESS"):
		return "Network IP address detected. Could reveal server infrastructure."
	case strings.Contains(issue, "CRYPTO"):
		return "Cryptocurrency wallet address detected. Financial security risk."
	case strings.Contains(issue, "Keyword"):
		return "Contains high-risk terminology often associated with classified data."
	default:
		return "Suspicious text pattern detected by security algorithms."
	}
}
