// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package riskscan

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asetha/stegvault-tui/internal/stego"
)

// fakeAnalyzer records scan calls and serves canned results.
type fakeAnalyzer struct {
	mu      sync.Mutex
	calls   []string
	result  *stego.RiskAnalysis
	block   chan struct{} // when non-nil, AnalyzeText waits on it
}

func (f *fakeAnalyzer) AnalyzeText(ctx context.Context, text string) (*stego.RiskAnalysis, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	block := f.block
	res := f.result
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if res == nil {
		res = &stego.RiskAnalysis{RiskLevel: "LOW"}
	}
	return res, nil
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

const testDebounce = 20 * time.Millisecond

// settle waits long enough for a pending debounce to fire and resolve.
func settle() {
	time.Sleep(5 * testDebounce)
}

func TestShortTextNeverScans(t *testing.T) {
	fake := &fakeAnalyzer{}
	tr := NewTrigger(fake, WithDebounce(testDebounce))
	defer tr.Close()

	tr.Observe("abcd", true)
	settle()

	assert.Zero(t, fake.callCount())
	assert.Nil(t, tr.Assessment())
}

func TestFiveCharsScansExactlyOnce(t *testing.T) {
	fake := &fakeAnalyzer{}
	tr := NewTrigger(fake, WithDebounce(testDebounce))
	defer tr.Close()

	tr.Observe("abcde", true)
	settle()

	assert.Equal(t, 1, fake.callCount())
	require.NotNil(t, tr.Assessment())
	assert.False(t, tr.Scanning())
}

func TestFileModeInactive(t *testing.T) {
	fake := &fakeAnalyzer{}
	tr := NewTrigger(fake, WithDebounce(testDebounce))
	defer tr.Close()

	tr.Observe("plenty of text here", false)
	settle()

	assert.Zero(t, fake.callCount())
}

func TestEditsWithinWindowCollapseToOneScan(t *testing.T) {
	fake := &fakeAnalyzer{}
	tr := NewTrigger(fake, WithDebounce(testDebounce))
	defer tr.Close()

	tr.Observe("first draft", true)
	time.Sleep(testDebounce / 4)
	tr.Observe("second draft", true)
	time.Sleep(testDebounce / 4)
	tr.Observe("final draft", true)
	settle()

	fake.mu.Lock()
	calls := append([]string(nil), fake.calls...)
	fake.mu.Unlock()

	require.Len(t, calls, 1, "only the last edit's scan should fire")
	assert.Equal(t, "final draft", calls[0])
}

func TestStaleResultDiscardedAfterNewerEdit(t *testing.T) {
	block := make(chan struct{})
	fake := &fakeAnalyzer{
		block:  block,
		result: &stego.RiskAnalysis{RiskLevel: "HIGH"},
	}
	tr := NewTrigger(fake, WithDebounce(testDebounce))
	defer tr.Close()

	tr.Observe("old secret", true)

	// Wait for the first scan to be in flight, then supersede it with an
	// edit that falls below the threshold.
	for i := 0; i < 100 && fake.callCount() == 0; i++ {
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, 1, fake.callCount())
	tr.Observe("", true)

	close(block)
	settle()

	assert.Nil(t, tr.Assessment(), "superseded scan result must be discarded")
}

func TestClearAssessmentDiscardsInFlightScan(t *testing.T) {
	block := make(chan struct{})
	fake := &fakeAnalyzer{
		block:  block,
		result: &stego.RiskAnalysis{RiskLevel: "HIGH"},
	}
	tr := NewTrigger(fake, WithDebounce(testDebounce))
	defer tr.Close()

	tr.Observe("sensitive secret", true)
	for i := 0; i < 100 && fake.callCount() == 0; i++ {
		time.Sleep(time.Millisecond)
	}

	tr.ClearAssessment()
	close(block)
	settle()

	assert.Nil(t, tr.Assessment())
	assert.False(t, tr.Scanning())
}

func TestResultCallbackFires(t *testing.T) {
	fake := &fakeAnalyzer{result: &stego.RiskAnalysis{RiskLevel: "MEDIUM", ThreatScore: 40}}
	tr := NewTrigger(fake, WithDebounce(testDebounce))
	defer tr.Close()

	results := make(chan *stego.RiskAnalysis, 1)
	tr.OnResult(func(a *stego.RiskAnalysis) { results <- a })

	tr.Observe("some secret text", true)

	select {
	case a := <-results:
		require.NotNil(t, a)
		assert.Equal(t, "MEDIUM", a.RiskLevel)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
}

// =============================================================================
// RECOMMENDATION TESTS
// =============================================================================

func TestApplyRecommendationsOnlyEnables(t *testing.T) {
	// Operator enabled everything; a scan recommending nothing must not
	// turn anything off.
	opts := stego.ProtectiveOptions{SelfDestruct: true, OffsiteBackup: true, StealthBitplane: true}
	out := ApplyRecommendations(opts, &stego.RiskAnalysis{})
	assert.Equal(t, opts, out)

	// A scan recommending burn enables it without touching the rest.
	out = ApplyRecommendations(stego.ProtectiveOptions{}, &stego.RiskAnalysis{AutoEnableBurn: true})
	assert.True(t, out.SelfDestruct)
	assert.False(t, out.OffsiteBackup)
	assert.False(t, out.StealthBitplane)

	out = ApplyRecommendations(stego.ProtectiveOptions{}, &stego.RiskAnalysis{AutoEnableDecoy: true})
	assert.True(t, out.StealthBitplane)

	assert.Equal(t, stego.ProtectiveOptions{}, ApplyRecommendations(stego.ProtectiveOptions{}, nil))
}

func TestExplainIssue(t *testing.T) {
	assert.Contains(t, ExplainIssue("SSN detected"), "Social Security")
	assert.Contains(t, ExplainIssue("CRYPTO wallet"), "Cryptocurrency")
	assert.Contains(t, ExplainIssue("something odd"), "Suspicious text pattern")
}
