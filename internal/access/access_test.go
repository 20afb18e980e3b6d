// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asetha/stegvault-tui/internal/credstore"
	"github.com/asetha/stegvault-tui/internal/profile"
)

func newTestVerifier(t *testing.T) (*Verifier, *profile.Store) {
	t.Helper()
	store := profile.OpenMemory()
	creds := credstore.FromCredentials([]credstore.Credential{
		{Login: "officer@gov.in", Secret: "govAccess456"},
		{Login: "auditor@gov.in", Secret: "audit2025!"},
	})
	lockout := NewLockout(3, 60)
	t.Cleanup(lockout.Stop)
	ledger := NewLedger(store, 10)
	return NewVerifier(creds, "@gov.in", lockout, ledger), store
}

func TestVerifyGranted(t *testing.T) {
	v, _ := newTestVerifier(t)

	require.NoError(t, v.Verify("officer@gov.in", "govAccess456"))
	assert.Equal(t, 0, v.Lockout().Failures())

	recent := v.Ledger().Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, OutcomeGranted, recent[0].Outcome)
	assert.Equal(t, "officer@gov.in", recent[0].LoginName)
	assert.NotEmpty(t, recent[0].Device)
	assert.NotEmpty(t, recent[0].Timestamp)
}

func TestVerifySuffixShortCircuit(t *testing.T) {
	v, _ := newTestVerifier(t)

	err := v.Verify("officer@example.com", "govAccess456")
	var denied *DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Contains(t, denied.Reason, "@gov.in")
	assert.True(t, errors.Is(err, ErrDenied))
}

func TestThreeFailuresLockFor60Seconds(t *testing.T) {
	v, _ := newTestVerifier(t)

	// First two failures surface as denials with mounting counts.
	for want := 1; want <= 2; want++ {
		err := v.Verify("officer@gov.in", "wrong")
		var denied *DeniedError
		require.ErrorAs(t, err, &denied, "attempt %d", want)
		assert.Equal(t, want, denied.Failures)
	}

	// Third failure crosses the limit: lockout, not denial.
	err := v.Verify("officer@gov.in", "wrong")
	var locked *LockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, 60, locked.RemainingSeconds)
	assert.True(t, v.Lockout().Locked())
}

func TestCorrectSecretDuringLockoutIsStillLocked(t *testing.T) {
	v, _ := newTestVerifier(t)

	for i := 0; i < 3; i++ {
		_ = v.Verify("officer@gov.in", "wrong")
	}
	require.True(t, v.Lockout().Locked())

	// The allow-list must not rescue a locked attempt.
	err := v.Verify("officer@gov.in", "govAccess456")
	var locked *LockedError
	require.ErrorAs(t, err, &locked)
	assert.False(t, errors.Is(err, ErrDenied))
	assert.True(t, errors.Is(err, ErrLocked))
}

func TestSuccessResetsFailures(t *testing.T) {
	v, _ := newTestVerifier(t)

	_ = v.Verify("officer@gov.in", "wrong")
	_ = v.Verify("officer@gov.in", "wrong")
	assert.Equal(t, 2, v.Lockout().Failures())

	require.NoError(t, v.Verify("officer@gov.in", "govAccess456"))
	assert.Equal(t, 0, v.Lockout().Failures())
	assert.False(t, v.Lockout().Locked())
}

func TestConfirmSecretNoAccounting(t *testing.T) {
	v, _ := newTestVerifier(t)

	// Unlimited retries: mismatches never feed the lockout counter.
	for i := 0; i < 5; i++ {
		assert.False(t, v.ConfirmSecret("officer@gov.in", "nope"))
	}
	assert.Equal(t, 0, v.Lockout().Failures())
	assert.True(t, v.ConfirmSecret("officer@gov.in", "govAccess456"))
}

func TestLedgerCapKeepsMostRecent(t *testing.T) {
	store := profile.OpenMemory()
	ledger := NewLedger(store, 10)

	for i := 0; i < 15; i++ {
		ledger.Record(fmt.Sprintf("user%d@gov.in", i), "dev", OutcomeDenied)
	}

	require.Equal(t, 10, ledger.Len())
	recent := ledger.Recent(0)
	require.Len(t, recent, 10)
	assert.Equal(t, "user14@gov.in", recent[0].LoginName, "newest first")
	assert.Equal(t, "user5@gov.in", recent[9].LoginName, "oldest retained is the 6th")
}

func TestLedgerPersistsObfuscated(t *testing.T) {
	store := profile.OpenMemory()
	ledger := NewLedger(store, 10)
	ledger.Record("officer@gov.in", "dev", OutcomeGranted)

	raw, ok, err := store.Get(profile.KeyAccessLedger)
	require.NoError(t, err)
	require.True(t, ok)

	// The stored value is not plain JSON but decodes back to it.
	var direct []Entry
	assert.Error(t, json.Unmarshal([]byte(raw), &direct))

	decoded, err := base64.StdEncoding.DecodeString(raw)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(decoded, &direct))
	require.Len(t, direct, 1)
	assert.Equal(t, OutcomeGranted, direct[0].Outcome)

	// A fresh ledger over the same store rehydrates the entries.
	reloaded := NewLedger(store, 10)
	assert.Equal(t, 1, reloaded.Len())
}

func TestLedgerCorruptStateStartsEmpty(t *testing.T) {
	store := profile.OpenMemory()
	require.NoError(t, store.Set(profile.KeyAccessLedger, "%%% not base64 %%%"))

	ledger := NewLedger(store, 10)
	assert.Equal(t, 0, ledger.Len())
}

func TestLockoutCountdownReachesZeroAndStops(t *testing.T) {
	l := NewLockout(3, 3)
	l.tickInterval = 10 * time.Millisecond

	var ticks []int
	done := make(chan struct{})
	l.OnTick(func(remaining int) {
		ticks = append(ticks, remaining)
		if remaining == 0 {
			close(done)
		}
	})

	for i := 0; i < 3; i++ {
		l.RecordFailure()
	}
	require.True(t, l.Locked())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("countdown never reached zero")
	}

	assert.Equal(t, []int{2, 1, 0}, ticks)
	assert.False(t, l.Locked())
	// Ticker is disarmed; waiting longer must not produce more ticks.
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, ticks, 3)
}

func TestLockoutRearmDoesNotStackTimers(t *testing.T) {
	l := NewLockout(1, 5)
	l.tickInterval = 10 * time.Millisecond
	defer l.Stop()

	l.RecordFailure()
	require.True(t, l.Locked())
	l.mu.Lock()
	first := l.ticker
	l.mu.Unlock()

	// Another failure while already locked refreshes the window but must
	// reuse the running ticker.
	l.RecordFailure()
	assert.Equal(t, 5, l.Remaining())
	l.mu.Lock()
	second := l.ticker
	l.mu.Unlock()
	assert.Same(t, first, second)
}
