// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"sync"
	"time"
)

// =============================================================================
// LOCKOUT
// =============================================================================

// Lockout tracks consecutive login failures and the countdown window that
// follows the final one. It owns a single repeating one-second ticker: the
// ticker is armed when the window opens, never stacked if the window is
// re-armed while running, and cancelled exactly when the countdown reaches
// zero.
type Lockout struct {
	mu sync.Mutex

	// maxAttempts is the consecutive-failure limit (default 3).
	maxAttempts int

	// windowSeconds is the lockout duration in seconds (default 60).
	windowSeconds int

	failures  int
	remaining int

	ticker *time.Ticker
	stop   chan struct{}

	// onTick, when set, receives the remaining seconds after every
	// decrement, including the final 0.
	onTick func(remaining int)

	// tickInterval is overridable in tests.
	tickInterval time.Duration
}

// NewLockout creates a lockout tracker.
func NewLockout(maxAttempts, windowSeconds int) *Lockout {
	return &Lockout{
		maxAttempts:   maxAttempts,
		windowSeconds: windowSeconds,
		tickInterval:  time.Second,
	}
}

// OnTick registers the countdown observer. Must be called before the first
// failure is recorded.
func (l *Lockout) OnTick(fn func(remaining int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onTick = fn
}

// Failures returns the current consecutive-failure count.
func (l *Lockout) Failures() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures
}

// Remaining returns the lockout seconds remaining, zero when unlocked.
func (l *Lockout) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.remaining
}

// Locked reports whether the lockout window is active.
func (l *Lockout) Locked() bool {
	return l.Remaining() > 0
}

// RecordFailure increments the failure count and, on reaching the limit,
// opens the lockout window. Returns true if this failure triggered (or
// re-triggered) a lockout.
func (l *Lockout) RecordFailure() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failures++
	if l.failures < l.maxAttempts {
		return false
	}

	l.remaining = l.windowSeconds
	l.armLocked()
	return true
}

// RecordSuccess resets the failure count and clears any active lockout.
func (l *Lockout) RecordSuccess() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failures = 0
	l.remaining = 0
	l.disarmLocked()
}

// Stop cancels the countdown ticker. For component teardown.
func (l *Lockout) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.disarmLocked()
}

// armLocked starts the countdown ticker if it is not already running.
// Caller holds l.mu.
func (l *Lockout) armLocked() {
	if l.ticker != nil {
		// Already counting down; the refreshed remaining value is
		// picked up by the existing ticker. No second timer.
		return
	}

	l.ticker = time.NewTicker(l.tickInterval)
	l.stop = make(chan struct{})

	go func(ticker *time.Ticker, stop chan struct{}) {
		for {
			select {
			case <-ticker.C:
				if l.decrement() {
					return
				}
			case <-stop:
				return
			}
		}
	}(l.ticker, l.stop)
}

// decrement reduces the countdown by one second. Returns true once the
// window has closed and the ticker has been cancelled.
func (l *Lockout) decrement() bool {
	l.mu.Lock()

	if l.remaining > 0 {
		l.remaining--
	}
	remaining := l.remaining
	done := remaining == 0
	if done {
		l.disarmLocked()
	}
	fn := l.onTick
	l.mu.Unlock()

	if fn != nil {
		fn(remaining)
	}
	return done
}

// disarmLocked cancels the ticker. Caller holds l.mu.
func (l *Lockout) disarmLocked() {
	if l.ticker != nil {
		l.ticker.Stop()
		l.ticker = nil
	}
	if l.stop != nil {
		close(l.stop)
		l.stop = nil
	}
}
