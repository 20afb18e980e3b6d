// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/asetha/stegvault-tui/internal/profile"
)

// =============================================================================
// LEDGER ENTRY
// =============================================================================

// Outcome values recorded in the ledger.
const (
	OutcomeGranted = "ACCESS GRANTED"
	OutcomeDenied  = "ACCESS DENIED"
)

// Entry is one immutable access-ledger record.
type Entry struct {
	LoginName string `json:"email"`
	Timestamp string `json:"timestamp"`
	Device    string `json:"device"`
	Outcome   string `json:"status"`
}

// timestampLayout is the human-readable display format used in entries.
const timestampLayout = "2006-01-02 15:04:05"

// =============================================================================
// LEDGER
// =============================================================================

// Ledger is the bounded, persisted record of verification attempts.
//
// Persistence uses a reversible base64 encoding of the JSON sequence.
// This is obfuscation, not encryption: it exists so the ledger is not
// casually readable when inspecting the profile store, and must never be
// relied on for confidentiality.
type Ledger struct {
	mu      sync.Mutex
	store   *profile.Store
	cap     int
	entries []Entry

	// now is overridable in tests.
	now func() time.Time
}

// NewLedger loads the persisted ledger from the profile store. A corrupt
// persisted value degrades to an empty ledger with a logged warning.
func NewLedger(store *profile.Store, cap int) *Ledger {
	l := &Ledger{store: store, cap: cap, now: time.Now}
	l.load()
	return l
}

func (l *Ledger) load() {
	raw, ok, err := l.store.Get(profile.KeyAccessLedger)
	if err != nil || !ok {
		if err != nil {
			log.Printf("access: cannot read ledger, starting empty: %v", err)
		}
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		log.Printf("access: ledger encoding corrupt, starting empty: %v", err)
		return
	}
	var entries []Entry
	if err := json.Unmarshal(decoded, &entries); err != nil {
		log.Printf("access: ledger JSON corrupt, starting empty: %v", err)
		return
	}
	l.entries = entries
}

// Record appends one entry for a verification attempt and persists the
// capped ledger.
func (l *Ledger) Record(loginName, device, outcome string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{
		LoginName: loginName,
		Timestamp: l.now().Format(timestampLayout),
		Device:    device,
		Outcome:   outcome,
	})
	if len(l.entries) > l.cap {
		l.entries = l.entries[len(l.entries)-l.cap:]
	}

	data, err := json.Marshal(l.entries)
	if err != nil {
		log.Printf("access: cannot marshal ledger: %v", err)
		return
	}
	if err := l.store.Set(profile.KeyAccessLedger, base64.StdEncoding.EncodeToString(data)); err != nil {
		log.Printf("access: cannot persist ledger: %v", err)
	}
}

// Recent returns up to n entries, newest first.
func (l *Ledger) Recent(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// Len returns the number of retained entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
