// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history keeps the bounded, persisted record of completed
// embed/extract operations.
//
// The ledger is append-only from the caller's point of view: entries are
// prepended newest-first, the sequence is truncated to its cap, and the
// whole truncated sequence is persisted in a single write so readers never
// observe a partial state. Entries exist so a later extraction can reuse a
// previous session key without retyping it.
package history

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/asetha/stegvault-tui/internal/profile"
)

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one immutable operation record.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"time"`

	// Operation is a short label such as "File Hidden" or "Text Embedded".
	Operation string `json:"type"`

	// Key is the session key returned by the service, when the operation
	// produced one.
	Key string `json:"key,omitempty"`

	// AssetURL points at the produced stego asset.
	AssetURL string `json:"stego_url,omitempty"`

	// IPFSHash is the off-site storage identifier, when requested.
	IPFSHash string `json:"ipfs_hash,omitempty"`

	// Mode is the submission mode the operation ran under.
	Mode string `json:"mode,omitempty"`

	// Detail carries a short human note (frame stats, filenames).
	Detail string `json:"detail,omitempty"`
}

// Reused is the projection handed back for pre-filling a later operation.
type Reused struct {
	Key      string
	AssetURL string
}

// =============================================================================
// LEDGER
// =============================================================================

// Ledger is the size-bounded operation history.
type Ledger struct {
	mu      sync.Mutex
	store   *profile.Store
	cap     int
	entries []Entry

	now func() time.Time
}

// NewLedger loads the persisted history. Corrupt persisted state degrades
// to an empty ledger with a logged warning - never an error to the caller.
func NewLedger(store *profile.Store, cap int) *Ledger {
	l := &Ledger{store: store, cap: cap, now: time.Now}
	l.load()
	return l
}

func (l *Ledger) load() {
	raw, ok, err := l.store.Get(profile.KeyOperationHistory)
	if err != nil {
		log.Printf("history: cannot read ledger, starting empty: %v", err)
		return
	}
	if !ok {
		return
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Printf("history: persisted ledger corrupt, starting empty: %v", err)
		return
	}
	l.entries = entries
}

// Append records a completed operation. The entry is stamped with an ID and
// creation time, prepended, and the capped sequence is persisted in one
// write.
func (l *Ledger) Append(entry Entry) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.ID = uuid.NewString()
	entry.CreatedAt = l.now()

	next := make([]Entry, 0, len(l.entries)+1)
	next = append(next, entry)
	next = append(next, l.entries...)
	if len(next) > l.cap {
		next = next[:l.cap]
	}
	l.entries = next

	l.persistLocked()
	return entry
}

func (l *Ledger) persistLocked() {
	data, err := json.Marshal(l.entries)
	if err != nil {
		log.Printf("history: cannot marshal ledger: %v", err)
		return
	}
	if err := l.store.Set(profile.KeyOperationHistory, string(data)); err != nil {
		log.Printf("history: cannot persist ledger: %v", err)
	}
}

// Entries returns a copy of the ledger, newest first.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Reuse projects an entry into the fields a later operation pre-fills.
// Pure read: the ledger is not mutated and the entry stays in place.
func (l *Ledger) Reuse(entry Entry) Reused {
	return Reused{Key: entry.Key, AssetURL: entry.AssetURL}
}
