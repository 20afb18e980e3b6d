// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package profile

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Well-known keys. Each key has exactly one writing component; the store
// itself does not arbitrate ownership.
const (
	KeyComplianceAccepted = "nda_agreed"
	KeyAuthenticated      = "logged_in"
	KeyCurrentIdentity    = "current_user"
	KeyLastLoginName      = "last_login_name"
	KeyAccessLedger       = "access_logs"
	KeyOperationHistory   = "stego_history_v1"
)

// DefaultFileName is the profile database file name under the state dir.
const DefaultFileName = "profile.db"

const schema = `
CREATE TABLE IF NOT EXISTS profile (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Store is a process-wide string key-value store backed by SQLite.
// Each Set is a single UPSERT, so readers never observe a partial write.
//
// The zero value is not usable; construct with Open or OpenMemory.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	mem map[string]string // fallback when the database cannot be opened
}

// Open opens (creating if needed) the profile store at path.
//
// A database that cannot be opened or initialized degrades to a volatile
// in-memory store: persisted state is lost but the client still starts.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.Printf("profile: cannot create state dir, falling back to memory: %v", err)
		return OpenMemory(), nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Printf("profile: cannot open store, falling back to memory: %v", err)
		return OpenMemory(), nil
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			log.Printf("profile: pragma failed, falling back to memory: %v", err)
			return OpenMemory(), nil
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		log.Printf("profile: schema init failed, falling back to memory: %v", err)
		return OpenMemory(), nil
	}

	return &Store{db: db}, nil
}

// OpenMemory returns a store that lives only for the current process.
// Used as the corruption fallback and in tests.
func OpenMemory() *Store {
	return &Store{mem: make(map[string]string)}
}

// Get returns the value for key. The boolean reports whether the key exists;
// a missing key is not an error (first run is always a cold start).
func (s *Store) Get(key string) (string, bool, error) {
	if s.mem != nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		v, ok := s.mem[key]
		return v, ok, nil
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM profile WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("profile read %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any prior value in one statement.
func (s *Store) Set(key, value string) error {
	if s.mem != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.mem[key] = value
		return nil
	}

	_, err := s.db.Exec(
		"INSERT INTO profile (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("profile write %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	if s.mem != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.mem, key)
		return nil
	}

	if _, err := s.db.Exec("DELETE FROM profile WHERE key = ?", key); err != nil {
		return fmt.Errorf("profile delete %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying database. Safe on the memory fallback.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
