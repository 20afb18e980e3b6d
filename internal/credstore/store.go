// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package credstore

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2Iterations is the iteration count for hashed credential entries.
// Matches the OWASP recommendation for PBKDF2-SHA256.
const PBKDF2Iterations = 600000

// digestSize is the PBKDF2 output size in bytes.
const digestSize = 32

// =============================================================================
// CREDENTIAL
// =============================================================================

// Credential is one allow-list entry. Exactly one of Secret or SecretHash
// is expected; when both are present the hash wins.
type Credential struct {
	// Login is the full login name including the domain suffix.
	Login string `toml:"login"`

	// Secret is the plaintext secret. Compared exactly, case-sensitive.
	Secret string `toml:"secret,omitempty"`

	// SecretHash is the hex PBKDF2-SHA256 digest of the secret.
	SecretHash string `toml:"secret_hash,omitempty"`

	// Salt is the hex salt for SecretHash.
	Salt string `toml:"salt,omitempty"`
}

// Matches reports whether the supplied secret matches this entry.
// Comparison is constant-time in both forms.
func (c Credential) Matches(secret string) bool {
	if c.SecretHash != "" {
		want, err := hex.DecodeString(c.SecretHash)
		if err != nil || len(want) != digestSize {
			return false
		}
		salt, err := hex.DecodeString(c.Salt)
		if err != nil {
			return false
		}
		got := pbkdf2.Key([]byte(secret), salt, PBKDF2Iterations, digestSize, sha256.New)
		return subtle.ConstantTimeCompare(got, want) == 1
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(c.Secret)) == 1
}

// HashSecret derives the stored digest form of a secret, for provisioning
// credential files without plaintext.
func HashSecret(secret string, salt []byte) string {
	return hex.EncodeToString(pbkdf2.Key([]byte(secret), salt, PBKDF2Iterations, digestSize, sha256.New))
}

// =============================================================================
// STORE
// =============================================================================

// credFile is the on-disk shape of the credentials file.
type credFile struct {
	Identities []Credential `toml:"identities"`
}

// Store serves the allow-list. It is immutable from the caller's point of
// view; mutation happens only through file reloads.
type Store struct {
	mu    sync.RWMutex
	path  string
	byLog map[string]Credential

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Load reads the allow-list from a TOML file.
func Load(path string) (*Store, error) {
	s := &Store{path: path, byLog: make(map[string]Credential)}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Defaults returns the built-in allow-list used when no credentials file
// has been provisioned. Plaintext on purpose: these are the stock demo
// identities, not production secrets.
func Defaults() []Credential {
	return []Credential{
		{Login: "admin@gov.in", Secret: "secure123"},
		{Login: "officer@gov.in", Secret: "govAccess456"},
		{Login: "director@gov.in", Secret: "topsecret789"},
		{Login: "auditor@gov.in", Secret: "audit2025!"},
		{Login: "itdept@gov.in", Secret: "sysLock#99"},
	}
}

// FromCredentials builds a store from an in-memory list. Used by tests and
// by callers that manage their own configuration source.
func FromCredentials(creds []Credential) *Store {
	s := &Store{byLog: make(map[string]Credential, len(creds))}
	for _, c := range creds {
		s.byLog[c.Login] = c
	}
	return s
}

func (s *Store) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read credentials %s: %w", s.path, err)
	}

	var f credFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse credentials %s: %w", s.path, err)
	}
	if len(f.Identities) == 0 {
		return fmt.Errorf("credentials %s: no identities defined", s.path)
	}

	byLog := make(map[string]Credential, len(f.Identities))
	for _, c := range f.Identities {
		if c.Login == "" {
			return fmt.Errorf("credentials %s: entry with empty login", s.path)
		}
		byLog[c.Login] = c
	}

	s.mu.Lock()
	s.byLog = byLog
	s.mu.Unlock()
	return nil
}

// Lookup returns the credential for a login name.
func (s *Store) Lookup(login string) (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byLog[login]
	return c, ok
}

// Len returns the number of identities on the allow-list.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byLog)
}

// =============================================================================
// HOT RELOAD
// =============================================================================

// Watch starts watching the backing file and reloads it on change.
// A failed reload keeps the previous list and logs the error.
func (s *Store) Watch() error {
	if s.path == "" {
		return fmt.Errorf("credstore: no backing file to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("credstore watch: %w", err)
	}
	if err := watcher.Add(s.path); err != nil {
		watcher.Close()
		return fmt.Errorf("credstore watch %s: %w", s.path, err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write ||
					event.Op&fsnotify.Create == fsnotify.Create {
					if err := s.reload(); err != nil {
						log.Printf("credstore: reload failed, keeping previous list: %v", err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("credstore: watch error: %v", err)
			case <-s.done:
				return
			}
		}
	}()

	return nil
}

// Close stops the watcher if one is running.
func (s *Store) Close() error {
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}
