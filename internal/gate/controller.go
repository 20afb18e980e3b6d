// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package gate

import (
	"errors"
	"log"
	"sync"

	"github.com/asetha/stegvault-tui/internal/access"
	"github.com/asetha/stegvault-tui/internal/profile"
)

// =============================================================================
// STAGES
// =============================================================================

// Stage identifies the step of the admission flow the operator must clear
// next.
type Stage int

const (
	// StageCompliance means the agreement has not been accepted yet.
	StageCompliance Stage = iota

	// StageCredentials means the agreement is accepted but no identity is
	// authenticated.
	StageCredentials

	// StageAdmitted means protected actions are allowed.
	StageAdmitted
)

// String returns a short name for logging.
func (s Stage) String() string {
	switch s {
	case StageCompliance:
		return "compliance"
	case StageCredentials:
		return "credentials"
	case StageAdmitted:
		return "admitted"
	default:
		return "unknown"
	}
}

// =============================================================================
// SESSION STATE
// =============================================================================

// SessionState is the client-held session shape.
// Invariant: Authenticated implies CurrentIdentity is non-empty.
type SessionState struct {
	ComplianceAccepted bool
	Authenticated      bool
	CurrentIdentity    string
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotAdmitted is returned when a logout is requested outside an
	// admitted session.
	ErrNotAdmitted = errors.New("no admitted session")

	// ErrConfirmMismatch is returned when the logout confirmation secret
	// does not match the current identity.
	ErrConfirmMismatch = errors.New("Password incorrect. Logout failed.")
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the session state and drives the admission flow.
type Controller struct {
	mu sync.Mutex

	store    *profile.Store
	verifier *access.Verifier

	state         SessionState
	logoutPending bool
}

// NewController rehydrates session state from the profile store. A stored
// state that violates the session invariant (authenticated without an
// identity) is degraded to unauthenticated rather than trusted.
func NewController(store *profile.Store, verifier *access.Verifier) *Controller {
	c := &Controller{store: store, verifier: verifier}

	c.state.ComplianceAccepted = c.readFlag(profile.KeyComplianceAccepted)
	c.state.Authenticated = c.readFlag(profile.KeyAuthenticated)
	if identity, ok, err := store.Get(profile.KeyCurrentIdentity); err == nil && ok {
		c.state.CurrentIdentity = identity
	}

	if c.state.Authenticated && c.state.CurrentIdentity == "" {
		log.Printf("gate: stored session has no identity, dropping authentication")
		c.state.Authenticated = false
		c.persistTeardownAuth()
	}

	return c
}

func (c *Controller) readFlag(key string) bool {
	v, ok, err := c.store.Get(key)
	if err != nil {
		log.Printf("gate: cannot read %s, assuming unset: %v", key, err)
		return false
	}
	return ok && v == "true"
}

// State returns a copy of the current session state.
func (c *Controller) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Verifier exposes the credential verifier for countdown/ledger display.
func (c *Controller) Verifier() *access.Verifier { return c.verifier }

// LastLoginName returns the last successfully admitted login name, for
// prefilling the credential step. Empty on a cold profile.
func (c *Controller) LastLoginName() string {
	v, _, _ := c.store.Get(profile.KeyLastLoginName)
	return v
}

// =============================================================================
// ADMISSION FLOW
// =============================================================================

// RequestAdmission reports which step of the admission flow must be
// presented next. It is idempotent: calling it while admitted changes
// nothing and returns StageAdmitted.
func (c *Controller) RequestAdmission() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case !c.state.ComplianceAccepted:
		return StageCompliance
	case !c.state.Authenticated:
		return StageCredentials
	default:
		return StageAdmitted
	}
}

// AcceptCompliance records agreement acceptance and persists it. When the
// session is not yet authenticated the flow chains straight into the
// credential step; an already authenticated session is admitted as-is.
//
// Precondition (enforced by the caller, not here): the full agreement text
// has been scrolled into view.
func (c *Controller) AcceptCompliance() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ComplianceAccepted = true
	c.persistFlag(profile.KeyComplianceAccepted, true)

	if !c.state.Authenticated {
		return StageCredentials
	}
	return StageAdmitted
}

// SubmitCredentials runs the credential step. Verification, lockout
// accounting, and ledger recording are delegated to the access verifier;
// on grant the session becomes authenticated and is persisted.
func (c *Controller) SubmitCredentials(loginName, secret string) error {
	if err := c.verifier.Verify(loginName, secret); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Authenticated = true
	c.state.CurrentIdentity = loginName
	c.persistFlag(profile.KeyAuthenticated, true)
	c.persistString(profile.KeyCurrentIdentity, loginName)
	c.persistString(profile.KeyLastLoginName, loginName)
	return nil
}

// =============================================================================
// LOGOUT FLOW
// =============================================================================

// RequestLogout opens the logout confirmation sub-flow. Only an admitted
// session can log out.
func (c *Controller) RequestLogout() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Authenticated {
		return ErrNotAdmitted
	}
	c.logoutPending = true
	return nil
}

// LogoutPending reports whether the confirmation sub-flow is open.
func (c *Controller) LogoutPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logoutPending
}

// CancelLogout closes the confirmation sub-flow without side effects.
func (c *Controller) CancelLogout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logoutPending = false
}

// ConfirmLogout completes the logout after re-verifying the current
// identity's secret. A mismatch leaves the sub-flow open and carries no
// attempt accounting - retries here are unlimited, unlike login.
//
// On success the entire session is torn down, compliance included: the
// next admission starts from the agreement again.
func (c *Controller) ConfirmLogout(secret string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.logoutPending || !c.state.Authenticated {
		return ErrNotAdmitted
	}

	if !c.verifier.ConfirmSecret(c.state.CurrentIdentity, secret) {
		return ErrConfirmMismatch
	}

	c.state = SessionState{}
	c.logoutPending = false
	c.persistTeardownAuth()
	c.deleteKey(profile.KeyComplianceAccepted)
	return nil
}

// =============================================================================
// PERSISTENCE HELPERS
// =============================================================================

func (c *Controller) persistFlag(key string, v bool) {
	val := "false"
	if v {
		val = "true"
	}
	if err := c.store.Set(key, val); err != nil {
		log.Printf("gate: cannot persist %s: %v", key, err)
	}
}

func (c *Controller) persistString(key, v string) {
	if err := c.store.Set(key, v); err != nil {
		log.Printf("gate: cannot persist %s: %v", key, err)
	}
}

func (c *Controller) persistTeardownAuth() {
	c.deleteKey(profile.KeyAuthenticated)
	c.deleteKey(profile.KeyCurrentIdentity)
}

func (c *Controller) deleteKey(key string) {
	if err := c.store.Delete(key); err != nil {
		log.Printf("gate: cannot clear %s: %v", key, err)
	}
}
