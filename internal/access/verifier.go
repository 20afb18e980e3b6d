// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"fmt"
	"strings"

	"github.com/asetha/stegvault-tui/internal/credstore"
)

// =============================================================================
// VERIFIER
// =============================================================================

// Verifier validates identity/secret pairs against the externalized
// allow-list, with attempt accounting and ledger recording.
type Verifier struct {
	creds   *credstore.Store
	suffix  string
	lockout *Lockout
	ledger  *Ledger

	// device is computed once; the fingerprint does not change while the
	// process lives.
	device string
}

// NewVerifier wires a verifier from its collaborators.
func NewVerifier(creds *credstore.Store, suffix string, lockout *Lockout, ledger *Ledger) *Verifier {
	return &Verifier{
		creds:   creds,
		suffix:  suffix,
		lockout: lockout,
		ledger:  ledger,
		device:  DeviceFingerprint(),
	}
}

// Lockout exposes the attempt tracker for countdown display.
func (v *Verifier) Lockout() *Lockout { return v.lockout }

// Ledger exposes the access ledger for display.
func (v *Verifier) Ledger() *Ledger { return v.ledger }

// Verify checks a login attempt. Returns nil on grant.
//
// While a lockout window is active every call is rejected with a
// LockedError before the allow-list is consulted, regardless of whether
// the credentials would have been correct.
//
// Every attempt, granted or denied, lands in the access ledger.
func (v *Verifier) Verify(loginName, secret string) error {
	if v.lockout.Locked() {
		v.ledger.Record(loginName, v.device, OutcomeDenied)
		return &LockedError{RemainingSeconds: v.lockout.Remaining()}
	}

	// Suffix convention short-circuits obviously invalid names before the
	// allow-list is consulted.
	if !strings.HasSuffix(loginName, v.suffix) {
		v.ledger.Record(loginName, v.device, OutcomeDenied)
		return v.deny(fmt.Sprintf("Login name must end with %s", v.suffix))
	}

	cred, ok := v.creds.Lookup(loginName)
	if !ok || !cred.Matches(secret) {
		v.ledger.Record(loginName, v.device, OutcomeDenied)
		return v.deny("Invalid credentials or unauthorized access.")
	}

	v.lockout.RecordSuccess()
	v.ledger.Record(loginName, v.device, OutcomeGranted)
	return nil
}

// ConfirmSecret re-checks the secret of an already admitted identity, for
// logout confirmation. Unlike Verify it carries no attempt accounting and
// no lockout: the operator is already inside and may retry freely.
func (v *Verifier) ConfirmSecret(loginName, secret string) bool {
	cred, ok := v.creds.Lookup(loginName)
	return ok && cred.Matches(secret)
}

// deny records a failure and converts it to the right error shape: the
// failure that crosses the attempt limit surfaces as a lockout, not a
// plain denial.
func (v *Verifier) deny(reason string) error {
	if v.lockout.RecordFailure() {
		return &LockedError{RemainingSeconds: v.lockout.Remaining()}
	}
	return &DeniedError{Reason: reason, Failures: v.lockout.Failures()}
}
