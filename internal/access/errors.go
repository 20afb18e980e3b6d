// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification with errors.Is.
var (
	// ErrDenied marks a credential rejection (wrong name or secret).
	ErrDenied = errors.New("access denied")

	// ErrLocked marks a rejection caused purely by an active lockout
	// window, independent of credential correctness.
	ErrLocked = errors.New("login locked")
)

// DeniedError reports a failed credential check.
type DeniedError struct {
	// Reason is the operator-facing denial message.
	Reason string

	// Failures is the consecutive-failure count after this attempt.
	Failures int
}

func (e *DeniedError) Error() string { return e.Reason }

func (e *DeniedError) Unwrap() error { return ErrDenied }

// LockedError reports that the login step is inside a lockout window.
type LockedError struct {
	// RemainingSeconds is the countdown at the moment of rejection.
	RemainingSeconds int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("Too many failed attempts. Try again in %ds.", e.RemainingSeconds)
}

func (e *LockedError) Unwrap() error { return ErrLocked }

// IsLocked reports whether err stems from an active lockout window.
func IsLocked(err error) bool {
	return errors.Is(err, ErrLocked)
}
