// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gate implements the session admission gate.
//
// Admission is an ordered two-step flow: the operator first accepts the
// confidentiality agreement, then presents credentials. Both flags persist
// across restarts. Logout runs the flow in reverse and is deliberately
// total: confirming a logout tears the whole session down, compliance
// acceptance included, so the next admission re-imposes both steps.
//
// The controller is the only writer of session state. Every protected
// action asks it for admission first; asking while already admitted is a
// cheap no-op.
package gate
