// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package access implements credential verification, unsuccessful-attempt
// lockout, and the local access ledger.
//
// Verification is deliberately narrow: a login name must carry the required
// domain suffix, appear on the fixed allow-list, and present an exactly
// matching secret. Three consecutive failures lock the login step for a
// fixed window; the countdown runs on a single one-second ticker that is
// cancelled the moment it reaches zero.
//
// Every verification attempt appends one entry to the access ledger, which
// is persisted behind a reversible encoding. The encoding is advisory
// obfuscation only, NOT a security control - it keeps the ledger from being
// casually readable in the profile store and nothing more.
package access
