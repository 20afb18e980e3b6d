// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package profile provides the durable key-value store scoped to the
// operator's local profile directory.
//
// Every stateful component of the client (session gate, access ledger,
// operation history) persists through this store so it survives process
// restarts. Writers own disjoint keys; no multi-key transaction guarantee
// is provided or needed.
//
// Corrupt or unopenable storage never fails startup: the store degrades to
// an in-memory map and logs a warning, so a damaged profile costs saved
// state, not the ability to run.
package profile
