// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workflow orchestrates embed and extract submissions against the
// steganography service.
//
// The orchestrator owns the single in-flight operation slot: while one
// submission is running every further submission is rejected with ErrBusy
// rather than queued. Each submission validates its inputs before anything
// touches the network, tracks upload progress from 0 to 100, and on success
// records a history entry for operations that produce a reusable key.
package workflow
