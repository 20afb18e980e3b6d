// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stego provides the HTTP client for the remote steganography
// service.
//
// The service is a black box: this client only assembles multipart
// submissions, tracks upload progress, and decodes the JSON envelope every
// endpoint shares ({"status": "success", ...} plus mode-specific fields,
// or an optional human-readable "message" on failure).
//
// Operation calls are deliberately unbounded: embedding a payload into a
// large video can take arbitrarily long and the client must never abandon
// an in-flight request because time passed. Only the stats poll carries a
// timeout.
package stego
