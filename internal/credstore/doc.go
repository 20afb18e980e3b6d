// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package credstore loads and serves the fixed identity allow-list.
//
// The allow-list is external configuration, never compiled in: it lives in a
// TOML file so the core carries no literal secrets. Entries hold either a
// plaintext secret (matched exactly, case-sensitive) or a PBKDF2-SHA256
// digest so deployments can avoid storing plaintext at rest.
//
// The store can watch its backing file and hot-reload on change; a reload
// that fails to parse keeps the previous list.
package credstore
