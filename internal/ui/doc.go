// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the Bubble Tea terminal interface for StegVault.
//
// The interface is gated: the operator must scroll through and accept the
// confidentiality agreement, then present valid credentials, before the
// embed/extract workspace is shown. Logout requires re-presenting the
// secret. The workspace has a home tab with the embed and extract forms, a
// dashboard tab polling service counters, and a toggleable history sidebar.
package ui
