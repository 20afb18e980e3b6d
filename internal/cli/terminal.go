// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for the stegvault CLI.
//
// Ensures proper behavior in different environments: interactive terminals
// get the full TUI, piped output gets plain text, and NO_COLOR is honored.
package cli

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTTY returns true if stdin is a terminal.
// Use this to determine if the interactive TUI can be started.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
// Use this to determine if colored output should be used.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the stdout terminal width, or the fallback when it
// cannot be determined.
func TerminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// ColorEnabled reports whether colored output should be produced.
// Honors the NO_COLOR convention.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsStdoutTTY()
}

// colorProfile returns the termenv profile CLI output renders with:
// the detected terminal profile, or Ascii when colors are disabled.
func colorProfile() termenv.Profile {
	if !ColorEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}
