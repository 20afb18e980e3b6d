// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the global keyboard bindings for the workspace.
type KeyMap struct {
	Quit          key.Binding
	Logout        key.Binding
	ToggleSidebar key.Binding
	Dashboard     key.Binding
	CycleMode     key.Binding
	ToggleSource  key.Binding
	SwapForm      key.Binding
}

// DefaultKeyMap returns the default global bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "logout"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "history"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "dashboard"),
		),
		CycleMode: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "embed mode"),
		),
		ToggleSource: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "extract source"),
		),
		SwapForm: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "switch form"),
		),
	}
}

// shortcuts returns the help pairs rendered in the status bar.
func (k KeyMap) shortcuts() [][2]string {
	pairs := [][2]string{}
	for _, b := range []key.Binding{
		k.SwapForm, k.CycleMode, k.ToggleSource, k.ToggleSidebar, k.Dashboard, k.Logout, k.Quit,
	} {
		h := b.Help()
		pairs = append(pairs, [2]string{h.Key, h.Desc})
	}
	return pairs
}
