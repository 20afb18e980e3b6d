// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asetha/stegvault-tui/internal/ui/styles"
	"github.com/asetha/stegvault-tui/internal/util"
	"github.com/asetha/stegvault-tui/internal/workflow"
)

// =============================================================================
// EXTRACT FORM
// =============================================================================

const (
	extractFocusAsset = iota
	extractFocusKey
	extractFocusSubmit
)

// ExtractForm is the recovery side of the home tab.
type ExtractForm struct {
	theme *styles.Theme
	orch  *workflow.Orchestrator

	source    workflow.ExtractSource
	assetPath textinput.Model
	key       textinput.Model
	focused   int

	// outDir is where recovered file payloads are written.
	outDir string

	result    *workflow.ExtractOutcome
	savedPath string
	errText   string
	busy      bool
}

// NewExtractForm creates the extract form. Recovered files are written under
// outDir.
func NewExtractForm(theme *styles.Theme, orch *workflow.Orchestrator, outDir string) ExtractForm {
	asset := textinput.New()
	asset.Placeholder = "path to stego image"
	asset.Width = 44

	key := textinput.New()
	key.Placeholder = "quantum session key"
	key.Width = 44

	return ExtractForm{
		theme:     theme,
		orch:      orch,
		assetPath: asset,
		key:       key,
		outDir:    outDir,
	}
}

// ToggleSource switches between image and video recovery.
func (f *ExtractForm) ToggleSource() {
	if f.source == workflow.SourceImage {
		f.source = workflow.SourceVideo
		f.assetPath.Placeholder = "path to stego video"
	} else {
		f.source = workflow.SourceImage
		f.assetPath.Placeholder = "path to stego image"
	}
	f.result = nil
	f.savedPath = ""
	f.errText = ""
}

// Prefill pushes a reused history key into the form.
func (f *ExtractForm) Prefill(key string) {
	f.key.SetValue(key)
}

// setFocus moves input focus to the given slot, blurring the others.
func (f *ExtractForm) setFocus(slot int) {
	f.focused = slot
	f.assetPath.Blur()
	f.key.Blur()
	switch slot {
	case extractFocusAsset:
		f.assetPath.Focus()
	case extractFocusKey:
		f.key.Focus()
	}
}

func (f *ExtractForm) submit() tea.Cmd {
	if f.busy {
		return nil
	}
	f.errText = ""
	f.result = nil
	f.savedPath = ""

	asset, err := loadAsset(f.assetPath.Value())
	if err != nil {
		f.errText = "Cannot read stego file: " + err.Error()
		return nil
	}

	f.busy = true
	return submitExtractCmd(f.orch, workflow.ExtractRequest{
		Source: f.source,
		Asset:  asset,
		Key:    f.key.Value(),
	})
}

// saveRecovered writes a recovered file payload to the output directory.
func (f *ExtractForm) saveRecovered(outcome *workflow.ExtractOutcome) {
	if outcome.IsText || len(outcome.Data) == 0 {
		return
	}
	path := filepath.Join(f.outDir, outcome.Filename)
	if err := util.AtomicWriteFile(path, outcome.Data, 0o600); err != nil {
		f.errText = "Recovered, but could not save: " + err.Error()
		return
	}
	f.savedPath = path
}

// Update handles form interaction and recovery outcomes.
func (f ExtractForm) Update(msg tea.Msg) (ExtractForm, tea.Cmd) {
	switch msg := msg.(type) {
	case extractDoneMsg:
		f.busy = false
		f.result = msg.outcome
		f.saveRecovered(msg.outcome)
		return f, nil

	case operationErrMsg:
		f.busy = false
		f.errText = msg.err.Error()
		return f, nil

	case tea.KeyMsg:
		if f.busy {
			return f, nil
		}
		switch msg.String() {
		case "tab":
			f.setFocus((f.focused + 1) % 3)
			return f, nil
		case "shift+tab":
			f.setFocus((f.focused + 2) % 3)
			return f, nil
		case "enter":
			if f.focused == extractFocusSubmit {
				return f, f.submit()
			}
			f.setFocus((f.focused + 1) % 3)
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.focused {
	case extractFocusAsset:
		f.assetPath, cmd = f.assetPath.Update(msg)
	case extractFocusKey:
		f.key, cmd = f.key.Update(msg)
	}
	return f, cmd
}

// View renders the extract form.
func (f ExtractForm) View() string {
	var b strings.Builder

	sourceLabel := "Image"
	if f.source == workflow.SourceVideo {
		sourceLabel = "Video"
	}
	b.WriteString(f.theme.FormTitle.Render("Extract  " + f.theme.TabActive.Render(sourceLabel)))
	b.WriteString("\n")

	b.WriteString(f.theme.Label.Render("Stego File"))
	b.WriteString("\n")
	b.WriteString(f.fieldStyle(extractFocusAsset).Render(f.assetPath.View()))
	b.WriteString("\n")
	b.WriteString(f.theme.Label.Render("Session Key"))
	b.WriteString("\n")
	b.WriteString(f.fieldStyle(extractFocusKey).Render(f.key.View()))
	b.WriteString("\n\n")

	if f.busy {
		b.WriteString(f.theme.Hint.Render("Recovering payload..."))
	} else {
		style := f.theme.Button
		if f.focused == extractFocusSubmit {
			style = f.theme.ButtonActive
		}
		b.WriteString(style.Render("Initiate Recovery"))
	}
	b.WriteString("\n")

	if f.errText != "" {
		b.WriteString(f.theme.ErrorBox.Render(f.errText))
		b.WriteString("\n")
	}
	if f.result != nil {
		b.WriteString(f.renderResult())
	}

	return f.theme.FormBox.Render(b.String())
}

func (f ExtractForm) renderResult() string {
	r := f.result
	var b strings.Builder
	b.WriteString(f.theme.SuccessStyle.Render("Payload recovered."))
	b.WriteString("\n")

	if r.IsText {
		b.WriteString(f.theme.Label.Render("Hidden Message"))
		b.WriteString("\n")
		b.WriteString(f.theme.KeyBox.Render(r.Text))
	} else {
		fmt.Fprintf(&b, "%s %s (%d bytes)",
			f.theme.Label.Render("Recovered File"),
			r.Filename, len(r.Data))
		if f.savedPath != "" {
			b.WriteString("\n")
			b.WriteString(f.theme.LinkStyle.Render("saved to " + f.savedPath))
		}
	}
	return f.theme.ResultBox.Render(b.String())
}

func (f ExtractForm) fieldStyle(slot int) interface{ Render(...string) string } {
	if f.focused == slot {
		return f.theme.FieldFocused
	}
	return f.theme.FieldBlurred
}

// DefaultOutputDir is where recovered payloads land when nothing else is
// configured.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}
