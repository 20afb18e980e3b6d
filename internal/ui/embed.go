// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asetha/stegvault-tui/internal/riskscan"
	"github.com/asetha/stegvault-tui/internal/stego"
	"github.com/asetha/stegvault-tui/internal/ui/styles"
	"github.com/asetha/stegvault-tui/internal/workflow"
)

// =============================================================================
// EMBED FORM
// =============================================================================

// Focus slots within the embed form. The set of reachable slots depends on
// the active mode.
const (
	embedFocusCover = iota
	embedFocusSecret
	embedFocusBurn
	embedFocusIPFS
	embedFocusDecoy
	embedFocusSubmit
)

// EmbedForm is the hide/embed side of the home tab.
type EmbedForm struct {
	theme   *styles.Theme
	orch    *workflow.Orchestrator
	trigger *riskscan.Trigger

	mode workflow.Mode

	coverPath  textinput.Model
	secretPath textinput.Model
	secretText textarea.Model
	options    stego.ProtectiveOptions
	focused    int

	assessment *stego.RiskAnalysis
	result     *workflow.EmbedOutcome
	errText    string

	busy     bool
	progress progress.Model
	percent  int

	width int
}

// NewEmbedForm creates the embed form.
func NewEmbedForm(theme *styles.Theme, orch *workflow.Orchestrator, trigger *riskscan.Trigger) EmbedForm {
	cover := textinput.New()
	cover.Placeholder = "path to cover image"
	cover.Width = 44
	cover.Focus()

	secretFile := textinput.New()
	secretFile.Placeholder = "path to secret file"
	secretFile.Width = 44

	text := textarea.New()
	text.Placeholder = "secret message"
	text.SetWidth(46)
	text.SetHeight(4)
	text.CharLimit = 0

	return EmbedForm{
		theme:      theme,
		orch:       orch,
		trigger:    trigger,
		coverPath:  cover,
		secretPath: secretFile,
		secretText: text,
		progress:   progress.New(progress.WithDefaultGradient()),
	}
}

// SetWidth adjusts the form to the available width.
func (f *EmbedForm) SetWidth(w int) {
	f.width = w
	f.progress.Width = w - 8
	if f.progress.Width > 50 {
		f.progress.Width = 50
	}
}

// Mode returns the active embed mode.
func (f *EmbedForm) Mode() workflow.Mode { return f.mode }

// CycleMode advances to the next embed mode, resetting results and
// re-observing the secret text under the new mode's rules.
func (f *EmbedForm) CycleMode() {
	switch f.mode {
	case workflow.ModeHideFile:
		f.mode = workflow.ModeEmbedText
	case workflow.ModeEmbedText:
		f.mode = workflow.ModeEmbedVideo
	default:
		f.mode = workflow.ModeHideFile
	}
	f.result = nil
	f.errText = ""
	f.setFocus(embedFocusCover)
	f.trigger.Observe(f.secretText.Value(), f.mode != workflow.ModeHideFile)
}

// PrefillFromHistory drops a reused key's asset reference into the form's
// result panel so the operator can see what they are working from.
func (f *EmbedForm) PrefillFromHistory(outcome *workflow.EmbedOutcome) {
	f.result = outcome
}

// focusSlots lists the reachable focus slots for the active mode.
func (f *EmbedForm) focusSlots() []int {
	if f.mode == workflow.ModeHideFile {
		return []int{embedFocusCover, embedFocusSecret, embedFocusBurn, embedFocusIPFS, embedFocusDecoy, embedFocusSubmit}
	}
	return []int{embedFocusCover, embedFocusSecret, embedFocusSubmit}
}

func (f *EmbedForm) setFocus(slot int) {
	f.focused = slot
	f.coverPath.Blur()
	f.secretPath.Blur()
	f.secretText.Blur()

	switch slot {
	case embedFocusCover:
		f.coverPath.Focus()
	case embedFocusSecret:
		if f.mode == workflow.ModeHideFile {
			f.secretPath.Focus()
		} else {
			f.secretText.Focus()
		}
	}
}

// advanceFocus moves to the next reachable slot, backwards when back is set.
func (f *EmbedForm) advanceFocus(back bool) {
	slots := f.focusSlots()
	idx := 0
	for i, s := range slots {
		if s == f.focused {
			idx = i
			break
		}
	}
	if back {
		idx = (idx - 1 + len(slots)) % len(slots)
	} else {
		idx = (idx + 1) % len(slots)
	}
	f.setFocus(slots[idx])
}

// submit reads the referenced files and dispatches the operation.
func (f *EmbedForm) submit() tea.Cmd {
	if f.busy {
		return nil
	}
	f.errText = ""
	f.result = nil

	cover, err := loadAsset(f.coverPath.Value())
	if err != nil {
		f.errText = "Cannot read cover file: " + err.Error()
		return nil
	}

	req := workflow.EmbedRequest{
		Mode:       f.mode,
		Cover:      cover,
		SecretText: f.secretText.Value(),
		Options:    f.options,
	}
	if f.mode == workflow.ModeHideFile {
		secret, err := loadAsset(f.secretPath.Value())
		if err != nil {
			f.errText = "Cannot read secret file: " + err.Error()
			return nil
		}
		req.SecretFile = secret
	}

	// A new submission invalidates whatever assessment was on screen.
	f.trigger.ClearAssessment()
	f.assessment = nil
	f.busy = true
	f.percent = 0

	return submitEmbedCmd(f.orch, req)
}

// Update handles form interaction and operation outcomes.
func (f EmbedForm) Update(msg tea.Msg) (EmbedForm, tea.Cmd) {
	switch msg := msg.(type) {
	case embedDoneMsg:
		f.busy = false
		f.percent = 0
		f.result = msg.outcome
		return f, nil

	case operationErrMsg:
		f.busy = false
		f.percent = 0
		f.errText = msg.err.Error()
		return f, nil

	case progressMsg:
		f.percent = msg.percent
		return f, nil

	case scanResultMsg:
		f.assessment = msg.analysis
		// Recommendations only ever switch options on.
		f.options = riskscan.ApplyRecommendations(f.options, msg.analysis)
		return f, nil

	case tea.KeyMsg:
		if f.busy {
			return f, nil
		}
		switch msg.String() {
		case "tab":
			f.advanceFocus(false)
			return f, nil
		case "shift+tab":
			f.advanceFocus(true)
			return f, nil
		case " ":
			switch f.focused {
			case embedFocusBurn:
				f.options.SelfDestruct = !f.options.SelfDestruct
				return f, nil
			case embedFocusIPFS:
				f.options.OffsiteBackup = !f.options.OffsiteBackup
				return f, nil
			case embedFocusDecoy:
				f.options.StealthBitplane = !f.options.StealthBitplane
				return f, nil
			}
		case "enter":
			switch f.focused {
			case embedFocusSubmit:
				return f, f.submit()
			case embedFocusCover:
				f.advanceFocus(false)
				return f, nil
			case embedFocusSecret:
				if f.mode == workflow.ModeHideFile {
					f.advanceFocus(false)
					return f, nil
				}
				// Newlines stay legal inside the message textarea.
			}
		}
	}

	var cmd tea.Cmd
	switch f.focused {
	case embedFocusCover:
		f.coverPath, cmd = f.coverPath.Update(msg)
	case embedFocusSecret:
		if f.mode == workflow.ModeHideFile {
			f.secretPath, cmd = f.secretPath.Update(msg)
		} else {
			f.secretText, cmd = f.secretText.Update(msg)
			f.trigger.Observe(f.secretText.Value(), true)
		}
	}
	return f, cmd
}

// View renders the embed form.
func (f EmbedForm) View() string {
	var b strings.Builder
	b.WriteString(f.theme.FormTitle.Render("Embed  " + f.modeTabs()))
	b.WriteString("\n")

	coverLabel := "Cover Image"
	if f.mode == workflow.ModeEmbedVideo {
		coverLabel = "Cover Video"
	}
	b.WriteString(f.theme.Label.Render(coverLabel))
	b.WriteString("\n")
	b.WriteString(f.fieldStyle(embedFocusCover).Render(f.coverPath.View()))
	b.WriteString("\n")

	if f.mode == workflow.ModeHideFile {
		b.WriteString(f.theme.Label.Render("Secret File"))
		b.WriteString("\n")
		b.WriteString(f.fieldStyle(embedFocusSecret).Render(f.secretPath.View()))
		b.WriteString("\n")
		b.WriteString(f.renderOptions())
	} else {
		b.WriteString(f.theme.Label.Render("Secret Message"))
		b.WriteString("\n")
		b.WriteString(f.fieldStyle(embedFocusSecret).Render(f.secretText.View()))
		b.WriteString("\n")
	}

	if panel := f.renderAssessment(); panel != "" {
		b.WriteString(panel)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if f.busy {
		b.WriteString(f.progress.ViewAs(float64(f.percent) / 100))
		b.WriteString(fmt.Sprintf("  uploading %d%%", f.percent))
	} else {
		style := f.theme.Button
		if f.focused == embedFocusSubmit {
			style = f.theme.ButtonActive
		}
		b.WriteString(style.Render("Engage Protocol"))
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

func (f EmbedForm) modeTabs() string {
	names := []struct {
		mode  workflow.Mode
		label string
	}{
		{workflow.ModeHideFile, "File"},
		{workflow.ModeEmbedText, "Text"},
		{workflow.ModeEmbedVideo, "Video"},
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n.mode == f.mode {
			parts = append(parts, f.theme.TabActive.Render(n.label))
		} else {
			parts = append(parts, f.theme.Tab.Render(n.label))
		}
	}
	return strings.Join(parts, "")
}

func (f EmbedForm) renderOptions() string {
	var b strings.Builder
	b.WriteString(f.checkbox(embedFocusBurn, f.options.SelfDestruct, "Self-Destruct"))
	b.WriteString("  ")
	b.WriteString(f.checkbox(embedFocusIPFS, f.options.OffsiteBackup, "IPFS Backup"))
	b.WriteString("  ")
	b.WriteString(f.checkbox(embedFocusDecoy, f.options.StealthBitplane, "Decoy Mode"))
	b.WriteString("\n")
	return b.String()
}

func (f EmbedForm) checkbox(slot int, on bool, label string) string {
	mark := "[ ] "
	style := f.theme.CheckboxOff
	if on {
		mark = "[x] "
		style = f.theme.CheckboxOn
	}
	text := mark + label
	if f.focused == slot {
		text = "> " + text
	} else {
		text = "  " + text
	}
	return style.Render(text)
}

func (f EmbedForm) renderAssessment() string {
	if f.trigger.Scanning() {
		return f.theme.Hint.Render("Analyzing secret text...")
	}
	a := f.assessment
	if a == nil {
		return ""
	}

	var level string
	switch a.RiskLevel {
	case "HIGH", "CRITICAL":
		level = f.theme.RiskHigh.Render(a.RiskLevel)
	case "MEDIUM":
		level = f.theme.RiskMedium.Render(a.RiskLevel)
	default:
		level = f.theme.RiskLow.Render(a.RiskLevel)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Risk Assessment: %s (score %.0f)\n", level, a.ThreatScore)
	for _, issue := range a.DetectedIssues {
		b.WriteString(f.theme.RiskIssue.Render("• " + issue))
		b.WriteString("\n")
		b.WriteString(f.theme.RiskFootnote.Render("  " + riskscan.ExplainIssue(issue)))
		b.WriteString("\n")
	}
	for _, rec := range a.Recommendations {
		b.WriteString(f.theme.InfoStyle.Render("→ " + rec))
		b.WriteString("\n")
	}
	return f.theme.RiskBox.Render(strings.TrimRight(b.String(), "\n"))
}

func (f EmbedForm) renderResult() string {
	r := f.result
	var b strings.Builder
	b.WriteString(f.theme.SuccessStyle.Render("Payload secured."))
	b.WriteString("\n")
	if r.Key != "" {
		b.WriteString(f.theme.Label.Render("Quantum Session Key"))
		b.WriteString("\n")
		b.WriteString(f.theme.KeyBox.Render(r.Key))
		b.WriteString("\n")
	}
	if r.AssetURL != "" {
		b.WriteString(f.theme.Label.Render("Stego Asset  "))
		b.WriteString(f.theme.LinkStyle.Render(r.AssetURL))
		b.WriteString("\n")
	}
	if r.IPFSHash != "" {
		b.WriteString(f.theme.Label.Render("IPFS CID  "))
		b.WriteString(f.theme.SuccessStyle.Render(r.IPFSHash))
		b.WriteString("\n")
	}
	if r.Stats != nil && r.Stats.FramesUsed > 0 {
		b.WriteString(f.theme.HistoryMeta.Render(
			fmt.Sprintf("%d video frames carry the payload", r.Stats.FramesUsed)))
		b.WriteString("\n")
	}
	return f.theme.ResultBox.Render(strings.TrimRight(b.String(), "\n"))
}

func (f EmbedForm) fieldStyle(slot int) interface{ Render(...string) string } {
	if f.focused == slot {
		return f.theme.FieldFocused
	}
	return f.theme.FieldBlurred
}
