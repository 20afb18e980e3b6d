// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/asetha/stegvault-tui/internal/history"
	"github.com/asetha/stegvault-tui/internal/stego"
)

// =============================================================================
// MODES
// =============================================================================

// Mode selects what gets hidden and where.
type Mode int

const (
	// ModeHideFile embeds a secret file inside a cover image.
	ModeHideFile Mode = iota

	// ModeEmbedText embeds a text message inside a cover image.
	ModeEmbedText

	// ModeEmbedVideo embeds a text message inside a cover video.
	ModeEmbedVideo
)

func (m Mode) String() string {
	switch m {
	case ModeHideFile:
		return "file"
	case ModeEmbedText:
		return "text"
	case ModeEmbedVideo:
		return "video"
	default:
		return "unknown"
	}
}

// ExtractSource selects the carrier type for recovery.
type ExtractSource int

const (
	SourceImage ExtractSource = iota
	SourceVideo
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrBusy is returned when a submission arrives while another operation is
// still in flight.
var ErrBusy = errors.New("an operation is already in progress")

// ValidationError reports a missing required input. It is raised before any
// network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(msg string) error {
	return &ValidationError{Message: msg}
}

// =============================================================================
// REQUESTS AND OUTCOMES
// =============================================================================

// EmbedRequest carries the inputs for one embed submission. Which fields are
// required depends on Mode; Options ride along only for ModeHideFile.
type EmbedRequest struct {
	Mode       Mode
	Cover      stego.Asset
	SecretFile stego.Asset
	SecretText string
	Options    stego.ProtectiveOptions
}

// EmbedOutcome is the normalized result of a successful embed.
type EmbedOutcome struct {
	Mode Mode

	// Key is the session key required for later recovery.
	Key string

	// AssetURL is the absolute download URL of the produced stego asset.
	AssetURL string

	// IPFSHash is the off-site storage identifier; empty when off-site
	// backup was not requested or not reported.
	IPFSHash string

	// Stats carries embedding statistics when the service reports them.
	Stats *stego.EmbedStats
}

// ExtractRequest carries the inputs for one recovery submission.
type ExtractRequest struct {
	Source ExtractSource
	Asset  stego.Asset
	Key    string
}

// ExtractOutcome is the normalized result of a successful recovery.
// Exactly one of the text and file forms is populated.
type ExtractOutcome struct {
	IsText   bool
	Text     string
	Filename string
	Data     []byte
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator runs embed and extract submissions one at a time.
// It is safe for concurrent use.
type Orchestrator struct {
	client  *stego.Client
	history *history.Ledger

	mu         sync.Mutex
	busy       bool
	progress   int
	onProgress func(percent int)
}

// NewOrchestrator creates an orchestrator over the given service client and
// history ledger.
func NewOrchestrator(client *stego.Client, ledger *history.Ledger) *Orchestrator {
	return &Orchestrator{client: client, history: ledger}
}

// OnProgress registers a callback invoked with upload progress in whole
// percent. It fires with 0 when a submission begins and after any terminal
// outcome, and reaches 100 only on full transmission.
func (o *Orchestrator) OnProgress(fn func(percent int)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onProgress = fn
}

// Busy reports whether an operation is currently in flight.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Progress returns the current upload progress in whole percent.
func (o *Orchestrator) Progress() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.progress
}

// begin claims the in-flight slot, resetting progress to 0.
func (o *Orchestrator) begin() error {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return ErrBusy
	}
	o.busy = true
	o.progress = 0
	fn := o.onProgress
	o.mu.Unlock()
	if fn != nil {
		fn(0)
	}
	return nil
}

// finish releases the slot and resets progress regardless of outcome.
func (o *Orchestrator) finish() {
	o.mu.Lock()
	o.busy = false
	o.progress = 0
	fn := o.onProgress
	o.mu.Unlock()
	if fn != nil {
		fn(0)
	}
}

func (o *Orchestrator) setProgress(pct int) {
	o.mu.Lock()
	o.progress = pct
	fn := o.onProgress
	o.mu.Unlock()
	if fn != nil {
		fn(pct)
	}
}

// =============================================================================
// EMBED
// =============================================================================

// SubmitEmbed validates and runs one embed operation. The call blocks until
// the service responds; there is no client-side timeout.
func (o *Orchestrator) SubmitEmbed(ctx context.Context, req EmbedRequest) (*EmbedOutcome, error) {
	if err := validateEmbed(req); err != nil {
		return nil, err
	}
	if err := o.begin(); err != nil {
		return nil, err
	}
	defer o.finish()

	switch req.Mode {
	case ModeHideFile:
		res, err := o.client.HideFile(ctx, req.Cover, req.SecretFile, req.Options, o.setProgress)
		if err != nil {
			return nil, err
		}
		outcome := &EmbedOutcome{
			Mode:     req.Mode,
			Key:      res.Key,
			AssetURL: o.client.AbsoluteURL(res.DownloadURL),
			IPFSHash: res.IPFSHash,
			Stats:    res.Stats,
		}
		o.record(outcome, "File Hidden", req.SecretFile.Name)
		return outcome, nil

	case ModeEmbedText:
		res, err := o.client.EmbedText(ctx, req.Cover, req.SecretText, o.setProgress)
		if err != nil {
			return nil, err
		}
		outcome := &EmbedOutcome{
			Mode:     req.Mode,
			Key:      res.Key,
			AssetURL: o.client.AbsoluteURL(res.DownloadURL),
		}
		o.record(outcome, "Text Embedded", "")
		return outcome, nil

	case ModeEmbedVideo:
		res, err := o.client.EmbedVideo(ctx, req.Cover, req.SecretText, o.setProgress)
		if err != nil {
			return nil, err
		}
		outcome := &EmbedOutcome{
			Mode:     req.Mode,
			Key:      res.Key,
			AssetURL: o.client.AbsoluteURL(res.DownloadURL),
			Stats:    res.Stats,
		}
		detail := ""
		if res.Stats != nil {
			detail = fmt.Sprintf("%d frames used", res.Stats.FramesUsed)
		}
		o.record(outcome, "Text Embedded in Video", detail)
		return outcome, nil

	default:
		return nil, validationErr("Unknown embed mode.")
	}
}

func validateEmbed(req EmbedRequest) error {
	if req.Mode == ModeEmbedVideo {
		if req.Cover.Empty() {
			return validationErr("Please upload a Video file.")
		}
	} else if req.Cover.Empty() {
		return validationErr("Please upload a Cover Image.")
	}

	switch req.Mode {
	case ModeHideFile:
		if req.SecretFile.Empty() {
			return validationErr("Please select a file to hide.")
		}
	case ModeEmbedText:
		if req.SecretText == "" {
			return validationErr("Please enter a text message.")
		}
	case ModeEmbedVideo:
		if req.SecretText == "" {
			return validationErr("Please enter a text message to hide in the video.")
		}
	}
	return nil
}

// record appends a history entry for an embed that produced a reusable key.
func (o *Orchestrator) record(outcome *EmbedOutcome, operation, detail string) {
	if o.history == nil {
		return
	}
	o.history.Append(history.Entry{
		Operation: operation,
		Key:       outcome.Key,
		AssetURL:  outcome.AssetURL,
		IPFSHash:  outcome.IPFSHash,
		Mode:      outcome.Mode.String(),
		Detail:    detail,
	})
}

// =============================================================================
// EXTRACT
// =============================================================================

// SubmitExtract validates and runs one recovery operation. Recoveries do not
// produce reusable keys, so no history entry is recorded.
func (o *Orchestrator) SubmitExtract(ctx context.Context, req ExtractRequest) (*ExtractOutcome, error) {
	if req.Asset.Empty() {
		return nil, validationErr("Please upload the file to extract from.")
	}
	if req.Key == "" {
		return nil, validationErr("Please enter the Quantum Session Key.")
	}
	if err := o.begin(); err != nil {
		return nil, err
	}
	defer o.finish()

	switch req.Source {
	case SourceVideo:
		res, err := o.client.ExtractVideo(ctx, req.Asset, req.Key, o.setProgress)
		if err != nil {
			return nil, err
		}
		return &ExtractOutcome{IsText: true, Text: res.Text}, nil

	default:
		res, err := o.client.RetrieveFile(ctx, req.Asset, req.Key, o.setProgress)
		if err != nil {
			return nil, err
		}
		return &ExtractOutcome{
			IsText:   res.IsText,
			Text:     res.Text,
			Filename: res.Filename,
			Data:     res.Data,
		}, nil
	}
}
