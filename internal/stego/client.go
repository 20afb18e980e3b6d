// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package stego

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the steganography service client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota

	// ErrTypeConnection covers transport failures: the service is down,
	// unreachable, or the connection broke mid-flight.
	ErrTypeConnection

	// ErrTypeInvalidResponse covers undecodable or non-JSON replies.
	ErrTypeInvalidResponse

	// ErrTypeRemote covers structured failures reported by the service
	// itself; Message carries the server-supplied text when present.
	ErrTypeRemote
)

// remoteError builds an ErrTypeRemote error, preferring the
// server-supplied message over the generic fallback.
func remoteError(serverMessage, fallback string) *ClientError {
	msg := serverMessage
	if msg == "" {
		msg = fallback
	}
	return &ClientError{Type: ErrTypeRemote, Message: msg}
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the service client.
type ClientConfig struct {
	// BaseURL is the service base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// StatsTimeout bounds the dashboard stats poll (default: 10s).
	// Operation calls are never timeout-bounded.
	StatsTimeout time.Duration

	// StatsInterval is the minimum spacing between stats polls; callers
	// may tick faster but the limiter smooths the actual request rate
	// (default: 1s).
	StatsInterval time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://127.0.0.1:8000",
		StatsTimeout:  10 * time.Second,
		StatsInterval: time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// ProgressFunc receives upload progress in whole percent, 0 through 100.
// 100 is reported only once the body has been fully transmitted.
type ProgressFunc func(percent int)

// Client handles communication with the steganography service.
// It is safe for concurrent use.
type Client struct {
	config *ClientConfig

	// opClient has no timeout: operations are explicitly unbounded.
	opClient *http.Client

	// statsClient bounds the polling endpoint only.
	statsClient *http.Client

	// statsLimiter smooths dashboard polling.
	statsLimiter *rate.Limiter
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.StatsTimeout == 0 {
		config.StatsTimeout = 10 * time.Second
	}
	if config.StatsInterval == 0 {
		config.StatsInterval = time.Second
	}

	return &Client{
		config:       config,
		opClient:     &http.Client{},
		statsClient:  &http.Client{Timeout: config.StatsTimeout},
		statsLimiter: rate.NewLimiter(rate.Every(config.StatsInterval), 1),
	}
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// AbsoluteURL resolves a service-relative download path against the base.
func (c *Client) AbsoluteURL(path string) string {
	if path == "" {
		return ""
	}
	return c.config.BaseURL + path
}

// =============================================================================
// MULTIPART PLUMBING
// =============================================================================

// part is one multipart field: either a plain value or a file.
type part struct {
	field string
	value string
	file  *Asset
}

func fieldPart(field, value string) part  { return part{field: field, value: value} }
func filePart(field string, a Asset) part { return part{field: field, file: &a} }
func boolPart(field string, v bool) part  { return part{field: field, value: strconv.FormatBool(v)} }

// buildForm assembles a multipart body.
func buildForm(parts []part) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, p := range parts {
		if p.file != nil {
			fw, err := w.CreateFormFile(p.field, p.file.Name)
			if err != nil {
				return nil, "", err
			}
			if _, err := fw.Write(p.file.Data); err != nil {
				return nil, "", err
			}
			continue
		}
		if err := w.WriteField(p.field, p.value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

// progressReader reports transmitted bytes as whole percent. The final 100
// fires only when the last byte has been read by the transport.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	lastPct  int
	onChange ProgressFunc
	mu       sync.Mutex
}

func newProgressReader(r io.Reader, total int64, fn ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, lastPct: -1, onChange: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.onChange != nil && p.total > 0 {
		p.mu.Lock()
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		changed := pct != p.lastPct
		p.lastPct = pct
		p.mu.Unlock()
		if changed {
			p.onChange(pct)
		}
	}
	return n, err
}

// postForm submits a multipart form to path and decodes the envelope.
// progress may be nil.
func (c *Client) postForm(ctx context.Context, path string, parts []part, progress ProgressFunc) (*envelope, error) {
	body, contentType, err := buildForm(parts)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to build request body", Cause: err}
	}

	total := int64(body.Len())
	var reqBody io.Reader = body
	if progress != nil {
		reqBody = newProgressReader(body, total, progress)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = total

	resp, err := c.opClient.Do(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "steganography service unreachable", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to read response", Cause: err}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "service returned an unreadable response", Cause: err}
	}
	return &env, nil
}

// =============================================================================
// EMBED OPERATIONS
// =============================================================================

// HideFile hides a secret file inside a cover image. Protective options
// ride along only on this operation.
func (c *Client) HideFile(ctx context.Context, cover, secret Asset, opts ProtectiveOptions, progress ProgressFunc) (*FileEmbedResult, error) {
	env, err := c.postForm(ctx, "/hide-file", []part{
		filePart("cover_image", cover),
		filePart("secret_file", secret),
		boolPart("burn_mode", opts.SelfDestruct),
		boolPart("ipfs_mode", opts.OffsiteBackup),
		boolPart("decoy_mode", opts.StealthBitplane),
	}, progress)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, remoteError(env.Message, "Embedding Failed")
	}
	return &FileEmbedResult{
		Key:         env.QuantumKey,
		DownloadURL: env.DownloadURL,
		IPFSHash:    env.IPFSHash,
		Stats:       env.Stats,
	}, nil
}

// EmbedText embeds a text message inside a cover image.
func (c *Client) EmbedText(ctx context.Context, cover Asset, secret string, progress ProgressFunc) (*TextEmbedResult, error) {
	env, err := c.postForm(ctx, "/embed-text", []part{
		filePart("file", cover),
		fieldPart("secret", secret),
	}, progress)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, remoteError(env.Message, "Embedding Failed")
	}
	return &TextEmbedResult{Key: env.QuantumKey, DownloadURL: env.DownloadURL}, nil
}

// EmbedVideo embeds a text message inside a cover video.
func (c *Client) EmbedVideo(ctx context.Context, cover Asset, secret string, progress ProgressFunc) (*VideoEmbedResult, error) {
	env, err := c.postForm(ctx, "/embed-video", []part{
		filePart("video", cover),
		fieldPart("secret", secret),
	}, progress)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, remoteError(env.Message, "Embedding Failed")
	}
	return &VideoEmbedResult{Key: env.QuantumKey, DownloadURL: env.DownloadURL, Stats: env.Stats}, nil
}

// =============================================================================
// EXTRACT OPERATIONS
// =============================================================================

// RetrieveFile recovers the hidden payload from a stego image.
func (c *Client) RetrieveFile(ctx context.Context, stego Asset, key string, progress ProgressFunc) (*FileExtractResult, error) {
	env, err := c.postForm(ctx, "/retrieve-file", []part{
		filePart("stego_image", stego),
		fieldPart("key", key),
	}, progress)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, remoteError(env.Message, "Extraction Failed")
	}

	// Text payloads arrive as content/secret_data; file payloads as
	// base64 file_data plus a filename.
	if env.Type == "text" || env.SecretData != "" {
		text := env.Content
		if text == "" {
			text = env.SecretData
		}
		return &FileExtractResult{IsText: true, Text: text}, nil
	}

	data, err := base64.StdEncoding.DecodeString(env.FileData)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "recovered file is not valid base64", Cause: err}
	}
	name := env.Filename
	if name == "" {
		name = "recovered_secret"
	}
	return &FileExtractResult{Filename: name, Data: data}, nil
}

// ExtractVideo recovers the hidden text from a stego video.
func (c *Client) ExtractVideo(ctx context.Context, stego Asset, key string, progress ProgressFunc) (*VideoExtractResult, error) {
	env, err := c.postForm(ctx, "/extract-video", []part{
		filePart("video", stego),
		fieldPart("key", key),
	}, progress)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, remoteError(env.Message, "Extraction Failed")
	}

	text := env.Content
	if text == "" {
		text = env.SecretData
	}
	return &VideoExtractResult{Text: text}, nil
}

// =============================================================================
// ANALYSIS AND STATS
// =============================================================================

// AnalyzeText submits secret text for background risk analysis.
func (c *Client) AnalyzeText(ctx context.Context, text string) (*RiskAnalysis, error) {
	env, err := c.postForm(ctx, "/analyze-text", []part{
		fieldPart("text", text),
	}, nil)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" || env.Analysis == nil {
		return nil, remoteError(env.Message, "Analysis Failed")
	}
	return env.Analysis, nil
}

// DashboardStats fetches the aggregate counters and activity feed. Calls
// are smoothed through a limiter so an eager UI tick cannot hammer the
// service.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	if err := c.statsLimiter.Wait(ctx); err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "stats poll cancelled", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/dashboard-stats", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.statsClient.Do(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "steganography service unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{Type: ErrTypeRemote, Message: "unexpected status from service: " + resp.Status}
	}

	var stats DashboardStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "service returned an unreadable response", Cause: err}
	}
	return &stats, nil
}
