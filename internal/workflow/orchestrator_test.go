// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package workflow

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asetha/stegvault-tui/internal/history"
	"github.com/asetha/stegvault-tui/internal/profile"
	"github.com/asetha/stegvault-tui/internal/stego"
)

func newTestOrchestrator(t *testing.T, handler http.HandlerFunc) (*Orchestrator, *history.Ledger, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := stego.NewClientWithConfig(&stego.ClientConfig{BaseURL: srv.URL})
	ledger := history.NewLedger(profile.OpenMemory(), 10)
	return NewOrchestrator(client, ledger), ledger, srv
}

func successHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidationPrecedesDispatch(t *testing.T) {
	var hits int
	o, _, _ := newTestOrchestrator(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
	})

	tests := []struct {
		name string
		req  EmbedRequest
		want string
	}{
		{
			"file mode without cover",
			EmbedRequest{Mode: ModeHideFile, SecretFile: stego.Asset{Name: "s", Data: []byte("x")}},
			"Please upload a Cover Image.",
		},
		{
			"file mode without secret file",
			EmbedRequest{Mode: ModeHideFile, Cover: stego.Asset{Name: "c", Data: []byte("x")}},
			"Please select a file to hide.",
		},
		{
			"text mode without cover",
			EmbedRequest{Mode: ModeEmbedText, SecretText: "hello"},
			"Please upload a Cover Image.",
		},
		{
			"text mode without text",
			EmbedRequest{Mode: ModeEmbedText, Cover: stego.Asset{Name: "c", Data: []byte("x")}},
			"Please enter a text message.",
		},
		{
			"video mode without cover",
			EmbedRequest{Mode: ModeEmbedVideo, SecretText: "hello"},
			"Please upload a Video file.",
		},
		{
			"video mode without text",
			EmbedRequest{Mode: ModeEmbedVideo, Cover: stego.Asset{Name: "v", Data: []byte("x")}},
			"Please enter a text message to hide in the video.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := o.SubmitEmbed(context.Background(), tc.req)
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "want ValidationError, got %T", err)
			assert.Equal(t, tc.want, ve.Message)
		})
	}

	assert.Zero(t, hits, "validation failures must never reach the network")
}

func TestExtractValidation(t *testing.T) {
	var hits int
	o, _, _ := newTestOrchestrator(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
	})

	_, err := o.SubmitExtract(context.Background(), ExtractRequest{Key: "k"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Please upload the file to extract from.", ve.Message)

	_, err = o.SubmitExtract(context.Background(), ExtractRequest{
		Asset: stego.Asset{Name: "s.png", Data: []byte("x")},
	})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Please enter the Quantum Session Key.", ve.Message)

	assert.Zero(t, hits)
}

// =============================================================================
// BUSY SLOT TESTS
// =============================================================================

func TestSecondSubmissionRejectedWhileBusy(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	o, _, _ := newTestOrchestrator(t, func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte(`{"status":"success","quantum_key":"k","download_url":"/d"}`))
	})

	req := EmbedRequest{
		Mode:       ModeEmbedText,
		Cover:      stego.Asset{Name: "c.png", Data: []byte("x")},
		SecretText: "hello",
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := o.SubmitEmbed(context.Background(), req)
		assert.NoError(t, err)
	}()

	<-entered
	assert.True(t, o.Busy())

	_, err := o.SubmitEmbed(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	wg.Wait()
	assert.False(t, o.Busy())
}

func TestProgressResetAfterTerminalOutcome(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, successHandler(`{"status":"success","quantum_key":"k","download_url":"/d"}`))

	var mu sync.Mutex
	var seen []int
	o.OnProgress(func(pct int) {
		mu.Lock()
		seen = append(seen, pct)
		mu.Unlock()
	})

	_, err := o.SubmitEmbed(context.Background(), EmbedRequest{
		Mode:       ModeEmbedText,
		Cover:      stego.Asset{Name: "c.png", Data: make([]byte, 32*1024)},
		SecretText: "hello",
	})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, 0, seen[0], "progress resets before submission")
	assert.Equal(t, 0, seen[len(seen)-1], "progress resets after completion")
	assert.Contains(t, seen, 100, "progress must reach 100 on full transmission")
	assert.Equal(t, 0, o.Progress())
}

// =============================================================================
// EMBED OUTCOME TESTS
// =============================================================================

func TestHideFileRecordsHistory(t *testing.T) {
	o, ledger, srv := newTestOrchestrator(t, successHandler(
		`{"status":"success","quantum_key":"QK-9","download_url":"/download/out.png","ipfs_hash":"QmX"}`))

	outcome, err := o.SubmitEmbed(context.Background(), EmbedRequest{
		Mode:       ModeHideFile,
		Cover:      stego.Asset{Name: "c.png", Data: []byte("img")},
		SecretFile: stego.Asset{Name: "plans.pdf", Data: []byte("doc")},
		Options:    stego.ProtectiveOptions{OffsiteBackup: true},
	})
	require.NoError(t, err)

	assert.Equal(t, "QK-9", outcome.Key)
	assert.Equal(t, srv.URL+"/download/out.png", outcome.AssetURL)
	assert.Equal(t, "QmX", outcome.IPFSHash)

	entries := ledger.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "File Hidden", entries[0].Operation)
	assert.Equal(t, "QK-9", entries[0].Key)
	assert.Equal(t, srv.URL+"/download/out.png", entries[0].AssetURL)
	assert.Equal(t, "QmX", entries[0].IPFSHash)
	assert.Equal(t, "plans.pdf", entries[0].Detail)
}

func TestEmbedWithoutIPFSHashStillRecordsHistory(t *testing.T) {
	o, ledger, _ := newTestOrchestrator(t, successHandler(
		`{"status":"success","quantum_key":"QK-1","download_url":"/d.png"}`))

	outcome, err := o.SubmitEmbed(context.Background(), EmbedRequest{
		Mode:       ModeHideFile,
		Cover:      stego.Asset{Name: "c.png", Data: []byte("img")},
		SecretFile: stego.Asset{Name: "s.bin", Data: []byte("doc")},
	})
	require.NoError(t, err)
	assert.Empty(t, outcome.IPFSHash)

	entries := ledger.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "QK-1", entries[0].Key)
	assert.NotEmpty(t, entries[0].AssetURL)
	assert.Empty(t, entries[0].IPFSHash)
}

func TestEmbedVideoRecordsFrameDetail(t *testing.T) {
	o, ledger, _ := newTestOrchestrator(t, successHandler(
		`{"status":"success","quantum_key":"VK","download_url":"/v.mp4","stats":{"frames_used":17}}`))

	outcome, err := o.SubmitEmbed(context.Background(), EmbedRequest{
		Mode:       ModeEmbedVideo,
		Cover:      stego.Asset{Name: "clip.mp4", Data: []byte("vid")},
		SecretText: "hidden",
	})
	require.NoError(t, err)
	require.NotNil(t, outcome.Stats)
	assert.Equal(t, 17, outcome.Stats.FramesUsed)

	entries := ledger.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Text Embedded in Video", entries[0].Operation)
	assert.Equal(t, "17 frames used", entries[0].Detail)
}

func TestEmbedFailureSurfacesServerMessage(t *testing.T) {
	o, ledger, _ := newTestOrchestrator(t, successHandler(
		`{"status":"error","message":"Payload exceeds carrier capacity"}`))

	_, err := o.SubmitEmbed(context.Background(), EmbedRequest{
		Mode:       ModeEmbedText,
		Cover:      stego.Asset{Name: "c.png", Data: []byte("x")},
		SecretText: "hello",
	})
	require.Error(t, err)
	assert.Equal(t, "Payload exceeds carrier capacity", err.Error())
	assert.Zero(t, ledger.Len(), "failed embeds are not recorded")
	assert.False(t, o.Busy())
}

// =============================================================================
// EXTRACT OUTCOME TESTS
// =============================================================================

func TestExtractVideoLeavesNoHistory(t *testing.T) {
	o, ledger, _ := newTestOrchestrator(t, successHandler(
		`{"status":"success","content":"recovered text"}`))

	outcome, err := o.SubmitExtract(context.Background(), ExtractRequest{
		Source: SourceVideo,
		Asset:  stego.Asset{Name: "s.mp4", Data: []byte("vid")},
		Key:    "VK",
	})
	require.NoError(t, err)
	assert.True(t, outcome.IsText)
	assert.Equal(t, "recovered text", outcome.Text)
	assert.Zero(t, ledger.Len())
}

func TestExtractImageFilePayload(t *testing.T) {
	o, ledger, _ := newTestOrchestrator(t, successHandler(
		`{"status":"success","file_data":"aGVsbG8=","filename":"note.txt"}`))

	outcome, err := o.SubmitExtract(context.Background(), ExtractRequest{
		Source: SourceImage,
		Asset:  stego.Asset{Name: "s.png", Data: []byte("img")},
		Key:    "QK",
	})
	require.NoError(t, err)
	assert.False(t, outcome.IsText)
	assert.Equal(t, "note.txt", outcome.Filename)
	assert.Equal(t, []byte("hello"), outcome.Data)
	assert.Zero(t, ledger.Len())
}
