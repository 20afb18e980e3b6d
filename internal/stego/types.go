// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package stego

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Asset is an in-memory file handed to the service (cover image, cover
// video, secret document, or stego asset for extraction).
type Asset struct {
	// Name is the original file name; it rides along as the multipart
	// part's filename.
	Name string

	// Data is the raw content.
	Data []byte
}

// Empty reports whether the asset carries no content.
func (a Asset) Empty() bool {
	return len(a.Data) == 0
}

// ProtectiveOptions are the per-operation flags attached to file-hiding
// submissions only.
type ProtectiveOptions struct {
	// SelfDestruct deletes the payload server-side after one retrieval.
	SelfDestruct bool

	// OffsiteBackup mirrors the stego asset to off-site (IPFS) storage.
	OffsiteBackup bool

	// StealthBitplane embeds in the second bit plane to evade standard
	// LSB scanners.
	StealthBitplane bool
}

// =============================================================================
// RESPONSE ENVELOPE
// =============================================================================

// envelope is the JSON shell every endpoint responds with. Mode-specific
// fields are flattened alongside the discriminator.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	// Embed success fields
	QuantumKey  string      `json:"quantum_key"`
	DownloadURL string      `json:"download_url"`
	IPFSHash    string      `json:"ipfs_hash"`
	Stats       *EmbedStats `json:"stats"`

	// Extract success fields
	Type       string `json:"type"`
	Content    string `json:"content"`
	SecretData string `json:"secret_data"`
	FileData   string `json:"file_data"` // base64
	Filename   string `json:"filename"`

	// Risk analysis
	Analysis *RiskAnalysis `json:"analysis"`
}

// EmbedStats carries server-side embedding statistics.
type EmbedStats struct {
	FramesUsed int `json:"frames_used"`
}

// =============================================================================
// RESULT TYPES (one per mode, not one loose bag of optionals)
// =============================================================================

// FileEmbedResult is the outcome of hiding a file inside a cover image.
type FileEmbedResult struct {
	Key         string
	DownloadURL string

	// IPFSHash is empty unless off-site backup was requested and granted.
	IPFSHash string

	Stats *EmbedStats
}

// TextEmbedResult is the outcome of embedding text inside a cover image.
type TextEmbedResult struct {
	Key         string
	DownloadURL string
}

// VideoEmbedResult is the outcome of embedding text inside a cover video.
type VideoEmbedResult struct {
	Key         string
	DownloadURL string
	Stats       *EmbedStats
}

// FileExtractResult is the outcome of retrieving a payload from a stego
// image: either recovered text or a recovered file, never both.
type FileExtractResult struct {
	// IsText selects between the Text and Filename/Data pairs.
	IsText   bool
	Text     string
	Filename string
	Data     []byte
}

// VideoExtractResult is the text recovered from a stego video.
type VideoExtractResult struct {
	Text string
}

// =============================================================================
// RISK ANALYSIS
// =============================================================================

// RiskAnalysis is the service's heuristic assessment of secret text.
type RiskAnalysis struct {
	ThreatScore     float64  `json:"threat_score"`
	RiskLevel       string   `json:"risk_level"`
	DetectedIssues  []string `json:"detected_issues"`
	Recommendations []string `json:"recommendations"`
	AutoEnableBurn  bool     `json:"auto_enable_burn"`
	AutoEnableDecoy bool     `json:"auto_enable_decoy"`
}

// =============================================================================
// DASHBOARD
// =============================================================================

// DashboardStats is the aggregate counter feed for the dashboard view.
type DashboardStats struct {
	Stats struct {
		FilesSecured   int `json:"files_secured"`
		AttacksBlocked int `json:"attacks_blocked"`
		ActiveKeys     int `json:"active_keys"`
	} `json:"stats"`

	SystemHealth struct {
		Uptime         string  `json:"uptime"`
		CPULoad        float64 `json:"cpu_load"`
		RAMUsage       float64 `json:"ram_usage"`
		DiskUsageMB    float64 `json:"disk_usage_mb"`
		QuantumEntropy float64 `json:"quantum_entropy"`
		ThreatLevel    string  `json:"threat_level"`
	} `json:"system_health"`

	ActivityLog []ActivityEntry `json:"activity_log"`
}

// ActivityEntry is one row of the server-pushed recent-activity feed.
type ActivityEntry struct {
	Time    string `json:"time"`
	Event   string `json:"type"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
