package main

// NodeKind distinguishes the two TreeNode variants.
type NodeKind string

const (
	KindFile   NodeKind = "file"
	KindFolder NodeKind = "folder"
)

// TreeNode is one node of the reconstructed directory tree. Files carry a
// size and extension; folders carry children. A folder's Children preserve
// the sorted-entry insertion order, which is what makes rendering and
// formatting deterministic.
type TreeNode struct {
	Name      string      `json:"name"`
	Path      string      `json:"path"` // slash-joined from the stripped root
	Kind      NodeKind    `json:"type"`
	Children  []*TreeNode `json:"children,omitempty"`  // folders only
	Size      int64       `json:"size,omitempty"`      // files only
	Extension string      `json:"extension,omitempty"` // files only, lowercased, with dot
}

// ProcessingStats summarizes one processing run. FileSize and ProcessingTime
// are pre-formatted display strings ("1.2MB", "0.3s").
type ProcessingStats struct {
	TotalFiles     int    `json:"totalFiles"`
	TotalFolders   int    `json:"totalFolders"`
	LinesOfCode    int    `json:"linesOfCode"`
	TotalTokens    int    `json:"totalTokens,omitempty"` // only when token counting is enabled
	FileSize       string `json:"fileSize"`
	ProcessingTime string `json:"processingTime"`
}

// ProcessedOutput is the bundle handed to callers (CLI output, HTTP response).
type ProcessedOutput struct {
	FileTree         []*TreeNode     `json:"fileTree"`
	FormattedContent string          `json:"formattedContent"`
	Stats            ProcessingStats `json:"stats"`
}

// EmbedState classifies what happened to one file during formatting.
type EmbedState int

const (
	// Embedded means the file's content made it into the formatted document.
	Embedded EmbedState = iota
	// SkippedByPolicy covers non-processable extensions and empty bodies.
	SkippedByPolicy
	// FailedToRead covers missing entries, read errors, and binary content.
	FailedToRead
)

// FileOutcome records the per-file result of the formatting walk. Outcomes
// replace log-only error swallowing so callers (stats, token counting,
// diagnostics) can consume a structured record instead.
type FileOutcome struct {
	Path    string
	State   EmbedState
	Content string // set only when State == Embedded
	Reason  string // set only when State == FailedToRead
}
