package main

import (
	"fmt"
	"time"
)

// processArchive runs the full transformation: filter and normalize the raw
// entries, build the tree, render and format, aggregate statistics. The run
// is synchronous and owns all of its state; concurrent invocations need no
// locking. archiveSize is the uploaded archive's byte size, reported in the
// stats but otherwise unused.
func processArchive(entries []ArchiveEntry, archiveSize int64) (*ProcessedOutput, []FileOutcome, error) {
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("archive contains no entries")
	}
	start := time.Now()

	commonPrefix := detectCommonPrefix(entries)
	tree := buildTree(entries, commonPrefix)
	document, outcomes, files, folders, lines := formatDocument(tree, entries, commonPrefix)

	stats := ProcessingStats{
		TotalFiles:     files,
		TotalFolders:   folders,
		LinesOfCode:    lines,
		FileSize:       formatMegabytes(archiveSize),
		ProcessingTime: formatSeconds(time.Since(start)),
	}

	return &ProcessedOutput{
		FileTree:         tree,
		FormattedContent: document,
		Stats:            stats,
	}, outcomes, nil
}

// formatMegabytes renders a byte count in megabytes to one decimal place.
func formatMegabytes(bytes int64) string {
	return fmt.Sprintf("%.1fMB", float64(bytes)/(1024*1024))
}

// formatSeconds renders an elapsed duration in seconds to one decimal place.
func formatSeconds(elapsed time.Duration) string {
	return fmt.Sprintf("%.1fs", elapsed.Seconds())
}
