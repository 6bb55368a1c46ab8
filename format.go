package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

const (
	documentTitle       = "# Project Overview"
	treeSectionHeading  = "## File Tree"
	filesSectionHeading = "## File Contents"
)

// formatter accumulates the document and the walk statistics. One instance
// per processing run; nothing is shared across runs.
type formatter struct {
	entries      []ArchiveEntry
	byPath       map[string]ArchiveEntry
	commonPrefix string

	builder  strings.Builder
	outcomes []FileOutcome
	files    int
	folders  int
	lines    int
}

// formatDocument walks the tree in child order (the same sorted order the
// builder established), embedding each processable, non-empty file as a
// header line plus a language-tagged fenced block. Per-file read or decode
// failures are recorded and skipped; they never abort the walk.
func formatDocument(tree []*TreeNode, entries []ArchiveEntry, commonPrefix string) (string, []FileOutcome, int, int, int) {
	f := &formatter{
		entries:      entries,
		byPath:       make(map[string]ArchiveEntry, len(entries)),
		commonPrefix: commonPrefix,
	}
	for _, entry := range entries {
		f.byPath[entry.Path()] = entry
	}

	f.builder.WriteString(documentTitle)
	f.builder.WriteString("\n\n")
	f.builder.WriteString(treeSectionHeading)
	f.builder.WriteString("\n\n```\n")
	f.builder.WriteString(renderTree(tree))
	f.builder.WriteString("```\n\n")
	f.builder.WriteString(filesSectionHeading)
	f.builder.WriteString("\n\n")

	f.walk(tree)

	return f.builder.String(), f.outcomes, f.files, f.folders, f.lines
}

func (f *formatter) walk(nodes []*TreeNode) {
	for _, node := range nodes {
		if node.Kind == KindFolder {
			f.folders++
			f.walk(node.Children)
			continue
		}
		f.files++
		f.emitFile(node)
	}
}

func (f *formatter) emitFile(node *TreeNode) {
	if !isProcessableExtension(node.Extension) {
		f.outcomes = append(f.outcomes, FileOutcome{Path: node.Path, State: SkippedByPolicy})
		return
	}

	text, err := f.readEntry(node.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: skipping content of %s: %v\n", node.Path, err)
		f.outcomes = append(f.outcomes, FileOutcome{Path: node.Path, State: FailedToRead, Reason: err.Error()})
		return
	}

	if strings.TrimSpace(text) == "" {
		f.outcomes = append(f.outcomes, FileOutcome{Path: node.Path, State: SkippedByPolicy})
		return
	}

	f.builder.WriteString("### ")
	f.builder.WriteString(node.Path)
	f.builder.WriteString("\n```")
	f.builder.WriteString(languageTag(node.Extension))
	f.builder.WriteString("\n")
	f.builder.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		f.builder.WriteString("\n")
	}
	f.builder.WriteString("```\n\n")

	f.lines += countLines(text)
	f.outcomes = append(f.outcomes, FileOutcome{Path: node.Path, State: Embedded, Content: text})
}

// readEntry locates the archive entry backing a tree node and decodes its
// bytes as text. The node's stripped path is re-prefixed with the common
// prefix for an exact lookup; entries that did not share the detected prefix
// are found by suffix match as a fallback.
func (f *formatter) readEntry(nodePath string) (string, error) {
	entry, ok := f.byPath[f.commonPrefix+nodePath]
	if !ok {
		for _, candidate := range f.entries {
			if strings.HasSuffix(candidate.Path(), "/"+nodePath) {
				entry = candidate
				ok = true
				break
			}
		}
	}
	if !ok {
		return "", fmt.Errorf("no archive entry found for %s", nodePath)
	}
	if entry.IsDir() {
		return "", fmt.Errorf("archive entry for %s is a directory", nodePath)
	}

	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("cannot open entry: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("cannot read entry: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("binary or non-UTF-8 content")
	}
	return string(data), nil
}

// countLines counts the newline-delimited lines of an embedded body. Leading
// and trailing whitespace is trimmed first, so a file holding "print(1)\n"
// counts as one line, not two.
func countLines(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	return len(strings.Split(trimmed, "\n"))
}
