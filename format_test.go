package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDocumentScenario(t *testing.T) {
	entries := asEntries(
		fileEntry("proj/src/a.py", "print(1)\n"),
		fileEntry("proj/src/b.txt", ""),
		fileEntry("proj/node_modules/x.js", "anything"),
	)

	prefix := detectCommonPrefix(entries)
	tree := buildTree(entries, prefix)
	doc, outcomes, files, folders, lines := formatDocument(tree, entries, prefix)

	assert.Equal(t, 2, files)
	assert.Equal(t, 1, folders)
	assert.Equal(t, 1, lines)

	assert.Contains(t, doc, "### src/a.py\n```python\nprint(1)\n```\n")
	// b.txt is in the tree but its empty content is never embedded.
	assert.NotContains(t, doc, "### src/b.txt")
	assert.NotContains(t, doc, "node_modules")

	require.Len(t, outcomes, 2)
	assert.Equal(t, Embedded, outcomes[0].State)
	assert.Equal(t, "src/a.py", outcomes[0].Path)
	assert.Equal(t, SkippedByPolicy, outcomes[1].State)
	assert.Equal(t, "src/b.txt", outcomes[1].Path)
}

func TestFormatDocumentStructure(t *testing.T) {
	entries := asEntries(fileEntry("app/main.go", "package main\n"))
	prefix := detectCommonPrefix(entries)
	tree := buildTree(entries, prefix)
	doc, _, _, _, _ := formatDocument(tree, entries, prefix)

	assert.True(t, strings.HasPrefix(doc, "# Project Overview\n\n## File Tree\n\n```\n"))
	treeIdx := strings.Index(doc, "## File Tree")
	contentsIdx := strings.Index(doc, "## File Contents")
	require.Greater(t, contentsIdx, treeIdx)
	assert.Contains(t, doc, "main.go")
}

func TestFormatDocumentNonProcessableCounted(t *testing.T) {
	entries := asEntries(
		fileEntry("README", "no extension\n"),
		fileEntry("logo.png", "\x89PNG"),
	)
	tree := buildTree(entries, "")
	doc, outcomes, files, folders, lines := formatDocument(tree, entries, "")

	assert.Equal(t, 2, files)
	assert.Equal(t, 0, folders)
	assert.Equal(t, 0, lines)
	assert.NotContains(t, doc, "### README")
	assert.NotContains(t, doc, "### logo.png")
	for _, outcome := range outcomes {
		assert.Equal(t, SkippedByPolicy, outcome.State)
	}
}

func TestFormatDocumentBinaryContentIsPerFileFailure(t *testing.T) {
	entries := asEntries(
		memEntry{path: "app/blob.go", data: []byte{0xff, 0xfe, 0x00, 0x01}},
		fileEntry("app/ok.go", "package app\n"),
	)
	prefix := detectCommonPrefix(entries)
	tree := buildTree(entries, prefix)
	doc, outcomes, files, _, _ := formatDocument(tree, entries, prefix)

	// The walk continues past the undecodable file.
	assert.Equal(t, 2, files)
	assert.Contains(t, doc, "### ok.go")
	assert.NotContains(t, doc, "### blob.go")

	require.Len(t, outcomes, 2)
	assert.Equal(t, FailedToRead, outcomes[0].State)
	assert.Contains(t, outcomes[0].Reason, "binary")
	assert.Equal(t, Embedded, outcomes[1].State)
}

func TestFormatDocumentSuffixFallbackLookup(t *testing.T) {
	// An entry that did not share the detected prefix is still found by
	// matching any entry ending in "/" + the node's path.
	entries := asEntries(
		fileEntry("wrapper/extra/src/deep.go", "package deep\n"),
	)
	tree := buildTree(entries, "wrapper/extra/")
	doc, outcomes, _, _, _ := formatDocument(tree, entries, "bogus/")

	assert.Contains(t, doc, "### src/deep.go")
	require.Len(t, outcomes, 1)
	assert.Equal(t, Embedded, outcomes[0].State)
}

func TestFormatDocumentMissingEntry(t *testing.T) {
	tree := []*TreeNode{
		{Name: "ghost.go", Path: "ghost.go", Kind: KindFile, Extension: ".go"},
	}
	doc, outcomes, files, _, lines := formatDocument(tree, nil, "")

	assert.Equal(t, 1, files)
	assert.Equal(t, 0, lines)
	assert.NotContains(t, doc, "### ghost.go")
	require.Len(t, outcomes, 1)
	assert.Equal(t, FailedToRead, outcomes[0].State)
}

func TestFormatAppendsNewlineBeforeClosingFence(t *testing.T) {
	entries := asEntries(fileEntry("a.go", "package a"))
	tree := buildTree(entries, "")
	doc, _, _, _, _ := formatDocument(tree, entries, "")

	assert.Contains(t, doc, "```go\npackage a\n```\n")
}

func TestCountLines(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected int
	}{
		{"Single line with trailing newline", "print(1)\n", 1},
		{"Two lines", "a\nb\n", 2},
		{"No trailing newline", "a\nb", 2},
		{"Whitespace only", "  \n\t\n", 0},
		{"Surrounding blank lines trimmed", "\n\nx\n\n", 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, countLines(tc.text))
		})
	}
}
