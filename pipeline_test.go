package main

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zipBytes builds an in-memory ZIP archive from path -> content pairs; paths
// ending in "/" become directory entries.
func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for path, content := range files {
		f, err := w.Create(path)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestProcessArchiveEndToEnd(t *testing.T) {
	data := zipBytes(t, map[string]string{
		"proj/src/a.py":          "print(1)\n",
		"proj/src/b.txt":         "",
		"proj/node_modules/x.js": "ignored",
	})

	entries, err := entriesFromZipBytes(data)
	require.NoError(t, err)

	output, outcomes, err := processArchive(entries, int64(len(data)))
	require.NoError(t, err)

	assert.Equal(t, 2, output.Stats.TotalFiles)
	assert.Equal(t, 1, output.Stats.TotalFolders)
	assert.Equal(t, 1, output.Stats.LinesOfCode)
	assert.Regexp(t, `^\d+\.\d{1}MB$`, output.Stats.FileSize)
	assert.Regexp(t, `^\d+\.\d{1}s$`, output.Stats.ProcessingTime)

	assert.Contains(t, output.FormattedContent, "### src/a.py")
	assert.Len(t, outcomes, 2)

	require.Len(t, output.FileTree, 1)
	assert.Equal(t, "src", output.FileTree[0].Name)
}

func TestProcessArchiveDeterminism(t *testing.T) {
	data := zipBytes(t, map[string]string{
		"app/main.go":     "package main\n\nfunc main() {}\n",
		"app/util/io.go":  "package util\n",
		"app/README.md":   "# app\n",
		"app/docs/how.md": "words\n",
	})

	entries, err := entriesFromZipBytes(data)
	require.NoError(t, err)
	first, _, err := processArchive(entries, int64(len(data)))
	require.NoError(t, err)

	entries, err = entriesFromZipBytes(data)
	require.NoError(t, err)
	second, _, err := processArchive(entries, int64(len(data)))
	require.NoError(t, err)

	// Byte-identical modulo the elapsed-time statistic.
	assert.Equal(t, first.FormattedContent, second.FormattedContent)
	assert.Equal(t, first.FileTree, second.FileTree)
	assert.Equal(t, first.Stats.TotalFiles, second.Stats.TotalFiles)
	assert.Equal(t, first.Stats.LinesOfCode, second.Stats.LinesOfCode)
}

func TestProcessArchiveCountConsistency(t *testing.T) {
	data := zipBytes(t, map[string]string{
		"p/a/b.go":  "package b\n",
		"p/a/c.go":  "package c\n",
		"p/d.txt":   "text\n",
		"p/e/f/g.h": "int g;\n",
	})

	entries, err := entriesFromZipBytes(data)
	require.NoError(t, err)
	output, _, err := processArchive(entries, int64(len(data)))
	require.NoError(t, err)

	var files, folders int
	var walk func(nodes []*TreeNode)
	walk = func(nodes []*TreeNode) {
		for _, n := range nodes {
			if n.Kind == KindFolder {
				folders++
			} else {
				files++
			}
			walk(n.Children)
		}
	}
	walk(output.FileTree)

	assert.Equal(t, files, output.Stats.TotalFiles)
	assert.Equal(t, folders, output.Stats.TotalFolders)
}

func TestProcessArchiveLineCountAdditivity(t *testing.T) {
	data := zipBytes(t, map[string]string{
		"p/a.go": "one\ntwo\nthree\n",
		"p/b.md": "alpha\nbeta\n",
		"p/c.go": "",
	})

	entries, err := entriesFromZipBytes(data)
	require.NoError(t, err)
	output, outcomes, err := processArchive(entries, int64(len(data)))
	require.NoError(t, err)

	sum := 0
	for _, outcome := range outcomes {
		if outcome.State == Embedded {
			sum += countLines(outcome.Content)
		}
	}
	assert.Equal(t, sum, output.Stats.LinesOfCode)
	assert.Equal(t, 5, output.Stats.LinesOfCode)
}

func TestProcessArchiveNoCommonPrefix(t *testing.T) {
	data := zipBytes(t, map[string]string{
		"a/x.md": "one\n",
		"b/y.md": "two\n",
	})

	entries, err := entriesFromZipBytes(data)
	require.NoError(t, err)
	output, _, err := processArchive(entries, int64(len(data)))
	require.NoError(t, err)

	require.Len(t, output.FileTree, 2)
	assert.Equal(t, "a", output.FileTree[0].Name)
	assert.Equal(t, "b", output.FileTree[1].Name)
	assert.Contains(t, output.FormattedContent, "### a/x.md")
	assert.Contains(t, output.FormattedContent, "### b/y.md")
}

func TestProcessArchiveEmpty(t *testing.T) {
	_, _, err := processArchive(nil, 0)
	assert.Error(t, err)
}

func TestEntriesFromZipBytesCorrupt(t *testing.T) {
	_, err := entriesFromZipBytes([]byte("this is not a zip archive"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read ZIP archive")
}

func TestFormatMegabytes(t *testing.T) {
	assert.Equal(t, "0.0MB", formatMegabytes(1024))
	assert.Equal(t, "1.0MB", formatMegabytes(1024*1024))
	assert.Equal(t, "1.5MB", formatMegabytes(1024*1024+512*1024))
	assert.Equal(t, "100.0MB", formatMegabytes(100*1024*1024))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0.0s", formatSeconds(12*time.Millisecond))
	assert.Equal(t, "0.5s", formatSeconds(500*time.Millisecond))
	assert.Equal(t, "2.3s", formatSeconds(2300*time.Millisecond))
}
