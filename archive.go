package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// ArchiveEntry is a read-only view over one record of an opened archive:
// a raw slash-separated path, a directory flag, a byte length, and an
// on-demand content accessor. The pipeline never mutates entries.
type ArchiveEntry interface {
	Path() string
	IsDir() bool
	Size() int64
	Open() (io.ReadCloser, error)
}

// --- ZIP source ---

type zipEntry struct {
	file *zip.File
}

func (e zipEntry) Path() string { return filepath.ToSlash(e.file.Name) }

func (e zipEntry) IsDir() bool { return e.file.FileInfo().IsDir() }

func (e zipEntry) Size() int64 { return int64(e.file.UncompressedSize64) }

func (e zipEntry) Open() (io.ReadCloser, error) { return e.file.Open() }

// entriesFromZipBytes opens in-memory ZIP data and exposes its records.
// The whole archive is materialized before tree construction begins; a
// corrupt archive is a fatal error for the request.
func entriesFromZipBytes(data []byte) ([]ArchiveEntry, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("cannot read ZIP archive: %w", err)
	}
	entries := make([]ArchiveEntry, 0, len(reader.File))
	for _, f := range reader.File {
		entries = append(entries, zipEntry{file: f})
	}
	return entries, nil
}

// entriesFromZipFile reads an archive from disk and returns its entries plus
// the archive's compressed size (for the fileSize statistic).
func entriesFromZipFile(path string) ([]ArchiveEntry, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot read archive %s: %w", path, err)
	}
	entries, err := entriesFromZipBytes(data)
	if err != nil {
		return nil, 0, err
	}
	return entries, int64(len(data)), nil
}

// --- Directory source ---

type dirEntry struct {
	rel   string
	abs   string
	isDir bool
	size  int64
}

func (e dirEntry) Path() string { return e.rel }

func (e dirEntry) IsDir() bool { return e.isDir }

func (e dirEntry) Size() int64 { return e.size }

func (e dirEntry) Open() (io.ReadCloser, error) { return os.Open(e.abs) }

// entriesFromDir walks a local directory (or a cloned repository) and adapts
// it to the archive-entry view, so directories and archives flow through the
// same pipeline. Paths are made relative to root and prefixed with the root's
// base name, mirroring how archives created from a project directory wrap
// everything in a single top-level folder. When useGitignore is set and the
// root carries a .gitignore, matching paths are dropped up front.
func entriesFromDir(root string, useGitignore bool) ([]ArchiveEntry, int64, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, 0, fmt.Errorf("error accessing path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("%s is not a directory", root)
	}

	var ignoreMatcher gitignore.IgnoreMatcher
	if useGitignore {
		gitIgnorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not parse .gitignore file %s: %v\n", gitIgnorePath, err)
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	wrapper := filepath.Base(filepath.Clean(root))
	var entries []ArchiveEntry
	var totalSize int64

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error accessing path %s: %v\n", path, err)
			return nil
		}
		if path == root {
			return nil
		}

		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)

		if ignoreMatcher != nil && ignoreMatcher.Match(rel, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		// The ignore policy runs again inside the tree builder; pruning
		// ignored directories here just avoids walking their subtrees.
		if d.IsDir() && isIgnoredSegment(d.Name()) {
			return fs.SkipDir
		}

		entryPath := wrapper + "/" + rel
		if d.IsDir() {
			entries = append(entries, dirEntry{rel: entryPath + "/", abs: path, isDir: true})
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not get info for %s: %v\n", path, err)
			return nil
		}
		entries = append(entries, dirEntry{rel: entryPath, abs: path, size: fi.Size()})
		totalSize += fi.Size()
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("error walking directory %s: %w", root, err)
	}

	return entries, totalSize, nil
}

// isArchivePath reports whether a local path looks like a ZIP archive.
func isArchivePath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".zip")
}
