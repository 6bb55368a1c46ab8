package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL checks if the input string looks like a Git repository URL.
// Prioritizes .git suffix or git@ prefix; plain https:// is ambiguous.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") ||
		strings.HasPrefix(input, "git@")
}

// cloneGitRepo clones a Git repository URL into a temporary directory so it
// can flow through the directory ingestion path. It returns the path to the
// temporary directory; the caller is responsible for removing it.
func cloneGitRepo(url string) (string, error) {
	tempDir, err := os.MkdirTemp("", "codearchive-git-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	fmt.Printf("Cloning Git repository '%s' into '%s'...\n", url, tempDir)

	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      os.Stdout,
		Depth:         1, // history is irrelevant for a snapshot document
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}

	return tempDir, nil
}
