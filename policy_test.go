package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIgnoredSegment(t *testing.T) {
	testCases := []struct {
		name     string
		segment  string
		expected bool
	}{
		{"VCS metadata folder", ".git", true},
		{"Dependency cache", "node_modules", true},
		{"Build output", "target", true},
		{"Editor settings via dot rule", ".vscode", true},
		{"Hidden file", ".DS_Store", true},
		{"Dotfile config", ".gitignore", true},
		{"Regular source folder", "src", false},
		{"Regular file", "main.go", false},
		{"Name containing ignored substring", "rebuild", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, isIgnoredSegment(tc.segment))
		})
	}
}

func TestIsIgnoredPath(t *testing.T) {
	assert.True(t, isIgnoredPath("app/node_modules/x/index.js"))
	assert.True(t, isIgnoredPath("app/.git/HEAD"))
	assert.True(t, isIgnoredPath(".hidden/visible.go"))
	assert.False(t, isIgnoredPath("app/src/main.go"))
	// Trailing slash on directory entries yields an empty segment, which is
	// not a match.
	assert.False(t, isIgnoredPath("app/src/"))
}

func TestIsProcessableExtension(t *testing.T) {
	assert.True(t, isProcessableExtension(".go"))
	assert.True(t, isProcessableExtension(".py"))
	assert.True(t, isProcessableExtension(".md"))
	assert.True(t, isProcessableExtension(".txt"))
	assert.False(t, isProcessableExtension(".png"))
	assert.False(t, isProcessableExtension(".exe"))
	assert.False(t, isProcessableExtension(""))
}

func TestLanguageTag(t *testing.T) {
	testCases := []struct {
		ext      string
		expected string
	}{
		{".go", "go"},
		{".py", "python"},
		{".ts", "typescript"},
		{".yml", "yaml"},
		{".unknown", "text"},
		{"", "text"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, languageTag(tc.ext), "ext %q", tc.ext)
	}
}
