package main

import "strings"

// ignoredSegments lists directory and file names excluded from the tree
// outright: VCS metadata, dependency caches, build output, tooling state.
// Dot-prefixed names (.git, .idea, .DS_Store, ...) are caught by the
// leading-dot rule in isIgnoredSegment and don't need to be listed.
var ignoredSegments = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
	"target":       {},
	"build":        {},
	"dist":         {},
	"out":          {},
	"bin":          {},
	"obj":          {},
	"__pycache__":  {},
	"coverage":     {},
	"venv":         {},
	"env":          {},
	"tmp":          {},
	"logs":         {},
	"Thumbs.db":    {},
}

// isIgnoredSegment reports whether a single path segment excludes the whole
// path from processing. A path is ignored if any of its segments match.
func isIgnoredSegment(segment string) bool {
	if strings.HasPrefix(segment, ".") {
		return true
	}
	_, ok := ignoredSegments[segment]
	return ok
}

// isIgnoredPath applies isIgnoredSegment to every segment of a raw
// slash-separated entry path. Empty segments (trailing slash on directory
// entries) are skipped.
func isIgnoredPath(path string) bool {
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		if isIgnoredSegment(segment) {
			return true
		}
	}
	return false
}

// languageTags maps processable extensions (lowercased, with leading dot) to
// fenced-code-block language identifiers. Membership in this map is the
// content-embedding allow-list: files with other extensions still show up in
// the tree, but their content is never embedded.
var languageTags = map[string]string{
	".go":         "go",
	".py":         "python",
	".js":         "javascript",
	".jsx":        "jsx",
	".ts":         "typescript",
	".tsx":        "tsx",
	".java":       "java",
	".c":          "c",
	".h":          "c",
	".cpp":        "cpp",
	".cc":         "cpp",
	".hpp":        "cpp",
	".cs":         "csharp",
	".rb":         "ruby",
	".rs":         "rust",
	".php":        "php",
	".swift":      "swift",
	".kt":         "kotlin",
	".kts":        "kotlin",
	".scala":      "scala",
	".dart":       "dart",
	".lua":        "lua",
	".r":          "r",
	".pl":         "perl",
	".ex":         "elixir",
	".exs":        "elixir",
	".erl":        "erlang",
	".hs":         "haskell",
	".clj":        "clojure",
	".groovy":     "groovy",
	".sh":         "bash",
	".bash":       "bash",
	".zsh":        "bash",
	".fish":       "bash",
	".ps1":        "powershell",
	".bat":        "batch",
	".cmd":        "batch",
	".sql":        "sql",
	".html":       "html",
	".htm":        "html",
	".css":        "css",
	".scss":       "scss",
	".sass":       "sass",
	".less":       "less",
	".vue":        "vue",
	".svelte":     "svelte",
	".json":       "json",
	".yaml":       "yaml",
	".yml":        "yaml",
	".toml":       "toml",
	".xml":        "xml",
	".ini":        "ini",
	".cfg":        "ini",
	".conf":       "text",
	".properties": "properties",
	".env":        "text",
	".md":         "markdown",
	".markdown":   "markdown",
	".rst":        "rst",
	".txt":        "text",
	".csv":        "text",
	".graphql":    "graphql",
	".proto":      "protobuf",
	".tf":         "hcl",
	".dockerfile": "dockerfile",
	".gradle":     "groovy",
	".cmake":      "cmake",
	".make":       "makefile",
	".mk":         "makefile",
	".vim":        "vim",
	".tex":        "latex",
	".asm":        "asm",
	".s":          "asm",
	".m":          "objectivec",
	".mm":         "objectivec",
	".f90":        "fortran",
	".jl":         "julia",
	".nim":        "nim",
	".zig":        "zig",
	".v":          "v",
	".ml":         "ocaml",
	".fs":         "fsharp",
}

// isProcessableExtension reports whether a file's content may be embedded in
// the formatted document. The extension must be lowercased and include the
// leading dot; the empty extension is never processable.
func isProcessableExtension(ext string) bool {
	_, ok := languageTags[ext]
	return ok
}

// languageTag returns the fence tag for an extension, falling back to a
// generic "text" tag for anything unmapped.
func languageTag(ext string) string {
	if tag, ok := languageTags[ext]; ok {
		return tag
	}
	return "text"
}
