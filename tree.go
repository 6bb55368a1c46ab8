package main

import (
	"path/filepath"
	"sort"
	"strings"
)

// detectCommonPrefix inspects the first entry's path and, if it contains a
// slash, takes the substring up to and including the first slash as the
// candidate wrapper folder. The candidate becomes the common prefix only if
// every entry shares it; otherwise no stripping occurs and paths are used
// verbatim. This is one global decision per archive, a best-effort heuristic
// for the synthetic top-level folder most archives wrap a project in. It can
// misfire on archives with a single top-level file or several legitimate
// top-level folders; both cases intentionally resolve to "no strip".
func detectCommonPrefix(entries []ArchiveEntry) string {
	if len(entries) == 0 {
		return ""
	}
	first := entries[0].Path()
	idx := strings.Index(first, "/")
	if idx < 0 {
		return ""
	}
	candidate := first[:idx+1]
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Path(), candidate) {
			return ""
		}
	}
	return candidate
}

// builderNode is the mutable intermediate used while inserting paths. Child
// order is kept in an explicit slice; an unordered map alone would lose the
// sibling ordering that the output contract depends on.
type builderNode struct {
	name     string
	path     string
	isDir    bool
	size     int64
	children []*builderNode
	index    map[string]*builderNode
}

func (b *builderNode) child(name string) (*builderNode, bool) {
	n, ok := b.index[name]
	return n, ok
}

func (b *builderNode) addChild(n *builderNode) {
	if b.index == nil {
		b.index = make(map[string]*builderNode)
	}
	b.children = append(b.children, n)
	b.index[n.name] = n
}

// buildTree converts the flat entry list into a forest of TreeNodes.
// Entries with any ignored path segment are dropped, the rest are sorted by
// their full original path (byte-wise, which fixes sibling order everywhere),
// the common prefix is stripped, and each path's segments are inserted into
// per-level insertion-ordered child lists. On a name collision between a file
// and an implied folder the first write wins; this mirrors the accepted
// ambiguity of archives that contain both.
func buildTree(entries []ArchiveEntry, commonPrefix string) []*TreeNode {
	kept := make([]ArchiveEntry, 0, len(entries))
	for _, entry := range entries {
		if isIgnoredPath(entry.Path()) {
			continue
		}
		kept = append(kept, entry)
	}
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Path() < kept[j].Path()
	})

	root := &builderNode{isDir: true}
	for _, entry := range kept {
		stripped := strings.TrimPrefix(entry.Path(), commonPrefix)
		segments := splitPath(stripped)
		if len(segments) == 0 {
			continue
		}
		current := root
		for i, segment := range segments {
			last := i == len(segments)-1
			next, exists := current.child(segment)
			if !exists {
				next = &builderNode{
					name:  segment,
					path:  joinPath(current.path, segment),
					isDir: !last || entry.IsDir(),
				}
				if last && !entry.IsDir() {
					next.size = entry.Size()
				}
				current.addChild(next)
			}
			current = next
		}
	}

	return finalize(root.children)
}

// finalize converts the builder structure into the immutable TreeNode forest,
// preserving insertion order.
func finalize(nodes []*builderNode) []*TreeNode {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*TreeNode, 0, len(nodes))
	for _, n := range nodes {
		node := &TreeNode{
			Name: n.name,
			Path: n.path,
		}
		if n.isDir {
			node.Kind = KindFolder
			node.Children = finalize(n.children)
		} else {
			node.Kind = KindFile
			node.Size = n.size
			node.Extension = strings.ToLower(filepath.Ext(n.name))
		}
		out = append(out, node)
	}
	return out
}

// splitPath splits a slash-separated path, discarding empty segments so that
// leading and trailing slashes (zip directory entries) are harmless.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
