package main

import "strings"

// renderTree produces the box-drawn ASCII view of the forest. Presentation
// only: the tree itself is never touched.
func renderTree(nodes []*TreeNode) string {
	var builder strings.Builder
	renderNodes(&builder, nodes, "")
	return builder.String()
}

func renderNodes(builder *strings.Builder, nodes []*TreeNode, prefix string) {
	for i, node := range nodes {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(nodes)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		marker := "📄 "
		if node.Kind == KindFolder {
			marker = "📁 "
		}

		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(marker)
		builder.WriteString(node.Name)
		builder.WriteString("\n")

		if node.Kind == KindFolder && len(node.Children) > 0 {
			renderNodes(builder, node.Children, childPrefix)
		}
	}
}
