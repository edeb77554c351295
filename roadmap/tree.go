// Package roadmap holds the roadmap tree, its normalization from model
// output, and the canonical shape served to clients.
package roadmap

import "strings"

// Node is one entry of a roadmap tree. The root names the topic, level one
// holds main topics, level two subtopics and level three points.
type Node struct {
	Name     string `json:"name"`
	Children []Node `json:"children"`
}

// Leaf creates a node with no children.
func Leaf(name string) Node {
	return Node{Name: name, Children: []Node{}}
}

// Branch creates a node with the given children.
func Branch(name string, children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{Name: name, Children: children}
}

// Depth returns the number of levels below n.
func (n Node) Depth() int {
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth() + 1; d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Markdown renders the tree below the root as a nested bullet list.
func Markdown(root Node) string {
	var b strings.Builder
	writeMarkdown(&b, root, 0)
	return b.String()
}

func writeMarkdown(b *strings.Builder, n Node, level int) {
	if level > 0 {
		b.WriteString(strings.Repeat("  ", level-1))
		b.WriteString("- ")
		b.WriteString(n.Name)
		b.WriteByte('\n')
	}
	for _, c := range n.Children {
		writeMarkdown(b, c, level+1)
	}
}
