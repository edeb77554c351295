package roadmap

// Bounds caps the number of siblings kept at each level.
type Bounds struct {
	MainTopics int
	Subtopics  int
	Points     int
}

// DefaultBounds keeps at most 6 main topics, 4 subtopics per main topic and
// 3 points per subtopic.
var DefaultBounds = Bounds{MainTopics: 6, Subtopics: 4, Points: 3}

// maxDepth is the number of levels kept below the root.
const maxDepth = 3

func (b Bounds) limit(level int) int {
	switch level {
	case 0:
		return b.MainTopics
	case 1:
		return b.Subtopics
	case 2:
		return b.Points
	default:
		return 0
	}
}

// Apply returns a copy of root truncated to the bounds. Siblings past the
// limit are dropped in order; levels deeper than points are removed.
// Applying the same bounds twice gives the same tree.
func (b Bounds) Apply(root Node) Node {
	return b.apply(root, 0)
}

func (b Bounds) apply(n Node, level int) Node {
	out := Node{Name: n.Name, Children: []Node{}}
	if level >= maxDepth {
		return out
	}

	kept := n.Children
	if limit := b.limit(level); len(kept) > limit {
		kept = kept[:limit]
	}
	for _, c := range kept {
		out.Children = append(out.Children, b.apply(c, level+1))
	}
	return out
}
