package roadmap

import "strings"

// Canonical is the shape served to the rendering client.
type Canonical struct {
	Title     string     `json:"title"`
	Subtopics []Subtopic `json:"subtopics"`
}

// Subtopic is one main topic of the canonical roadmap.
type Subtopic struct {
	Title    string `json:"title"`
	Children []Item `json:"children"`
}

// Item is a leaf, or in the nested shape a subtopic with its points.
type Item struct {
	Title    string `json:"title"`
	Children []Item `json:"children,omitempty"`
}

// Transformer converts a normalized tree into the canonical shape.
type Transformer interface {
	Transform(root Node) (*Canonical, error)
}

// FlatTransformer drops subtopic names and lifts their points one level,
// so each main topic lists points directly.
type FlatTransformer struct{}

func (FlatTransformer) Transform(root Node) (*Canonical, error) {
	if strings.TrimSpace(root.Name) == "" {
		return nil, ErrIncompleteTree
	}

	out := &Canonical{Title: root.Name, Subtopics: make([]Subtopic, 0, len(root.Children))}
	for _, main := range root.Children {
		st := Subtopic{Title: main.Name, Children: []Item{}}
		for _, sub := range main.Children {
			for _, point := range sub.Children {
				st.Children = append(st.Children, Item{Title: point.Name})
			}
		}
		out.Subtopics = append(out.Subtopics, st)
	}
	return out, nil
}

// NestedTransformer keeps subtopic names, with points as their children.
type NestedTransformer struct{}

func (NestedTransformer) Transform(root Node) (*Canonical, error) {
	if strings.TrimSpace(root.Name) == "" {
		return nil, ErrIncompleteTree
	}

	out := &Canonical{Title: root.Name, Subtopics: make([]Subtopic, 0, len(root.Children))}
	for _, main := range root.Children {
		st := Subtopic{Title: main.Name, Children: make([]Item, 0, len(main.Children))}
		for _, sub := range main.Children {
			item := Item{Title: sub.Name}
			for _, point := range sub.Children {
				item.Children = append(item.Children, Item{Title: point.Name})
			}
			st.Children = append(st.Children, item)
		}
		out.Subtopics = append(out.Subtopics, st)
	}
	return out, nil
}

// TransformerFor returns the transformer registered under name: "nested"
// or anything else for the flat default.
func TransformerFor(name string) Transformer {
	if strings.EqualFold(name, "nested") {
		return NestedTransformer{}
	}
	return FlatTransformer{}
}

var (
	_ Transformer = FlatTransformer{}
	_ Transformer = NestedTransformer{}
)

// Tree converts the canonical shape back into a Node tree, for rendering.
func (c *Canonical) Tree() Node {
	root := Node{Name: c.Title, Children: []Node{}}
	for _, st := range c.Subtopics {
		n := Node{Name: st.Title, Children: []Node{}}
		for _, it := range st.Children {
			n.Children = append(n.Children, it.node())
		}
		root.Children = append(root.Children, n)
	}
	return root
}

func (it Item) node() Node {
	n := Node{Name: it.Title, Children: []Node{}}
	for _, c := range it.Children {
		n.Children = append(n.Children, c.node())
	}
	return n
}
