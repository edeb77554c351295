package roadmap

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatTransformerDocker(t *testing.T) {
	root, err := Normalize(dockerJSON)
	require.NoError(t, err)

	got, err := FlatTransformer{}.Transform(root)
	require.NoError(t, err)

	want := &Canonical{
		Title: "Docker",
		Subtopics: []Subtopic{
			{Title: "Basics", Children: []Item{{Title: "Build"}, {Title: "Tag"}}},
		},
	}
	assert.Equal(t, want, got)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"title":"Docker","subtopics":[{"title":"Basics","children":[{"title":"Build"},{"title":"Tag"}]}]}`,
		string(body))
}

func TestFlatTransformerPreservesOrderAcrossSubtopics(t *testing.T) {
	tree := Branch("Go",
		Branch("Core",
			Branch("Types", Leaf("int"), Leaf("string")),
			Branch("Control", Leaf("for")),
		),
		Branch("Empty"),
	)

	got, err := FlatTransformer{}.Transform(tree)
	require.NoError(t, err)

	require.Len(t, got.Subtopics, 2)
	assert.Equal(t, []Item{{Title: "int"}, {Title: "string"}, {Title: "for"}}, got.Subtopics[0].Children)
	assert.NotNil(t, got.Subtopics[1].Children)
	assert.Empty(t, got.Subtopics[1].Children)
}

func TestNestedTransformerKeepsSubtopics(t *testing.T) {
	root, err := Normalize(dockerJSON)
	require.NoError(t, err)

	got, err := NestedTransformer{}.Transform(root)
	require.NoError(t, err)

	require.Len(t, got.Subtopics, 1)
	assert.Equal(t, []Item{
		{Title: "Images", Children: []Item{{Title: "Build"}, {Title: "Tag"}}},
	}, got.Subtopics[0].Children)
}

func TestTransformRejectsMissingRootName(t *testing.T) {
	for _, tr := range []Transformer{FlatTransformer{}, NestedTransformer{}} {
		got, err := tr.Transform(Branch("  ", Branch("A")))
		assert.Nil(t, got)
		assert.True(t, errors.Is(err, ErrIncompleteTree))
	}
}

func TestTransformerFor(t *testing.T) {
	assert.IsType(t, NestedTransformer{}, TransformerFor("Nested"))
	assert.IsType(t, FlatTransformer{}, TransformerFor("flat"))
	assert.IsType(t, FlatTransformer{}, TransformerFor(""))
}

func TestMarkdown(t *testing.T) {
	root, err := Normalize(dockerJSON)
	require.NoError(t, err)

	assert.Equal(t, "- Basics\n  - Images\n    - Build\n    - Tag\n", Markdown(root))
}

func TestCanonicalTree(t *testing.T) {
	root, err := Normalize(dockerJSON)
	require.NoError(t, err)

	nested, err := NestedTransformer{}.Transform(root)
	require.NoError(t, err)
	assert.Equal(t, root, nested.Tree())

	flat, err := FlatTransformer{}.Transform(root)
	require.NoError(t, err)
	assert.Equal(t, "- Basics\n  - Build\n  - Tag\n", Markdown(flat.Tree()))
}

func TestPromptMentionsTopicAndShape(t *testing.T) {
	p, err := Prompt("Rust")
	require.NoError(t, err)

	assert.Contains(t, p, "learning roadmap for Rust")
	assert.Contains(t, p, `"name": "Rust"`)
	assert.Contains(t, p, "Return ONLY the JSON object")
}
