package roadmap

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	jsonx "github.com/richinex/waypoint/internal/json"
)

// treeSchema checks the top level only; deeper levels are repaired rather
// than rejected.
const treeSchema = `{
	"type": "object",
	"required": ["name", "children"],
	"properties": {
		"name": {"type": "string"},
		"children": {"type": "array"}
	}
}`

var compiledTreeSchema = mustSchema(treeSchema)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("roadmap: invalid tree schema: %v", err))
	}
	return schema
}

var (
	parenDuration = regexp.MustCompile(`(?i)\(\s*\d+\s*(?:hours|hour|hrs|hr)\s*\)`)
	bareDuration  = regexp.MustCompile(`(?i)\b\d+\s*(?:hours|hour|hrs|hr)\b`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

// Normalize turns raw model text into a bounded tree using DefaultBounds.
func Normalize(raw string) (Node, error) {
	return NormalizeWithBounds(raw, DefaultBounds)
}

// NormalizeWithBounds extracts the JSON payload from raw, checks the top
// level shape and truncates the tree to b. Failures are *NormalizationError.
func NormalizeWithBounds(raw string, b Bounds) (Node, error) {
	obj, err := jsonx.ExtractObject(raw)
	if err != nil {
		return Node{}, &NormalizationError{Kind: KindMalformedOutput, Err: err}
	}

	result, err := compiledTreeSchema.Validate(gojsonschema.NewGoLoader(obj))
	if err != nil {
		return Node{}, &NormalizationError{Kind: KindMalformedOutput, Err: err}
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return Node{}, &NormalizationError{
			Kind: KindSchemaMismatch,
			Err:  fmt.Errorf("%s", strings.Join(msgs, "; ")),
		}
	}

	root, _ := nodeFrom(obj)
	return b.Apply(root), nil
}

// nodeFrom converts a decoded JSON value into a node. Objects use their
// name and children fields, strings become leaves, anything else is skipped.
func nodeFrom(v any) (Node, bool) {
	switch val := v.(type) {
	case map[string]any:
		name, _ := val["name"].(string)
		n := Node{Name: CleanName(name), Children: []Node{}}
		children, _ := val["children"].([]any)
		for _, c := range children {
			if child, ok := nodeFrom(c); ok {
				n.Children = append(n.Children, child)
			}
		}
		return n, true
	case string:
		return Leaf(CleanName(val)), true
	default:
		return Node{}, false
	}
}

// CleanName strips duration annotations such as "(2 hours)" and collapses
// whitespace.
func CleanName(name string) string {
	name = parenDuration.ReplaceAllString(name, "")
	name = bareDuration.ReplaceAllString(name, "")
	return strings.TrimSpace(spaceRun.ReplaceAllString(name, " "))
}
