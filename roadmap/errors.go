package roadmap

import (
	"errors"
	"fmt"
)

// NormalizationKind classifies why model output could not become a tree.
type NormalizationKind string

const (
	// KindMalformedOutput means the payload did not parse as a JSON object.
	KindMalformedOutput NormalizationKind = "malformed_output"
	// KindSchemaMismatch means the object lacks a string name or a children array.
	KindSchemaMismatch NormalizationKind = "schema_mismatch"
)

// NormalizationError is returned by Normalize.
type NormalizationError struct {
	Kind NormalizationKind
	Err  error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization failed (%s): %v", e.Kind, e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// ErrIncompleteTree is returned by a Transformer when the tree lacks the
// fields needed to build the canonical shape.
var ErrIncompleteTree = errors.New("roadmap tree is missing its root name")
