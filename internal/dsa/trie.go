// Package dsa provides the radix tree behind curated term lookup.
package dsa

import (
	"github.com/armon/go-radix"
)

// Trie is a set of terms stored in a compressed prefix tree. Multi-word
// terms sharing a stem ("data", "data science", "data engineering") share
// nodes. It is not safe for concurrent writes; build it once, then read.
type Trie struct {
	tree *radix.Tree
}

// NewTrie creates a trie holding terms.
func NewTrie(terms ...string) *Trie {
	t := &Trie{tree: radix.New()}
	for _, term := range terms {
		t.Add(term)
	}
	return t
}

// Add inserts a term. Adding an existing term is a no-op.
func (t *Trie) Add(term string) {
	t.tree.Insert(term, struct{}{})
}

// Has reports whether term was added exactly. O(k) in the term length.
func (t *Trie) Has(term string) bool {
	_, ok := t.tree.Get(term)
	return ok
}

// Len returns the number of distinct terms.
func (t *Trie) Len() int {
	return t.tree.Len()
}

// FindIn returns the first term that occurs anywhere inside text, scanning
// offsets left to right. At each offset the shortest term starting there
// wins. O(n * k) for text length n and longest term k.
func (t *Trie) FindIn(text string) (string, bool) {
	for i := 0; i < len(text); i++ {
		var match string
		t.tree.WalkPath(text[i:], func(k string, _ interface{}) bool {
			match = k
			return true
		})
		if match != "" {
			return match, true
		}
	}
	return "", false
}
