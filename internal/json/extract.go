// Package json provides JSON extraction utilities for parsing LLM responses.
//
// Models often return JSON wrapped in markdown fences or surrounded by
// commentary. This package locates the payload and decodes it.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const fence = "```"

// ErrNoObject is returned when the payload does not decode to a JSON object.
var ErrNoObject = errors.New("payload is not a JSON object")

// Payload returns the text most likely to hold the JSON document:
// 1. The interior of a fence tagged json (```json ... ```)
// 2. Otherwise the interior of the first fence of any kind
// 3. Otherwise the whole trimmed text
//
// Limitations:
// - Assumes at most one relevant fence
// - An unclosed fence yields everything after the opening marker
func Payload(response string) string {
	text := strings.TrimSpace(response)

	if start := jsonFence(text); start != -1 {
		return fenceInterior(text[start+len(fence)+len("json"):])
	}

	if start := strings.Index(text, fence); start != -1 {
		rest := text[start+len(fence):]
		return fenceInterior(dropInfoString(rest))
	}

	return text
}

// fenceInterior returns text up to the closing fence, trimmed.
func fenceInterior(rest string) string {
	if end := strings.Index(rest, fence); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// dropInfoString removes a language tag such as "javascript" that sits on
// the fence line.
func dropInfoString(rest string) string {
	nl := strings.IndexByte(rest, '\n')
	if nl == -1 {
		return rest
	}
	tag := strings.TrimSpace(rest[:nl])
	for _, r := range tag {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '+') {
			return rest
		}
	}
	return rest[nl+1:]
}

// jsonFence returns the byte offset in text of the first fence tagged json
// in any letter case, or -1. Offsets always index text itself.
func jsonFence(text string) int {
	for off := 0; ; {
		i := strings.Index(text[off:], fence)
		if i == -1 {
			return -1
		}
		start := off + i
		tag := start + len(fence)
		if tag+len("json") <= len(text) && strings.EqualFold(text[tag:tag+len("json")], "json") {
			return start
		}
		off = tag
	}
}

// ExtractObject locates the payload and decodes it as a JSON object.
func ExtractObject(response string) (map[string]any, error) {
	payload := Payload(response)

	var obj map[string]any
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from response %q: %w", preview(payload), err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoObject, preview(payload))
	}
	return obj, nil
}

func preview(s string) string {
	if len(s) > 100 {
		return s[:100] + "..."
	}
	return s
}
