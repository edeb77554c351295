// Package resources enriches a roadmap node with learning material.
// Fetchers never fail: an upstream problem yields fewer entries or a
// canned description.
package resources

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

// Variant selects the shape of a Bundle.
type Variant string

const (
	// VariantLibrary returns videos, articles and books.
	VariantLibrary Variant = "library"
	// VariantSummary returns a topic description and courses.
	VariantSummary Variant = "summary"
)

// ParseVariant maps a config value to a Variant; unknown values are library.
func ParseVariant(s string) Variant {
	if strings.EqualFold(strings.TrimSpace(s), string(VariantSummary)) {
		return VariantSummary
	}
	return VariantLibrary
}

// Resource is a video, article or book link.
type Resource struct {
	Type        string `json:"type"`
	Platform    string `json:"platform"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Link        string `json:"link"`
	Views       string `json:"views,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Channel     string `json:"channel,omitempty"`
}

// Course is a recommended course.
type Course struct {
	Title       string `json:"title"`
	Platform    string `json:"platform"`
	Instructor  string `json:"instructor"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// Bundle is the enrichment for one topic.
type Bundle struct {
	Variant   Variant
	Videos    []Resource
	Articles  []Resource
	Books     []Resource
	TopicInfo string
	Courses   []Course
}

// MarshalJSON writes only the fields of the bundle's variant, with empty
// lists as [].
func (b Bundle) MarshalJSON() ([]byte, error) {
	if b.Variant == VariantSummary {
		return json.Marshal(struct {
			TopicInfo string   `json:"topicInfo"`
			Courses   []Course `json:"courses"`
		}{b.TopicInfo, orEmpty(b.Courses)})
	}
	return json.Marshal(struct {
		Videos   []Resource `json:"videos"`
		Articles []Resource `json:"articles"`
		Books    []Resource `json:"books"`
	}{orEmpty(b.Videos), orEmpty(b.Articles), orEmpty(b.Books)})
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Fetcher builds the bundle for a topic.
type Fetcher interface {
	Fetch(ctx context.Context, topic string) Bundle
}

var (
	leadingNumber = regexp.MustCompile(`^\d+(\.\d+)*\.?\s*`)
	colonRun      = regexp.MustCompile(`:\s*`)
)

// CleanTopic strips outline numbering such as "1.2 " and colons from a
// node title.
func CleanTopic(topic string) string {
	cleaned := leadingNumber.ReplaceAllString(strings.TrimSpace(topic), "")
	cleaned = colonRun.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

func queryEscape(s string) string {
	return url.QueryEscape(s)
}
