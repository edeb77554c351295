package resources

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockDescriber returns a canned description.
type MockDescriber struct {
	DescribeFn func(ctx context.Context, topic string) (string, error)
}

func (m MockDescriber) Describe(ctx context.Context, topic string) (string, error) {
	return m.DescribeFn(ctx, topic)
}

func describing(desc string, err error) MockDescriber {
	return MockDescriber{DescribeFn: func(context.Context, string) (string, error) { return desc, err }}
}

func TestSummaryFetcherUsesDescription(t *testing.T) {
	desc := "Go is a statically typed, compiled programming language designed at Google by a small team."
	f := NewSummaryFetcher(describing(desc, nil), zaptest.NewLogger(t))

	b := f.Fetch(context.Background(), "Go")

	assert.Equal(t, VariantSummary, b.Variant)
	assert.Equal(t, desc, b.TopicInfo)
	require.Len(t, b.Courses, 2)
	assert.Equal(t, "edX", b.Courses[0].Platform)
}

func TestSummaryFetcherFallsBack(t *testing.T) {
	for _, d := range []MockDescriber{
		describing("", errors.New("timeout")),
		describing("Too short.", nil),
	} {
		f := NewSummaryFetcher(d, zaptest.NewLogger(t))
		info := f.TopicInfo(context.Background(), "React")
		assert.True(t, strings.HasPrefix(info, "React is a popular JavaScript library"), info)
	}
}

func TestBackupTopicInfo(t *testing.T) {
	assert.True(t, strings.HasPrefix(BackupTopicInfo("Intro to Git"), "Git is a distributed"))
	assert.True(t, strings.HasPrefix(BackupTopicInfo("API"), "An API"))
	assert.Equal(t,
		"Zig is a concept in software development that helps developers build better applications. It contributes to code quality and efficiency. Understanding Zig is valuable for writing more effective software.",
		BackupTopicInfo("Zig"))
}

func TestCourses(t *testing.T) {
	py := Courses("Python!")
	require.Len(t, py, 2)
	assert.Equal(t, "Coursera", py[0].Platform)

	js := Courses("JavaScript")
	assert.Equal(t, "Frontend Masters", js[0].Platform)

	def := Courses("Elm Lang")
	assert.Equal(t, "Introduction to Elm Lang", def[0].Title)
	assert.Equal(t, "https://www.coursera.org/search?query=Elm+Lang", def[1].Link)
}
