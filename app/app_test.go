package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/richinex/waypoint/config"
	"github.com/richinex/waypoint/generation"
	"github.com/richinex/waypoint/llm"
	"github.com/richinex/waypoint/resources"
)

const roadmapJSON = `{"name":"Python","children":[
  {"name":"Basics","children":[{"name":"Syntax","children":[{"name":"Variables"},{"name":"Loops"}]}]},
  {"name":"Packages","children":[{"name":"pip","children":[{"name":"Install"}]}]}
]}`

// fakeOllama answers chat requests with content and counts warmups.
func fakeOllama(t *testing.T, content string, warmups *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/generate":
			warmups.Add(1)
			_, _ = w.Write([]byte(`{"done":true}`))
		case "/api/chat":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"message": map[string]string{"role": "assistant", "content": content},
				"done":    true,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testSettings(ollamaURL string) *config.Settings {
	return &config.Settings{
		Generation: config.GenerationConfig{
			Providers:       []string{"ollama"},
			ProviderTimeout: 5 * time.Second,
			Transform:       "flat",
		},
		LLM: config.LLMConfig{MaxTokens: 512, Temperature: 0.2},
		Resources: config.ResourcesConfig{
			Variant:      "library",
			WikipediaURL: "http://127.0.0.1:1/w/api.php",
			Timeout:      time.Second,
		},
		Providers: map[string]config.ProviderConfig{
			"ollama": {Model: "tinyllama-roadmap", BaseURL: ollamaURL},
		},
	}
}

func TestNewGeneratesWithLocalModel(t *testing.T) {
	var warmups atomic.Int32
	srv := fakeOllama(t, roadmapJSON, &warmups)

	a, err := New(context.Background(), testSettings(srv.URL), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{SourceLocalModel}, a.Generator.Providers())

	require.NoError(t, a.Warmup(context.Background()))
	require.NoError(t, a.Warmup(context.Background()))
	assert.Equal(t, int32(1), warmups.Load())

	res := a.Generator.Generate(context.Background(), "python programming")
	require.Equal(t, generation.OutcomeSuccess, res.Outcome, "attempts: %v", res.Attempts)
	assert.Equal(t, SourceLocalModel, res.Source)
	assert.Equal(t, "Python", res.Roadmap.Title)
	require.Len(t, res.Roadmap.Subtopics, 2)
	assert.Equal(t, "Variables", res.Roadmap.Subtopics[0].Children[0].Title)
}

func TestNewRejectsOffTopicWithoutCallingProvider(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unexpected", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	a, err := New(context.Background(), testSettings(srv.URL), nil)
	require.NoError(t, err)

	res := a.Generator.Generate(context.Background(), "ceramic pottery")
	assert.Equal(t, generation.OutcomeOffTopic, res.Outcome)
	assert.Equal(t, int32(0), calls.Load())
}

func TestNewNestedTransform(t *testing.T) {
	var warmups atomic.Int32
	srv := fakeOllama(t, roadmapJSON, &warmups)
	s := testSettings(srv.URL)
	s.Generation.Transform = "nested"

	a, err := New(context.Background(), s, nil)
	require.NoError(t, err)

	res := a.Generator.Generate(context.Background(), "python")
	require.True(t, res.Success())
	first := res.Roadmap.Subtopics[0].Children[0]
	assert.Equal(t, "Syntax", first.Title)
	assert.Len(t, first.Children, 2)
}

func TestNewResourceVariants(t *testing.T) {
	s := testSettings("http://127.0.0.1:1")

	a, err := New(context.Background(), s, nil)
	require.NoError(t, err)
	assert.IsType(t, &resources.LibraryFetcher{}, a.Resources)

	s.Resources.Variant = "summary"
	a, err = New(context.Background(), s, nil)
	require.NoError(t, err)
	assert.IsType(t, &resources.SummaryFetcher{}, a.Resources)
}

func TestNewHostedProviderWithoutKey(t *testing.T) {
	s := testSettings("http://127.0.0.1:1")
	s.Generation.Providers = []string{"ollama", "openai"}

	_, err := New(context.Background(), s, nil)
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
}

func TestNewUnknownProvider(t *testing.T) {
	s := testSettings("http://127.0.0.1:1")
	s.Generation.Verifier = "mystery"

	_, err := New(context.Background(), s, nil)
	assert.Error(t, err)
}

func TestSourceTag(t *testing.T) {
	assert.Equal(t, "local_model", SourceTag(llm.ProviderOllama))
	assert.Equal(t, "gemini", SourceTag(llm.ProviderGemini))
	assert.Equal(t, "anthropic", SourceTag(llm.ProviderAnthropic))
}
