package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/richinex/waypoint/generation"
	"github.com/richinex/waypoint/resources"
	"github.com/richinex/waypoint/roadmap"
)

type MockGenerator struct {
	GenerateFn func(ctx context.Context, topic string) generation.Result
	Topics     []string
}

func (m *MockGenerator) Generate(ctx context.Context, topic string) generation.Result {
	m.Topics = append(m.Topics, topic)
	return m.GenerateFn(ctx, topic)
}

type MockFetcher struct {
	Bundle resources.Bundle
}

func (m *MockFetcher) Fetch(_ context.Context, topic string) resources.Bundle {
	b := m.Bundle
	b.TopicInfo = strings.ReplaceAll(b.TopicInfo, "{topic}", topic)
	return b
}

type MockExplainer struct{}

func (MockExplainer) Explain(_ context.Context, topic string) resources.TopicContent {
	return resources.TopicContent{Introduction: topic + " intro", WhyLearn: "because"}
}

func succeed(_ context.Context, topic string) generation.Result {
	return generation.Result{
		Outcome: generation.OutcomeSuccess,
		Source:  "gemini",
		Roadmap: &roadmap.Canonical{
			Title:     topic,
			Subtopics: []roadmap.Subtopic{{Title: "Basics", Children: []roadmap.Item{{Title: "Syntax"}}}},
		},
	}
}

func newTestServer(t *testing.T, gen *MockGenerator) http.Handler {
	t.Helper()
	fetcher := &MockFetcher{Bundle: resources.Bundle{
		Variant:   resources.VariantSummary,
		TopicInfo: "{topic} is a topic",
	}}
	cfg := Config{Port: 8000, AllowedOrigins: []string{"http://localhost:3000"}}
	return New(cfg, gen, fetcher, MockExplainer{}, zaptest.NewLogger(t)).Handler()
}

func post(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func TestGenerateSuccess(t *testing.T) {
	gen := &MockGenerator{GenerateFn: succeed}
	h := newTestServer(t, gen)

	rec, body := post(t, h, "/api/generate", `{"prompt":"  Go  "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "json", body["format"])
	assert.Equal(t, "gemini", body["source"])
	assert.Equal(t, "Go", body["roadmap"].(map[string]any)["title"])
	assert.Equal(t, []string{"Go"}, gen.Topics)
}

func TestGenerateFailureIsStillOK(t *testing.T) {
	gen := &MockGenerator{GenerateFn: func(context.Context, string) generation.Result {
		return generation.Result{Outcome: generation.OutcomeOffTopic, Reason: generation.ReasonOffTopic}
	}}
	h := newTestServer(t, gen)

	rec, body := post(t, h, "/api/generate", `{"prompt":"gardening"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, generation.ReasonOffTopic, body["error"])
	assert.NotContains(t, body, "roadmap")
}

func TestGenerateRejectsMissingPrompt(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", generation.ReasonEmptyTopic},
		{"no prompt field", `{}`, generation.ReasonEmptyTopic},
		{"blank prompt", `{"prompt":"   "}`, generation.ReasonEmptyTopic},
		{"malformed json", `{"prompt":`, msgInvalidBody},
		{"wrong type", `{"prompt":42}`, msgInvalidBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &MockGenerator{GenerateFn: succeed}
			h := newTestServer(t, gen)

			rec, body := post(t, h, "/api/generate", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.want, body["error"])
			assert.Empty(t, gen.Topics)
		})
	}
}

func TestGenerateTrailingSlash(t *testing.T) {
	h := newTestServer(t, &MockGenerator{GenerateFn: succeed})
	rec, body := post(t, h, "/api/generate/", `{"prompt":"rust"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}

func TestGeneratePanicRecovered(t *testing.T) {
	gen := &MockGenerator{GenerateFn: func(context.Context, string) generation.Result {
		panic("boom")
	}}
	h := newTestServer(t, gen)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt":"go"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResources(t *testing.T) {
	h := newTestServer(t, &MockGenerator{GenerateFn: succeed})

	rec, body := post(t, h, "/api/resources", `{"topic":"Kubernetes"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	res := body["resources"].(map[string]any)
	assert.Equal(t, "Kubernetes is a topic", res["topicInfo"])
	assert.Equal(t, []any{}, res["courses"])
}

func TestResourcesRequiresTopic(t *testing.T) {
	h := newTestServer(t, &MockGenerator{GenerateFn: succeed})

	rec, body := post(t, h, "/api/resources", `{"topic":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgTopicRequired, body["error"])
}

func TestExplain(t *testing.T) {
	h := newTestServer(t, &MockGenerator{GenerateFn: succeed})

	rec, body := post(t, h, "/api/explain", `{"topic":"Docker"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Docker", body["topic"])
	assert.Equal(t, "Docker intro", body["content"].(map[string]any)["introduction"])
}

func TestExplainNotRegisteredWithoutExplainer(t *testing.T) {
	h := New(Config{}, &MockGenerator{GenerateFn: succeed}, &MockFetcher{}, nil, nil).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/explain", strings.NewReader(`{"topic":"go"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, &MockGenerator{GenerateFn: succeed})

	for _, path := range []string{"/health", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, &MockGenerator{GenerateFn: succeed})

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	allowed := preflight("http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := preflight("http://evil.example")
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}
