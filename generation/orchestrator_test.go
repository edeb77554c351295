package generation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/richinex/waypoint/roadmap"
)

const dockerFenced = "Sure, here is your roadmap:\n```json\n" + `{
  "name": "Docker",
  "children": [
    {"name": "Basics", "children": [
      {"name": "Images", "children": [{"name": "Build"}, {"name": "Tag"}]}
    ]}
  ]
}` + "\n```"

// MockAdapter returns whatever GenerateFn returns.
type MockAdapter struct {
	name       string
	GenerateFn func(ctx context.Context, topic string) (string, error)
	calls      atomic.Int32
}

func (m *MockAdapter) Name() string { return m.name }

func (m *MockAdapter) Generate(ctx context.Context, topic string) (string, error) {
	m.calls.Add(1)
	return m.GenerateFn(ctx, topic)
}

func returning(name, raw string) *MockAdapter {
	return &MockAdapter{name: name, GenerateFn: func(context.Context, string) (string, error) {
		return raw, nil
	}}
}

func failing(name string, err error) *MockAdapter {
	return &MockAdapter{name: name, GenerateFn: func(context.Context, string) (string, error) {
		return "", err
	}}
}

// MockClassifier returns a fixed decision.
type MockClassifier struct {
	IsTechRelatedFn func(ctx context.Context, topic string) bool
}

func (m MockClassifier) IsTechRelated(ctx context.Context, topic string) bool {
	return m.IsTechRelatedFn(ctx, topic)
}

func allowAll() MockClassifier {
	return MockClassifier{IsTechRelatedFn: func(context.Context, string) bool { return true }}
}

func newOrchestrator(t *testing.T, c Classifier, adapters []Adapter, opts ...Option) *Orchestrator {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	o, err := New(c, adapters, opts...)
	require.NoError(t, err)
	return o
}

func TestGenerateDockerFromFirstProvider(t *testing.T) {
	local := returning("local_model", dockerFenced)
	hosted := returning("gemini", "unused")
	o := newOrchestrator(t, allowAll(), []Adapter{local, hosted})

	res := o.Generate(context.Background(), "Docker")

	require.True(t, res.Success(), res.Err)
	assert.Equal(t, "local_model", res.Source)
	assert.Equal(t, &roadmap.Canonical{
		Title: "Docker",
		Subtopics: []roadmap.Subtopic{
			{Title: "Basics", Children: []roadmap.Item{{Title: "Build"}, {Title: "Tag"}}},
		},
	}, res.Roadmap)
	assert.Zero(t, hosted.calls.Load())

	body, err := json.Marshal(res.Response())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": true,
		"format": "json",
		"source": "local_model",
		"roadmap": {"title": "Docker", "subtopics": [{"title": "Basics", "children": [{"title": "Build"}, {"title": "Tag"}]}]}
	}`, string(body))
}

func TestGenerateOffTopicSkipsProviders(t *testing.T) {
	adapter := returning("local_model", dockerFenced)
	reject := MockClassifier{IsTechRelatedFn: func(context.Context, string) bool { return false }}
	o := newOrchestrator(t, reject, []Adapter{adapter})

	res := o.Generate(context.Background(), "my grandmother's soup recipe")

	assert.False(t, res.Success())
	assert.Equal(t, OutcomeOffTopic, res.Outcome)
	assert.Equal(t, ReasonOffTopic, res.Reason)
	assert.ErrorIs(t, res.Err, ErrOffTopic)
	assert.Zero(t, adapter.calls.Load())

	body, err := json.Marshal(res.Response())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": false, "error": "`+ReasonOffTopic+`"}`, string(body))
}

func TestGenerateBlankTopic(t *testing.T) {
	adapter := returning("local_model", dockerFenced)
	o := newOrchestrator(t, allowAll(), []Adapter{adapter})

	res := o.Generate(context.Background(), "   ")

	assert.Equal(t, OutcomeInvalidTopic, res.Outcome)
	assert.Equal(t, ReasonEmptyTopic, res.Reason)
	assert.Zero(t, adapter.calls.Load())
}

func TestGenerateFallsBackOnMalformedOutput(t *testing.T) {
	first := returning("local_model", "Roadmap: learn containers, then orchestration.")
	second := returning("gemini", dockerFenced)
	o := newOrchestrator(t, allowAll(), []Adapter{first, second})

	res := o.Generate(context.Background(), "Docker")

	require.True(t, res.Success())
	assert.Equal(t, "gemini", res.Source)
	require.Len(t, res.Attempts, 1)

	var nerr *roadmap.NormalizationError
	require.ErrorAs(t, res.Attempts[0].Err, &nerr)
	assert.Equal(t, roadmap.KindMalformedOutput, nerr.Kind)
}

func TestGenerateFallsBackOnSchemaMismatchAndIncompleteTree(t *testing.T) {
	mismatch := returning("local_model", `{"title": "Docker", "steps": []}`)
	unnamed := returning("deepseek", `{"name": "", "children": []}`)
	good := returning("gemini", dockerFenced)
	o := newOrchestrator(t, allowAll(), []Adapter{mismatch, unnamed, good})

	res := o.Generate(context.Background(), "Docker")

	require.True(t, res.Success())
	assert.Equal(t, "gemini", res.Source)
	require.Len(t, res.Attempts, 2)
	assert.ErrorIs(t, res.Attempts[1].Err, roadmap.ErrIncompleteTree)
}

func TestGenerateExhausted(t *testing.T) {
	down := errors.New("connection refused")
	o := newOrchestrator(t, allowAll(), []Adapter{
		failing("local_model", down),
		returning("gemini", "not json"),
	})

	res := o.Generate(context.Background(), "Docker")

	assert.False(t, res.Success())
	assert.Equal(t, OutcomeExhausted, res.Outcome)
	assert.Equal(t, ReasonExhausted, res.Reason)
	require.Len(t, res.Attempts, 2)

	var exhausted *ExhaustedError
	require.ErrorAs(t, res.Err, &exhausted)
	assert.ErrorIs(t, res.Err, down)

	var perr *ProviderError
	require.ErrorAs(t, res.Attempts[0].Err, &perr)
	assert.Equal(t, KindUnavailable, perr.Kind)
	assert.Equal(t, "local_model", perr.Provider)
}

func TestGenerateTimeoutTriggersFallback(t *testing.T) {
	slow := &MockAdapter{name: "local_model", GenerateFn: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	fast := returning("gemini", dockerFenced)
	o := newOrchestrator(t, allowAll(), []Adapter{slow, fast}, WithProviderTimeout(20*time.Millisecond))

	res := o.Generate(context.Background(), "Docker")

	require.True(t, res.Success())
	assert.Equal(t, "gemini", res.Source)

	var perr *ProviderError
	require.ErrorAs(t, res.Attempts[0].Err, &perr)
	assert.Equal(t, KindTimeout, perr.Kind)
}

func TestGenerateEmptyOutputIsProviderError(t *testing.T) {
	o := newOrchestrator(t, allowAll(), []Adapter{
		returning("local_model", "  \n "),
		returning("gemini", dockerFenced),
	})

	res := o.Generate(context.Background(), "Docker")

	require.True(t, res.Success())
	var perr *ProviderError
	require.ErrorAs(t, res.Attempts[0].Err, &perr)
	assert.Equal(t, KindEmptyOutput, perr.Kind)
}

func TestGenerateRecoversAdapterPanic(t *testing.T) {
	boom := &MockAdapter{name: "local_model", GenerateFn: func(context.Context, string) (string, error) {
		panic("tensor shape mismatch")
	}}
	o := newOrchestrator(t, allowAll(), []Adapter{boom, returning("gemini", dockerFenced)})

	res := o.Generate(context.Background(), "Docker")

	require.True(t, res.Success())
	var perr *ProviderError
	require.ErrorAs(t, res.Attempts[0].Err, &perr)
	assert.Equal(t, KindPanic, perr.Kind)
}

// brokenTransformer panics on roots named "Broken" and flattens the rest.
type brokenTransformer struct{}

func (brokenTransformer) Transform(root roadmap.Node) (*roadmap.Canonical, error) {
	if root.Name == "Broken" {
		panic("index out of range")
	}
	return roadmap.FlatTransformer{}.Transform(root)
}

func TestGenerateRecoversTransformerPanic(t *testing.T) {
	broken := returning("local_model", `{"name":"Broken","children":[{"name":"Basics"}]}`)
	good := returning("gemini", dockerFenced)
	o := newOrchestrator(t, allowAll(), []Adapter{broken, good}, WithTransformer(brokenTransformer{}))

	res := o.Generate(context.Background(), "Docker")

	require.True(t, res.Success())
	assert.Equal(t, "gemini", res.Source)
	assert.Equal(t, int32(1), good.calls.Load())
	require.Len(t, res.Attempts, 1)
	assert.ErrorIs(t, res.Attempts[0].Err, ErrValidationPanic)
	assert.Equal(t, "validation_panic", attemptOutcome(res.Attempts[0].Err))
}

func TestGenerateFallsBackAfterNonASCIIPreamble(t *testing.T) {
	first := returning("local_model", strings.Repeat("Ⱥ", 8)+"```json")
	second := returning("gemini", "İİ yol haritası:\n```json\n"+`{"name":"Docker","children":[{"name":"Basics"}]}`+"\n```")
	o := newOrchestrator(t, allowAll(), []Adapter{first, second})

	res := o.Generate(context.Background(), "Docker")

	require.True(t, res.Success())
	assert.Equal(t, "gemini", res.Source)
	assert.Equal(t, int32(1), second.calls.Load())
	var nerr *roadmap.NormalizationError
	require.ErrorAs(t, res.Attempts[0].Err, &nerr)
	assert.Equal(t, roadmap.KindMalformedOutput, nerr.Kind)
}

func TestGenerateRecoversClassifierPanic(t *testing.T) {
	c := MockClassifier{IsTechRelatedFn: func(context.Context, string) bool { panic("nil map") }}
	o := newOrchestrator(t, c, []Adapter{returning("gemini", dockerFenced)})

	var res Result
	assert.NotPanics(t, func() { res = o.Generate(context.Background(), "Docker") })
	assert.False(t, res.Success())
	assert.Equal(t, ReasonExhausted, res.Reason)
}

func TestGenerateStopsWhenRequestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	first := &MockAdapter{name: "local_model", GenerateFn: func(context.Context, string) (string, error) {
		cancel()
		return "garbage", nil
	}}
	second := returning("gemini", dockerFenced)
	o := newOrchestrator(t, allowAll(), []Adapter{first, second})

	res := o.Generate(ctx, "Docker")

	assert.Equal(t, OutcomeExhausted, res.Outcome)
	assert.Zero(t, second.calls.Load())
}

func TestEachRequestRestartsAtFirstProvider(t *testing.T) {
	var n atomic.Int32
	flaky := &MockAdapter{name: "local_model", GenerateFn: func(context.Context, string) (string, error) {
		if n.Add(1) == 1 {
			return "", errors.New("cold start")
		}
		return dockerFenced, nil
	}}
	hosted := returning("gemini", dockerFenced)
	o := newOrchestrator(t, allowAll(), []Adapter{flaky, hosted})

	first := o.Generate(context.Background(), "Docker")
	second := o.Generate(context.Background(), "Docker")

	assert.Equal(t, "gemini", first.Source)
	assert.Equal(t, "local_model", second.Source)
	assert.Equal(t, int32(2), flaky.calls.Load())
}

func TestNestedTransformerOption(t *testing.T) {
	o := newOrchestrator(t, allowAll(), []Adapter{returning("gemini", dockerFenced)},
		WithTransformer(roadmap.NestedTransformer{}))

	res := o.Generate(context.Background(), "Docker")

	require.True(t, res.Success())
	assert.Equal(t, "Images", res.Roadmap.Subtopics[0].Children[0].Title)
}

func TestGenerateTrimsTopicForAdapters(t *testing.T) {
	var seen string
	a := &MockAdapter{name: "gemini", GenerateFn: func(_ context.Context, topic string) (string, error) {
		seen = topic
		return dockerFenced, nil
	}}
	o := newOrchestrator(t, allowAll(), []Adapter{a})

	o.Generate(context.Background(), "  Docker \n")
	assert.Equal(t, "Docker", seen)
}

func TestNewRequiresAdapters(t *testing.T) {
	_, err := New(allowAll(), nil)
	assert.ErrorIs(t, err, ErrNoProviders)

	o, err := New(allowAll(), []Adapter{returning("a", ""), returning("b", "")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, o.Providers())
}
