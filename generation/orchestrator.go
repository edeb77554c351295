// Package generation runs a topic through the domain check and an ordered
// chain of providers until one yields a valid roadmap.
//
// Each run moves forward only:
//
//	Classify -> TryProvider(1) -> Validate(1) -> Accept(1)
//	                 |                 |
//	                 +---- fail -------+--> TryProvider(2) -> ...
//
// Provider order is fixed at construction. Every request starts again at
// the first provider.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/richinex/waypoint/internal/logger"
	"github.com/richinex/waypoint/internal/metrics"
	"github.com/richinex/waypoint/llm"
	"github.com/richinex/waypoint/roadmap"
)

// DefaultProviderTimeout bounds a single provider call.
const DefaultProviderTimeout = 60 * time.Second

// Classifier decides whether a topic may be generated.
type Classifier interface {
	IsTechRelated(ctx context.Context, topic string) bool
}

// Orchestrator is built once and shared by all requests.
type Orchestrator struct {
	classifier  Classifier
	adapters    []Adapter
	transformer roadmap.Transformer
	bounds      roadmap.Bounds
	timeout     time.Duration
	logger      *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithProviderTimeout sets the per-provider deadline.
func WithProviderTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithTransformer replaces the flat canonical transformer.
func WithTransformer(t roadmap.Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformer = t
		}
	}
}

// WithBounds overrides the width limits.
func WithBounds(b roadmap.Bounds) Option {
	return func(o *Orchestrator) { o.bounds = b }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger.OrNop(l) }
}

// New builds an orchestrator trying adapters in the given order.
func New(classifier Classifier, adapters []Adapter, opts ...Option) (*Orchestrator, error) {
	if classifier == nil {
		return nil, errors.New("generation: classifier is required")
	}
	if len(adapters) == 0 {
		return nil, ErrNoProviders
	}

	o := &Orchestrator{
		classifier:  classifier,
		adapters:    append([]Adapter(nil), adapters...),
		transformer: roadmap.FlatTransformer{},
		bounds:      roadmap.DefaultBounds,
		timeout:     DefaultProviderTimeout,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Providers returns the source tags in priority order.
func (o *Orchestrator) Providers() []string {
	names := make([]string, len(o.adapters))
	for i, a := range o.adapters {
		names[i] = a.Name()
	}
	return names
}

// Warmup brings up every adapter holding a loadable model. The first
// failure is returned.
func (o *Orchestrator) Warmup(ctx context.Context) error {
	for _, a := range o.adapters {
		w, ok := warmerOf(a)
		if !ok {
			continue
		}
		if err := w.Warmup(ctx); err != nil {
			return fmt.Errorf("warmup %s: %w", a.Name(), err)
		}
		o.logger.Info("provider ready", zap.String("provider", a.Name()))
	}
	return nil
}

// warmerOf finds the model loader behind a, looking through ProviderAdapter
// to the provider it wraps.
func warmerOf(a Adapter) (llm.Warmer, bool) {
	if pa, ok := a.(*ProviderAdapter); ok {
		w, ok := pa.Provider().(llm.Warmer)
		return w, ok
	}
	w, ok := a.(llm.Warmer)
	return w, ok
}

// Generate runs the pipeline for topic. It never panics and never returns
// an error; failures are reported in the Result.
func (o *Orchestrator) Generate(ctx context.Context, topic string) (res Result) {
	start := time.Now()
	log := o.logger.With(zap.String("run_id", uuid.NewString()), zap.String("topic", topic))

	defer func() {
		if r := recover(); r != nil {
			log.Error("generation panicked", zap.Any("panic", r))
			res = failure(OutcomeExhausted, ReasonExhausted, fmt.Errorf("generation panicked: %v", r), res.Attempts)
		}
		metrics.RecordGeneration(string(res.Outcome), res.Source, time.Since(start))
	}()

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return failure(OutcomeInvalidTopic, ReasonEmptyTopic, ErrEmptyTopic, nil)
	}

	if !o.classifier.IsTechRelated(ctx, topic) {
		log.Info("topic rejected by classifier")
		return failure(OutcomeOffTopic, ReasonOffTopic, ErrOffTopic, nil)
	}

	var attempts []Attempt
	for i, adapter := range o.adapters {
		if err := ctx.Err(); err != nil {
			log.Warn("request cancelled, skipping remaining providers", zap.Error(err))
			break
		}

		alog := log.With(zap.String("provider", adapter.Name()), zap.Int("attempt", i+1))
		canon, err := o.attempt(ctx, adapter, topic)
		if err != nil {
			metrics.RecordAttempt(adapter.Name(), attemptOutcome(err))
			alog.Warn("provider attempt failed", zap.String("reason", attemptOutcome(err)), zap.Error(err))
			attempts = append(attempts, Attempt{Provider: adapter.Name(), Err: err})
			continue
		}

		metrics.RecordAttempt(adapter.Name(), "accepted")
		alog.Info("roadmap accepted", zap.Int("main_topics", len(canon.Subtopics)))
		return success(canon, adapter.Name(), attempts)
	}

	log.Error("all providers exhausted", zap.Int("attempts", len(attempts)))
	return failure(OutcomeExhausted, ReasonExhausted, &ExhaustedError{Attempts: attempts}, attempts)
}

// attempt runs TryProvider and Validate for one adapter. A panic in either
// stage fails this attempt only.
func (o *Orchestrator) attempt(ctx context.Context, adapter Adapter, topic string) (canon *roadmap.Canonical, err error) {
	defer func() {
		if r := recover(); r != nil {
			canon, err = nil, fmt.Errorf("%s: %w: %v", adapter.Name(), ErrValidationPanic, r)
		}
	}()

	raw, err := o.invoke(ctx, adapter, topic)
	if err != nil {
		return nil, err
	}

	tree, err := roadmap.NormalizeWithBounds(raw, o.bounds)
	if err != nil {
		return nil, err
	}

	canon, err = o.transformer.Transform(tree)
	if err != nil {
		return nil, err
	}
	if canon == nil {
		return nil, roadmap.ErrIncompleteTree
	}
	return canon, nil
}

// invoke calls the adapter under the per-provider deadline. A panic in
// the adapter becomes a ProviderError.
func (o *Orchestrator) invoke(ctx context.Context, adapter Adapter, topic string) (raw string, err error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = &ProviderError{Provider: adapter.Name(), Kind: KindPanic, Err: fmt.Errorf("%v", r)}
		}
	}()

	raw, err = adapter.Generate(ctx, topic)
	if err != nil {
		var perr *ProviderError
		if errors.As(err, &perr) {
			return "", err
		}
		return "", &ProviderError{Provider: adapter.Name(), Kind: classify(ctx, err), Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return "", &ProviderError{Provider: adapter.Name(), Kind: KindEmptyOutput}
	}
	return raw, nil
}

func attemptOutcome(err error) string {
	var (
		perr *ProviderError
		nerr *roadmap.NormalizationError
	)
	switch {
	case errors.As(err, &perr):
		return "provider_" + string(perr.Kind)
	case errors.As(err, &nerr):
		return string(nerr.Kind)
	case errors.Is(err, roadmap.ErrIncompleteTree):
		return "transform_failed"
	case errors.Is(err, ErrValidationPanic):
		return "validation_panic"
	default:
		return "error"
	}
}
