// Package app assembles the generation pipeline and its collaborators from
// Settings. Every transport (HTTP, MCP, CLI) shares one App.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/richinex/waypoint/classifier"
	"github.com/richinex/waypoint/config"
	"github.com/richinex/waypoint/generation"
	"github.com/richinex/waypoint/internal/logger"
	"github.com/richinex/waypoint/llm"
	"github.com/richinex/waypoint/resources"
	"github.com/richinex/waypoint/roadmap"
)

// SourceLocalModel tags roadmaps produced by the locally served model.
const SourceLocalModel = "local_model"

// App holds the long-lived components. It is read-only after New.
type App struct {
	Settings   *config.Settings
	Logger     *zap.Logger
	Classifier *classifier.Classifier
	Generator  *generation.Orchestrator
	Resources  resources.Fetcher
	Explainer  *resources.Explainer
}

// New builds every provider named in settings. Construction errors are
// returned unchanged so callers can fail before serving.
func New(ctx context.Context, s *config.Settings, l *zap.Logger) (*App, error) {
	l = logger.OrNop(l)
	b := &builder{ctx: ctx, settings: s, built: make(map[llm.ProviderType]llm.Provider)}

	var first llm.Provider
	adapters := make([]generation.Adapter, 0, len(s.Generation.Providers))
	for _, name := range s.Generation.Providers {
		pt, p, err := b.provider(name)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = p
		}
		adapters = append(adapters, generation.NewProviderAdapter(p, SourceTag(pt)))
	}

	// Explanations use the verifier when one is configured, otherwise the
	// first provider in the chain.
	explainWith := first
	classifierOpts := []classifier.Option{classifier.WithLogger(l.Named("classifier"))}
	if s.Generation.Verifier != "" {
		_, p, err := b.provider(s.Generation.Verifier)
		if err != nil {
			return nil, err
		}
		classifierOpts = append(classifierOpts,
			classifier.WithVerifier(classifier.NewLLMVerifier(p, s.Generation.ProviderTimeout)))
		explainWith = p
	}
	cls := classifier.New(classifierOpts...)

	gen, err := generation.New(cls, adapters,
		generation.WithProviderTimeout(s.Generation.ProviderTimeout),
		generation.WithTransformer(roadmap.TransformerFor(s.Generation.Transform)),
		generation.WithLogger(l.Named("generation")),
	)
	if err != nil {
		return nil, err
	}

	fetcher, err := newFetcher(ctx, s, l.Named("resources"))
	if err != nil {
		return nil, err
	}

	return &App{
		Settings:   s,
		Logger:     l,
		Classifier: cls,
		Generator:  gen,
		Resources:  fetcher,
		Explainer:  resources.NewExplainer(explainWith, s.Generation.ProviderTimeout, l.Named("explainer")),
	}, nil
}

// Warmup loads local models. It is safe to call more than once.
func (a *App) Warmup(ctx context.Context) error {
	return a.Generator.Warmup(ctx)
}

// SourceTag is the source reported for roadmaps from provider type pt.
func SourceTag(pt llm.ProviderType) string {
	if pt.Local() {
		return SourceLocalModel
	}
	return pt.String()
}

// builder constructs each provider type once so the chain and the
// verifier share a client when they name the same provider.
type builder struct {
	ctx      context.Context
	settings *config.Settings
	built    map[llm.ProviderType]llm.Provider
}

func (b *builder) provider(name string) (llm.ProviderType, llm.Provider, error) {
	pt, cfg, err := b.settings.Provider(name)
	if err != nil {
		return 0, nil, err
	}
	if p, ok := b.built[pt]; ok {
		return pt, p, nil
	}

	pb := pt.Builder().
		Model(cfg.Model).
		MaxTokens(b.settings.LLM.MaxTokens).
		Temperature(float32(b.settings.LLM.Temperature))
	if cfg.BaseURL != "" {
		pb = pb.BaseURL(cfg.BaseURL)
	}
	p, err := pb.Build(b.ctx, cfg.APIKey)
	if err != nil {
		return 0, nil, fmt.Errorf("create %s provider: %w", pt, err)
	}
	b.built[pt] = p
	return pt, p, nil
}

func newFetcher(ctx context.Context, s *config.Settings, l *zap.Logger) (resources.Fetcher, error) {
	switch resources.ParseVariant(s.Resources.Variant) {
	case resources.VariantSummary:
		wiki := resources.NewWikipediaClient(s.Resources.WikipediaURL, s.Resources.Timeout)
		return resources.NewSummaryFetcher(wiki, l), nil
	default:
		var videos resources.VideoSearcher
		if s.Resources.YouTubeAPIKey != "" {
			yt, err := resources.NewYouTubeSearcher(ctx, s.Resources.YouTubeAPIKey)
			if err != nil {
				return nil, err
			}
			videos = yt
		} else {
			l.Info("YOUTUBE_API_KEY not set, video search disabled")
		}
		return resources.NewLibraryFetcher(videos, l), nil
	}
}
