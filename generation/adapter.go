package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/richinex/waypoint/llm"
	"github.com/richinex/waypoint/roadmap"
)

// Adapter generates raw roadmap text for a topic. Name is the source tag
// reported with a successful result.
//
// Generate must return once ctx is done. The orchestrator enforces the
// per-provider timeout only through ctx, so an adapter that ignores it
// holds the request until it returns on its own.
type Adapter interface {
	Name() string
	Generate(ctx context.Context, topic string) (string, error)
}

// ProviderAdapter sends the roadmap prompt to an llm.Provider.
type ProviderAdapter struct {
	provider llm.Provider
	source   string
}

// NewProviderAdapter wraps provider. An empty source uses the provider name.
func NewProviderAdapter(provider llm.Provider, source string) *ProviderAdapter {
	if source == "" {
		source = provider.Name()
	}
	return &ProviderAdapter{provider: provider, source: source}
}

// Name returns the source tag.
func (a *ProviderAdapter) Name() string {
	return a.source
}

// Provider returns the wrapped provider.
func (a *ProviderAdapter) Provider() llm.Provider {
	return a.provider
}

// Generate returns the provider's raw text. Failures are *ProviderError.
func (a *ProviderAdapter) Generate(ctx context.Context, topic string) (string, error) {
	prompt, err := roadmap.Prompt(topic)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	resp, err := a.provider.ChatWithFormat(ctx, []llm.ChatMessage{llm.UserMessage(prompt)}, llm.NewJSONObjectFormat())
	if err != nil {
		return "", &ProviderError{Provider: a.source, Kind: classify(ctx, err), Err: err}
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", &ProviderError{Provider: a.source, Kind: KindEmptyOutput}
	}
	return resp.Content, nil
}

func classify(ctx context.Context, err error) ProviderErrorKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, llm.ErrEmptyResponse):
		return KindEmptyOutput
	default:
		return KindUnavailable
	}
}

var _ Adapter = (*ProviderAdapter)(nil)
