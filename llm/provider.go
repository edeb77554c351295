// Package llm provides generative model provider abstractions.
//
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific handling of structured (JSON) output requests

package llm

import (
	"context"
)

// Provider is a text-in, text-out generative model.
// Implementations are created once at startup and are safe for
// concurrent use by many requests.
type Provider interface {
	// Name returns the provider name (for logging and source tags).
	Name() string

	// Model returns the current model being used.
	Model() string

	// Chat sends a chat completion request.
	Chat(ctx context.Context, messages []ChatMessage) (LLMResponse, error)

	// ChatWithFormat sends a chat completion request asking for a
	// particular response format. Providers without native support
	// ignore the format.
	ChatWithFormat(ctx context.Context, messages []ChatMessage, format *ResponseFormat) (LLMResponse, error)
}

// Warmer is implemented by providers that hold a loaded model which
// should be brought up before the first request.
type Warmer interface {
	Warmup(ctx context.Context) error
}
