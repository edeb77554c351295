package llm

import "errors"

var (
	// ErrMissingAPIKey is returned when a hosted provider is built without credentials.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidConfig is returned when provider settings cannot produce a client.
	ErrInvalidConfig = errors.New("invalid provider configuration")

	// ErrEmptyResponse is returned when a provider answers with no text.
	ErrEmptyResponse = errors.New("empty response")
)
