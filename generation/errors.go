package generation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTopic is returned for blank input.
	ErrEmptyTopic = errors.New("no prompt provided")

	// ErrOffTopic is returned when the classifier rejects the topic.
	ErrOffTopic = errors.New("topic is not technology related")

	// ErrNoProviders is returned when an orchestrator is built without adapters.
	ErrNoProviders = errors.New("no providers configured")

	// ErrValidationPanic wraps a panic raised while normalizing or
	// transforming one provider's output.
	ErrValidationPanic = errors.New("validation panicked")
)

// ProviderErrorKind classifies a failed provider call.
type ProviderErrorKind string

const (
	KindUnavailable ProviderErrorKind = "unavailable"
	KindEmptyOutput ProviderErrorKind = "empty_output"
	KindTimeout     ProviderErrorKind = "timeout"
	KindPanic       ProviderErrorKind = "panic"
)

// ProviderError reports that a provider produced no usable text.
type ProviderError struct {
	Provider string
	Kind     ProviderErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider %s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ExhaustedError is returned when every provider failed.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return "all providers exhausted"
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.Err.Error()
	}
	return "all providers exhausted: " + strings.Join(parts, "; ")
}

// Unwrap exposes each attempt's error to errors.Is and errors.As.
func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a.Err
	}
	return errs
}
