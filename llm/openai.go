// OpenAI Provider implementation using go-openai library.
//
// Information Hiding:
// - API endpoint and authentication
// - Request/response format for OpenAI Chat Completions API
// - JSON mode via response_format

package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// chatCompletions talks to any OpenAI-compatible endpoint. OpenAI and
// DeepSeek differ only in base URL, token field and JSON support.
type chatCompletions struct {
	name        string
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32

	// legacyMaxTokens sends max_tokens instead of max_completion_tokens.
	legacyMaxTokens bool
	// noJSONMode drops response_format for models that reject it.
	noJSONMode bool
}

func newChatCompletions(name, apiKey, baseURL, model string, maxTokens uint32, temperature float32) (chatCompletions, error) {
	if apiKey == "" {
		return chatCompletions{}, fmt.Errorf("%w: %s", ErrMissingAPIKey, name)
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return chatCompletions{
		name:        name,
		client:      openai.NewClientWithConfig(config),
		model:       model,
		maxTokens:   int(maxTokens),
		temperature: temperature,
	}, nil
}

// Name returns the provider name.
func (c *chatCompletions) Name() string {
	return c.name
}

// Model returns the current model.
func (c *chatCompletions) Model() string {
	return c.model
}

// Chat sends a chat completion request.
func (c *chatCompletions) Chat(ctx context.Context, messages []ChatMessage) (LLMResponse, error) {
	return c.ChatWithFormat(ctx, messages, nil)
}

// ChatWithFormat sends a chat completion request with optional response format.
func (c *chatCompletions) ChatWithFormat(ctx context.Context, messages []ChatMessage, format *ResponseFormat) (LLMResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    make([]openai.ChatCompletionMessage, len(messages)),
		Temperature: c.temperature,
	}
	for i, m := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	if c.legacyMaxTokens {
		req.MaxTokens = c.maxTokens
	} else {
		req.MaxCompletionTokens = c.maxTokens
	}
	if format != nil && !c.noJSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatType(format.Type),
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return LLMResponse{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		reason := "no choices"
		if len(resp.Choices) > 0 {
			reason = string(resp.Choices[0].FinishReason)
		}
		return LLMResponse{}, fmt.Errorf("%w from %s (finish reason %q)", ErrEmptyResponse, c.name, reason)
	}

	return LLMResponse{
		Content: resp.Choices[0].Message.Content,
		Usage:   newUsage(int64(resp.Usage.PromptTokens), int64(resp.Usage.CompletionTokens)),
	}, nil
}

// OpenAIProvider implements the Provider interface for OpenAI.
type OpenAIProvider struct {
	chatCompletions
}

// NewOpenAIProvider creates a new OpenAI provider. An empty baseURL uses
// the public OpenAI endpoint.
func NewOpenAIProvider(apiKey, baseURL, model string, maxTokens uint32, temperature float32) (*OpenAIProvider, error) {
	cc, err := newChatCompletions("openai", apiKey, baseURL, model, maxTokens, temperature)
	if err != nil {
		return nil, err
	}
	return &OpenAIProvider{chatCompletions: cc}, nil
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
