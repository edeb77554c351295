// Ollama Provider implementation for the locally served fine-tuned model.
//
// Information Hiding:
// - HTTP endpoint of the local inference server
// - /api/chat request/response format
// - One-time model load (warmup) before first use

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// DefaultOllamaURL is where a local Ollama server listens by default.
const DefaultOllamaURL = "http://127.0.0.1:11434"

// ollamaKeepAlive keeps the model resident between requests.
const ollamaKeepAlive = "30m"

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model     string          `json:"model"`
	Messages  []ollamaMessage `json:"messages"`
	Stream    bool            `json:"stream"`
	Format    string          `json:"format,omitempty"`
	KeepAlive string          `json:"keep_alive,omitempty"`
	Options   map[string]any  `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Model           string        `json:"model"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	PromptEvalCount uint32        `json:"prompt_eval_count"`
	EvalCount       uint32        `json:"eval_count"`
}

type ollamaGenerateRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	Stream    bool   `json:"stream"`
	KeepAlive string `json:"keep_alive,omitempty"`
}

// OllamaProvider implements the Provider interface against an Ollama server.
type OllamaProvider struct {
	baseURL     string
	httpClient  *http.Client
	model       string
	maxTokens   uint32
	temperature float32

	warmOnce sync.Once
	warmErr  error
}

// NewOllamaProvider creates a provider for a model served by Ollama.
func NewOllamaProvider(baseURL, model string, maxTokens uint32, temperature float32) (*OllamaProvider, error) {
	if model == "" {
		return nil, fmt.Errorf("%w: ollama model name is empty", ErrInvalidConfig)
	}
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}

	return &OllamaProvider{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{},
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Model returns the current model.
func (p *OllamaProvider) Model() string {
	return p.model
}

// Warmup asks the server to load the model. It runs at most once; later
// calls return the first result.
func (p *OllamaProvider) Warmup(ctx context.Context) error {
	p.warmOnce.Do(func() {
		body := ollamaGenerateRequest{
			Model:     p.model,
			Stream:    false,
			KeepAlive: ollamaKeepAlive,
		}
		if _, err := p.post(ctx, "/api/generate", body); err != nil {
			p.warmErr = fmt.Errorf("failed to load local model %s: %w", p.model, err)
		}
	})
	return p.warmErr
}

// Chat sends a chat completion request.
func (p *OllamaProvider) Chat(ctx context.Context, messages []ChatMessage) (LLMResponse, error) {
	return p.ChatWithFormat(ctx, messages, nil)
}

// ChatWithFormat sends a chat completion request with optional response format.
func (p *OllamaProvider) ChatWithFormat(ctx context.Context, messages []ChatMessage, format *ResponseFormat) (LLMResponse, error) {
	req := ollamaChatRequest{
		Model:     p.model,
		Messages:  make([]ollamaMessage, len(messages)),
		Stream:    false,
		KeepAlive: ollamaKeepAlive,
		Options: map[string]any{
			"temperature": p.temperature,
			"num_predict": p.maxTokens,
		},
	}
	for i, msg := range messages {
		req.Messages[i] = ollamaMessage{Role: msg.Role, Content: msg.Content}
	}
	if wantsJSON(format) {
		req.Format = "json"
	}

	raw, err := p.post(ctx, "/api/chat", req)
	if err != nil {
		return LLMResponse{}, fmt.Errorf("chat completion failed: %w", err)
	}

	var resp ollamaChatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return LLMResponse{}, fmt.Errorf("failed to decode ollama response: %w", err)
	}

	usage := &TokenUsage{
		PromptTokens:     resp.PromptEvalCount,
		CompletionTokens: resp.EvalCount,
		TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
	}

	return LLMResponse{Content: resp.Message.Content, Usage: usage}, nil
}

func (p *OllamaProvider) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var (
	_ Provider = (*OllamaProvider)(nil)
	_ Warmer   = (*OllamaProvider)(nil)
)
