// DeepSeek Provider implementation using go-openai library.
//
// Information Hiding:
// - Uses OpenAI-compatible API with different base URL
// - Supports deepseek-chat and deepseek-reasoner models

package llm

const deepseekBaseURL = "https://api.deepseek.com/v1"

// DeepSeekProvider implements the Provider interface for DeepSeek.
type DeepSeekProvider struct {
	chatCompletions
}

// NewDeepSeekProvider creates a new DeepSeek provider. An empty baseURL
// uses the public DeepSeek endpoint. deepseek-reasoner rejects
// json_object, so JSON requests to it are sent as plain text.
func NewDeepSeekProvider(apiKey, baseURL, model string, maxTokens uint32, temperature float32) (*DeepSeekProvider, error) {
	if baseURL == "" {
		baseURL = deepseekBaseURL
	}
	cc, err := newChatCompletions("deepseek", apiKey, baseURL, model, maxTokens, temperature)
	if err != nil {
		return nil, err
	}
	cc.legacyMaxTokens = true
	cc.noJSONMode = model == ModelDeepSeekReasoner
	return &DeepSeekProvider{chatCompletions: cc}, nil
}

// Verify DeepSeekProvider implements Provider
var _ Provider = (*DeepSeekProvider)(nil)
