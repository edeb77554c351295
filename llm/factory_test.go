package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviderType(t *testing.T) {
	tests := []struct {
		in      string
		want    ProviderType
		wantErr bool
	}{
		{"openai", ProviderOpenAI, false},
		{"GPT", ProviderOpenAI, false},
		{"claude", ProviderAnthropic, false},
		{"deepseek", ProviderDeepSeek, false},
		{" google ", ProviderGemini, false},
		{"local", ProviderOllama, false},
		{"ollama", ProviderOllama, false},
		{"mistral", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProviderType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProviderTypeMetadata(t *testing.T) {
	assert.Equal(t, "GEMINI_API_KEY", ProviderGemini.EnvVar())
	assert.Equal(t, "GEMINI_MODEL", ProviderGemini.ModelEnvVar())
	assert.Empty(t, ProviderOllama.EnvVar())
	assert.True(t, ProviderOllama.Local())
	assert.False(t, ProviderGemini.Local())
	assert.Equal(t, ModelOllamaRoadmap, ProviderOllama.DefaultModel())
}

func TestBuilderDefaults(t *testing.T) {
	p, err := ProviderOllama.Builder().Build(context.Background(), "")
	require.NoError(t, err)

	local, ok := p.(*OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "ollama", local.Name())
	assert.Equal(t, ModelOllamaRoadmap, local.Model())
	assert.Equal(t, uint32(4096), local.maxTokens)
	assert.InDelta(t, 0.7, local.temperature, 1e-6)
	assert.Equal(t, DefaultOllamaURL, local.baseURL)
}

func TestBuilderOverrides(t *testing.T) {
	p, err := ProviderOpenAI.Builder().
		Model(ModelOpenAIGPT4o).
		MaxTokens(512).
		Temperature(0.1).
		Build(context.Background(), "sk-test")
	require.NoError(t, err)

	assert.Equal(t, ModelOpenAIGPT4o, p.Model())
	assert.Equal(t, "openai", p.Name())
}
