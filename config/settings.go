// Package config provides application settings loaded from environment
// variables and an optional config file.
//
// Settings are created via Load() which handles:
// - Default value application
// - Environment variable binding (env wins over file)
// - Struct validation and provider chain checks

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/richinex/waypoint/llm"
)

// Settings holds all application configuration.
type Settings struct {
	Server     ServerConfig              `mapstructure:"server" validate:"required"`
	Log        LogConfig                 `mapstructure:"log" validate:"required"`
	Generation GenerationConfig          `mapstructure:"generation" validate:"required"`
	LLM        LLMConfig                 `mapstructure:"llm" validate:"required"`
	Resources  ResourcesConfig           `mapstructure:"resources" validate:"required"`
	Providers  map[string]ProviderConfig `mapstructure:"providers"`
}

// ServerConfig holds HTTP transport settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" validate:"dive,required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json console"`
}

// GenerationConfig holds the provider chain and pipeline options.
type GenerationConfig struct {
	Providers       []string      `mapstructure:"providers" validate:"min=1,dive,required"`
	Verifier        string        `mapstructure:"verifier"`
	ProviderTimeout time.Duration `mapstructure:"provider_timeout" validate:"gt=0"`
	Transform       string        `mapstructure:"transform" validate:"required,oneof=flat nested"`
}

// LLMConfig holds sampling settings shared by all providers.
type LLMConfig struct {
	MaxTokens   uint32  `mapstructure:"max_tokens" validate:"gt=0"`
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

// ResourcesConfig holds enrichment settings.
type ResourcesConfig struct {
	Variant       string        `mapstructure:"variant" validate:"required,oneof=library summary"`
	YouTubeAPIKey string        `mapstructure:"youtube_api_key"`
	WikipediaURL  string        `mapstructure:"wikipedia_url" validate:"required,url"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// ProviderConfig holds one provider's credentials and model.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// supportedProviders lists every provider with a settings block.
var supportedProviders = []llm.ProviderType{
	llm.ProviderOpenAI,
	llm.ProviderAnthropic,
	llm.ProviderDeepSeek,
	llm.ProviderGemini,
	llm.ProviderOllama,
}

// ErrMissingCredentials is returned when a hosted provider in use has no API key.
var ErrMissingCredentials = errors.New("missing provider credentials")

var validate = validator.New()

// Options controls where settings come from.
type Options struct {
	// ConfigFile is an optional YAML/JSON/TOML file. Environment variables
	// override its values.
	ConfigFile string
}

// Load reads, defaults and validates settings.
func Load(opts Options) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// GENERATION_VERIFIER= disables verification.
	v.AllowEmptyEnv(true)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", opts.ConfigFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	s.normalize()

	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := s.checkProviders(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("generation.providers", []string{"ollama", "gemini"})
	v.SetDefault("generation.verifier", "gemini")
	v.SetDefault("generation.provider_timeout", 60*time.Second)
	v.SetDefault("generation.transform", "flat")

	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.temperature", 0.7)

	v.SetDefault("resources.variant", "library")
	v.SetDefault("resources.wikipedia_url", "https://en.wikipedia.org/w/api.php")
	v.SetDefault("resources.timeout", 10*time.Second)

	for _, p := range supportedProviders {
		v.SetDefault(providerKey(p, "model"), p.DefaultModel())
	}
	v.SetDefault(providerKey(llm.ProviderOllama, "base_url"), llm.DefaultOllamaURL)
}

// bindEnv maps the provider blocks onto their conventional variable names
// (GEMINI_API_KEY rather than PROVIDERS_GEMINI_API_KEY).
func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"resources.youtube_api_key": "YOUTUBE_API_KEY",
		"resources.wikipedia_url":   "WIKIPEDIA_URL",
	}
	for _, p := range supportedProviders {
		if env := p.EnvVar(); env != "" {
			bindings[providerKey(p, "api_key")] = env
		}
		bindings[providerKey(p, "model")] = p.ModelEnvVar()
		bindings[providerKey(p, "base_url")] = strings.ToUpper(p.String()) + "_URL"
	}
	// MODEL_API_KEY is the older name of the Gemini key.
	if err := v.BindEnv(providerKey(llm.ProviderGemini, "api_key"), "GEMINI_API_KEY", "MODEL_API_KEY"); err != nil {
		return err
	}
	delete(bindings, providerKey(llm.ProviderGemini, "api_key"))

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}
	return nil
}

func providerKey(p llm.ProviderType, field string) string {
	return "providers." + p.String() + "." + field
}

// normalize canonicalizes provider names and trims list entries.
func (s *Settings) normalize() {
	for i, name := range s.Generation.Providers {
		s.Generation.Providers[i] = canonicalName(name)
	}
	s.Generation.Verifier = canonicalName(s.Generation.Verifier)
	s.Log.Level = strings.ToLower(strings.TrimSpace(s.Log.Level))
	s.Log.Format = strings.ToLower(strings.TrimSpace(s.Log.Format))
	s.Generation.Transform = strings.ToLower(strings.TrimSpace(s.Generation.Transform))
	s.Resources.Variant = strings.ToLower(strings.TrimSpace(s.Resources.Variant))
}

func canonicalName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if pt, err := llm.ParseProviderType(name); err == nil {
		return pt.String()
	}
	return strings.ToLower(name)
}

// checkProviders rejects unknown names and hosted providers without keys.
func (s *Settings) checkProviders() error {
	names := append([]string(nil), s.Generation.Providers...)
	if s.Generation.Verifier != "" {
		names = append(names, s.Generation.Verifier)
	}

	for _, name := range names {
		pt, err := llm.ParseProviderType(name)
		if err != nil {
			return err
		}
		if pt.Local() {
			continue
		}
		if s.Providers[pt.String()].APIKey == "" {
			return fmt.Errorf("%w: %s requires %s", ErrMissingCredentials, pt, pt.EnvVar())
		}
	}
	return nil
}

// Provider returns the settings block for name (aliases allowed).
func (s *Settings) Provider(name string) (llm.ProviderType, ProviderConfig, error) {
	pt, err := llm.ParseProviderType(name)
	if err != nil {
		return 0, ProviderConfig{}, err
	}
	cfg := s.Providers[pt.String()]
	if cfg.Model == "" {
		cfg.Model = pt.DefaultModel()
	}
	return pt, cfg, nil
}

// SupportedProviders returns the list of supported provider names.
func SupportedProviders() []string {
	result := make([]string, len(supportedProviders))
	for i, p := range supportedProviders {
		result[i] = p.String()
	}
	return result
}
