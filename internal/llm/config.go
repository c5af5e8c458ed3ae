package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "groq", "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Groq       GroqConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Zero disables it. Default: 60s.
	Timeout time.Duration

	// StructuredOutput sends the response schema to the provider so it can
	// use its native JSON mode. Default: true.
	StructuredOutput bool
}

// GroqConfig holds Groq-specific configuration.
type GroqConfig struct {
	APIKey  string
	Model   string // Default: "llama-3.3-70b-versatile"
	BaseURL string // Default: "https://api.groq.com/openai/v1"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "groq",
		Groq: GroqConfig{
			Model: defaultGroqModel,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout:          60 * time.Second,
		StructuredOutput: true,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. Each provider's key is read from its
// MATHAGENT_* variable first and then from the provider's standard variable
// (GROQ_API_KEY, ANTHROPIC_API_KEY, ...).
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("MATHAGENT_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	cfg.Groq.APIKey = firstEnv("MATHAGENT_GROQ_API_KEY", "GROQ_API_KEY")
	if m := os.Getenv("MATHAGENT_GROQ_MODEL"); m != "" {
		cfg.Groq.Model = m
	}

	cfg.Anthropic.APIKey = firstEnv("MATHAGENT_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	if m := os.Getenv("MATHAGENT_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	cfg.OpenAI.APIKey = firstEnv("MATHAGENT_OPENAI_API_KEY", "OPENAI_API_KEY")
	if m := os.Getenv("MATHAGENT_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("MATHAGENT_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	cfg.Gemini.APIKey = firstEnv("MATHAGENT_GEMINI_API_KEY", "GEMINI_API_KEY")
	if m := os.Getenv("MATHAGENT_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	cfg.OpenRouter.APIKey = firstEnv("MATHAGENT_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	if m := os.Getenv("MATHAGENT_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	if t := os.Getenv("MATHAGENT_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}
	if s := os.Getenv("MATHAGENT_STRUCTURED_OUTPUT"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			cfg.StructuredOutput = b
		}
	}

	return cfg
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// HasKey reports whether the selected provider has credentials configured.
func (c Config) HasKey() bool {
	return c.Validate() == nil
}

// discoveryOrder is the provider priority used when none is chosen.
var discoveryOrder = []string{"groq", "gemini", "openai", "anthropic", "openrouter"}

// DiscoverConfig returns the environment configuration switched to the
// first provider in discoveryOrder that has a key. Model and other
// overrides from the environment are kept. Returns (Config{}, false) if no
// provider has a key.
func DiscoverConfig() (Config, bool) {
	cfg := ConfigFromEnv()
	for _, p := range discoveryOrder {
		cfg.Provider = p
		if cfg.HasKey() {
			return cfg, true
		}
	}
	return Config{}, false
}

// ResolveConfig builds the configuration the CLI runs with. provider and
// model are command-line overrides and may be empty. Without a provider
// override or MATHAGENT_LLM_PROVIDER, the provider is discovered from the
// keys present.
func ResolveConfig(provider, model string) Config {
	cfg := ConfigFromEnv()
	switch {
	case provider != "":
		cfg.Provider = provider
	case os.Getenv("MATHAGENT_LLM_PROVIDER") != "":
	default:
		if found, ok := DiscoverConfig(); ok {
			cfg = found
		}
	}
	cfg.SetModel(model)
	return cfg
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	switch c.Provider {
	case "groq":
		c.Groq.Model = model
	case "anthropic":
		c.Anthropic.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "gemini":
		c.Gemini.Model = model
	case "openrouter":
		c.OpenRouter.Model = model
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "groq":
		if c.Groq.APIKey == "" {
			return fmt.Errorf("MATHAGENT_GROQ_API_KEY or GROQ_API_KEY is required for the groq provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("MATHAGENT_ANTHROPIC_API_KEY or ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("MATHAGENT_OPENAI_API_KEY or OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("MATHAGENT_GEMINI_API_KEY or GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("MATHAGENT_OPENROUTER_API_KEY or OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
