package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Swanand58/math-ai-agent/internal/store"
)

// offlineReply is what the mock provider answers to every request.
const offlineReply = `{"mathjs":"sqrt(x^2 + y^2)","latex":"\\sqrt{x^{2}+y^{2}}"}`

// NewOfflineProvider returns a MockProvider that answers every request with
// a fixed expression, so the whole pipeline runs without credentials.
func NewOfflineProvider() *MockProvider {
	m := NewMockProvider()
	m.SetDefault(MockResponse{
		Content: json.RawMessage(offlineReply),
		Usage:   Usage{InputTokens: 1, OutputTokens: 1, TotalTokens: 2},
	})
	return m
}

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry and logging middleware.
// eventRepo may be nil, in which case requests are not recorded.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "groq":
		base, err = NewGroqProvider(cfg.Groq)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return WithLogging(NewOfflineProvider(), eventRepo), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → logging → base
	logged := WithLogging(base, eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	return WithTimeout(retried, cfg.Timeout), nil
}
