package llm

import "fmt"

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.3-70b-versatile"
)

// groqModels maps friendly names to Groq model IDs.
var groqModels = map[string]string{
	"llama":       defaultGroqModel,
	"llama-70b":   defaultGroqModel,
	"llama-8b":    "llama-3.1-8b-instant",
	"gpt-oss":     "openai/gpt-oss-120b",
	"gpt-oss-20b": "openai/gpt-oss-20b",
	"qwen":        "qwen/qwen3-32b",
}

// GroqProvider talks to Groq's OpenAI-compatible endpoint. Structured
// output uses json_object mode; the response is still checked against the
// request schema.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultGroqModel
	}

	inner := newOpenAICompatible(cfg.APIKey, baseURL, resolveModel(model, groqModels), true)
	return &GroqProvider{OpenAIProvider: inner}, nil
}
