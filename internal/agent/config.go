package agent

// Config controls how queries are sent to the model.
type Config struct {
	// MaxTokens is the token budget for the model response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// StructuredOutput attaches ExpressionSchema to every request.
	StructuredOutput bool
}

// DefaultConfig returns the recommended settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        512,
		Temperature:      0,
		StructuredOutput: true,
	}
}
