package agent

import "github.com/Swanand58/math-ai-agent/internal/llm"

// ExpressionSchema defines the JSON schema for the model's reply.
var ExpressionSchema = &llm.Schema{
	Name:        "math-expression",
	Description: "A mathematical expression in MathJS and LaTeX notation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mathjs": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The expression in MathJS syntax, using ^ for powers and named functions such as sqrt, derivative, integrate",
			},
			"latex": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The same expression in LaTeX math notation",
			},
		},
		"required":             []any{"mathjs", "latex"},
		"additionalProperties": false,
	},
}
