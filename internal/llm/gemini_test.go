package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-flash-lite", "gemini-2.5-flash-lite"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mathjs": map[string]any{"type": "string", "minLength": 1},
			"latex":  map[string]any{"type": "string", "minLength": float64(1)},
			"notes": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"mathjs", "latex"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(schema.Properties))
	}
	for _, name := range []string{"mathjs", "latex"} {
		p := schema.Properties[name]
		if p.Type != "STRING" {
			t.Fatalf("expected STRING for %s, got %s", name, p.Type)
		}
		if p.MinLength == nil || *p.MinLength != 1 {
			t.Fatalf("expected minLength 1 for %s", name)
		}
	}
	if schema.Properties["notes"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for notes items, got %s", schema.Properties["notes"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
