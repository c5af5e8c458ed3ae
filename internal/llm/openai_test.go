package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

var testExpressionSchema = &Schema{
	Name: "math-expression",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mathjs": map[string]any{"type": "string", "minLength": 1},
			"latex":  map[string]any{"type": "string", "minLength": 1},
		},
		"required":             []any{"mathjs", "latex"},
		"additionalProperties": false,
	},
}

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	client := openai.NewClientWithConfig(config)

	return &OpenAIProvider{
		client: client,
		model:  "gpt-4o-mini",
	}
}

// chatCompletion writes a minimal chat completion body with the given content.
func chatCompletion(w http.ResponseWriter, model, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   model,
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	})
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		chatCompletion(w, "gpt-4o-mini", `{"mathjs":"x + y","latex":"x + y"}`)
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "Convert natural language to math.",
		Messages:  []Message{{Role: RoleUser, Content: "x plus y"}},
		Schema:    testExpressionSchema,
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"mathjs":"x + y","latex":"x + y"}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if resp.Usage.InputTokens != 40 {
		t.Fatalf("expected 40 input tokens, got %d", resp.Usage.InputTokens)
	}
	if resp.Usage.OutputTokens != 25 {
		t.Fatalf("expected 25 output tokens, got %d", resp.Usage.OutputTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
}

func TestOpenAIProvider_SchemaViolationCarriesContent(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		chatCompletion(w, "gpt-4o-mini", "<think>hmm</think>\nx + y\nx + y")
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x plus y"}},
		Schema:   testExpressionSchema,
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
	if string(inv.Content) != "<think>hmm</think>\nx + y\nx + y" {
		t.Fatalf("content not carried: %q", inv.Content)
	}
}

func TestOpenAIProvider_ResponseFormat(t *testing.T) {
	tests := []struct {
		name       string
		jsonObject bool
		want       string
	}{
		{"strict schema", false, "json_schema"},
		{"json object", true, "json_object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					ResponseFormat struct {
						Type string `json:"type"`
					} `json:"response_format"`
				}
				json.NewDecoder(r.Body).Decode(&body)
				got = body.ResponseFormat.Type
				chatCompletion(w, "m", `{"mathjs":"x","latex":"x"}`)
			}

			p := newTestOpenAIProvider(t, handler)
			p.jsonObject = tt.jsonObject
			if _, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "x"}},
				Schema:   testExpressionSchema,
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("response_format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenAIProvider_RawTextWithoutSchema(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		chatCompletion(w, "gpt-4o-mini", "sqrt(x)\n\\sqrt{x}")
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "root of x"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != "sqrt(x)\n\\sqrt{x}" {
		t.Fatalf("unexpected content: %q", resp.Content)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "tokens",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "server_error",
				"message": "Internal server error",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ModelID(t *testing.T) {
	p := &OpenAIProvider{model: "gpt-4o-mini"}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("expected 'gpt-4o-mini', got %q", p.ModelID())
	}
}

func TestOpenAIProvider_BaseURLOverride(t *testing.T) {
	cfg := OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "https://llm.example/v1",
	}
	p, err := NewOpenAIProvider(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("expected 'gpt-4o', got %q", p.ModelID())
	}
	if p.jsonObject {
		t.Fatal("openai provider should use strict schemas")
	}
}
