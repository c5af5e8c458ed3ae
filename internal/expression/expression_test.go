package expression

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNew_RequiresBothNotations(t *testing.T) {
	tests := []struct {
		name      string
		mathjs    string
		latex     string
		wantField string
	}{
		{"empty mathjs", "", "x", FieldMathJS},
		{"blank mathjs", "   ", "x", FieldMathJS},
		{"empty latex", "x", "", FieldLaTeX},
		{"blank latex", "x", "\n\t", FieldLaTeX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.mathjs, tt.latex)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Fatalf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestNew_Options(t *testing.T) {
	e, err := New("x + y", "x + y", WithLatency(1500*time.Millisecond), WithQuery("sum of x and y"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lat, ok := e.Latency()
	if !ok || lat != 1.5 {
		t.Fatalf("latency = %v (%v), want 1.5", lat, ok)
	}
	if e.Query() != "sum of x and y" {
		t.Fatalf("query = %q", e.Query())
	}
	if e.Rendering() != "" {
		t.Fatalf("expected no rendering, got %q", e.Rendering())
	}
}

func TestFromMap_RejectsNonStrings(t *testing.T) {
	_, err := FromMap(map[string]any{"mathjs": 42.0, "latex": "42"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != FieldMathJS {
		t.Fatalf("expected mathjs ValidationError, got %v", err)
	}

	_, err = FromMap(map[string]any{"mathjs": "x"})
	if !errors.As(err, &verr) || verr.Field != FieldLaTeX {
		t.Fatalf("expected latex ValidationError, got %v", err)
	}
}

func TestWithRendering_OnlyOnce(t *testing.T) {
	e, _ := New("x^2", "x^{2}")

	enriched, err := e.WithRendering("x²")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enriched.Rendering() != "x²" {
		t.Fatalf("rendering = %q", enriched.Rendering())
	}
	if e.Rendering() != "" {
		t.Fatal("original record must not change")
	}

	if _, err := enriched.WithRendering("again"); !errors.Is(err, ErrAlreadyEnriched) {
		t.Fatalf("expected ErrAlreadyEnriched, got %v", err)
	}
	if _, err := e.WithRendering("  "); err == nil {
		t.Fatal("expected error for blank rendering")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	e, _ := New(`sqrt(x^2 + y^2)`, `\sqrt{x^2 + y^2}`,
		WithLatencySeconds(0.25), WithQuery("distance from origin"))
	e, _ = e.WithRendering("√(x² + y²)")

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Expression
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(e) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, *e)
	}
}

func TestMarshalJSON_OmitsAbsentFields(t *testing.T) {
	e, _ := New("x", "x")
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"mathjs":"x","latex":"x"}` {
		t.Fatalf("unexpected JSON: %s", data)
	}
}

func TestUnmarshalJSON_AcceptsNullRendering(t *testing.T) {
	var e Expression
	err := json.Unmarshal([]byte(`{"mathjs":"a/b","latex":"\\frac{a}{b}","sympy_repr":null}`), &e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.LaTeX() != `\frac{a}{b}` {
		t.Fatalf("latex = %q", e.LaTeX())
	}
	if e.Rendering() != "" {
		t.Fatalf("rendering = %q", e.Rendering())
	}
}

func TestUnmarshalJSON_Invalid(t *testing.T) {
	inputs := []string{
		`{"mathjs":"","latex":"x"}`,
		`{"latex":"x"}`,
		`null`,
		`[1,2]`,
	}
	for _, in := range inputs {
		var e Expression
		if err := json.Unmarshal([]byte(in), &e); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}

func TestDisplay(t *testing.T) {
	e, _ := New("x + y", "x + y", WithQuery("sum of x and y"), WithLatencySeconds(1.23456))
	e, _ = e.WithRendering("x + y")

	want := strings.Join([]string{
		"Mathematical Expression:",
		"Query: sum of x and y",
		"MathJS: x + y",
		"LaTeX:  x + y",
		"",
		"Symbolic form:",
		"x + y",
		"",
		"Response time: 1.235 seconds",
	}, "\n")
	if got := e.Display(); got != want {
		t.Fatalf("Display() =\n%s\nwant\n%s", got, want)
	}
}

func TestDisplay_Minimal(t *testing.T) {
	e, _ := New("a", "b")
	want := "Mathematical Expression:\nMathJS: a\nLaTeX:  b"
	if got := e.Display(); got != want {
		t.Fatalf("Display() = %q, want %q", got, want)
	}
}
