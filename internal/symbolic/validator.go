package symbolic

import (
	"fmt"
	"strings"

	"github.com/Swanand58/math-ai-agent/internal/expression"
)

// Render parses a MathJS expression and returns its pretty form. The caret
// is accepted as a power operator and rewritten to ** before parsing.
func Render(primary string) (string, error) {
	n, err := Parse(strings.ReplaceAll(primary, "^", "**"))
	if err != nil {
		return "", fmt.Errorf("render %q: %w", primary, err)
	}
	return Pretty(n), nil
}

// Enrich attaches the symbolic rendering of e's MathJS form. On any failure
// it returns e unchanged and false.
func Enrich(e *expression.Expression) (out *expression.Expression, ok bool) {
	if e == nil {
		return nil, false
	}
	defer func() {
		if r := recover(); r != nil {
			out, ok = e, false
		}
	}()

	rendering, err := Render(e.MathJS())
	if err != nil || rendering == "" {
		return e, false
	}
	enriched, err := e.WithRendering(rendering)
	if err != nil {
		return e, false
	}
	return enriched, true
}
