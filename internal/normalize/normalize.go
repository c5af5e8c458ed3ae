package normalize

import (
	"errors"
	"strings"

	"github.com/Swanand58/math-ai-agent/internal/expression"
)

// ErrEmptyResponse is returned when the response carries no usable text.
var ErrEmptyResponse = errors.New("model response is empty")

// Tier names the extraction step that produced a record.
type Tier string

const (
	TierMapping   Tier = "mapping"
	TierJSON      Tier = "json"
	TierFields    Tier = "fields"
	TierLines     Tier = "lines"
	TierWholeText Tier = "whole-text"
)

// Result is a normalized record together with the tier that produced it.
type Result struct {
	Expression *expression.Expression
	Tier       Tier
}

// Normalize turns a classified response into an Expression. Extraction
// tiers are tried in priority order; a candidate that fails record
// validation moves on to the next tier.
func Normalize(raw Raw, opts ...expression.Option) (*expression.Expression, error) {
	res, err := NormalizeDetailed(raw, opts...)
	if err != nil {
		return nil, err
	}
	return res.Expression, nil
}

// NormalizeDetailed is Normalize, also reporting which tier succeeded.
func NormalizeDetailed(raw Raw, opts ...expression.Option) (Result, error) {
	switch raw.Kind {
	case KindContentMapping:
		if e, err := expression.FromMap(raw.Mapping, opts...); err == nil {
			return Result{Expression: e, Tier: TierMapping}, nil
		}
		return degenerate("", raw.Fallback, opts)

	case KindContentText, KindPlainText, KindTextField:
		return fromText(raw.Text, raw.Fallback, opts)

	default:
		return degenerate("", raw.Fallback, opts)
	}
}

func fromText(text, fallback string, opts []expression.Option) (Result, error) {
	cleaned := Clean(text)

	if m := ExtractJSON(cleaned); m != nil {
		if e, err := expression.FromMap(m, opts...); err == nil {
			return Result{Expression: e, Tier: TierJSON}, nil
		}
	}

	if mathjs, latex, ok := ExtractFields(cleaned); ok {
		if e, err := expression.New(mathjs, latex, opts...); err == nil {
			return Result{Expression: e, Tier: TierFields}, nil
		}
	}

	if primary, display, ok := LastTwoLines(cleaned); ok {
		if e, err := expression.New(primary, display, opts...); err == nil {
			return Result{Expression: e, Tier: TierLines}, nil
		}
	}

	return degenerate(cleaned, fallback, opts)
}

// degenerate uses the whole text as both notations, preferring the cleaned
// text over the raw string form.
func degenerate(cleaned, fallback string, opts []expression.Option) (Result, error) {
	for _, candidate := range []string{cleaned, strings.TrimSpace(fallback)} {
		if e, err := expression.New(candidate, candidate, opts...); err == nil {
			return Result{Expression: e, Tier: TierWholeText}, nil
		}
	}
	return Result{}, ErrEmptyResponse
}
