package expression

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Field names used in the JSON form and in validation errors.
const (
	FieldMathJS    = "mathjs"
	FieldLaTeX     = "latex"
	FieldRendering = "sympy_repr"
	FieldLatency   = "response_time"
	FieldQuery     = "user_input"
)

// ErrAlreadyEnriched is returned when a rendering is attached to a record
// that already carries one.
var ErrAlreadyEnriched = errors.New("expression already has a symbolic rendering")

// ValidationError describes why a record could not be constructed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Expression is a parsed mathematical expression in MathJS and LaTeX form.
// Values are immutable once constructed; use WithRendering to attach the
// symbolic rendering.
type Expression struct {
	mathjs     string
	latex      string
	rendering  string
	latency    float64
	hasLatency bool
	query      string
}

// Option sets an optional attribute during construction.
type Option func(*Expression)

// WithLatency records the duration of the model call that produced the record.
func WithLatency(d time.Duration) Option {
	return func(e *Expression) {
		e.latency = d.Seconds()
		e.hasLatency = true
	}
}

// WithLatencySeconds is WithLatency for values already expressed in seconds.
func WithLatencySeconds(s float64) Option {
	return func(e *Expression) {
		e.latency = s
		e.hasLatency = true
	}
}

// WithQuery records the natural-language input.
func WithQuery(q string) Option {
	return func(e *Expression) {
		e.query = q
	}
}

// New builds an Expression. Both notations must be non-empty.
func New(mathjs, latex string, opts ...Option) (*Expression, error) {
	if strings.TrimSpace(mathjs) == "" {
		return nil, &ValidationError{Field: FieldMathJS, Reason: "must be a non-empty string"}
	}
	if strings.TrimSpace(latex) == "" {
		return nil, &ValidationError{Field: FieldLaTeX, Reason: "must be a non-empty string"}
	}

	e := &Expression{mathjs: mathjs, latex: latex}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// FromMap builds an Expression from a decoded JSON object. Both required
// keys must be present and hold strings.
func FromMap(m map[string]any, opts ...Option) (*Expression, error) {
	mathjs, err := stringField(m, FieldMathJS)
	if err != nil {
		return nil, err
	}
	latex, err := stringField(m, FieldLaTeX)
	if err != nil {
		return nil, err
	}
	return New(mathjs, latex, opts...)
}

func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", &ValidationError{Field: key, Reason: "missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: key, Reason: fmt.Sprintf("must be a string, got %T", v)}
	}
	return s, nil
}

func (e *Expression) MathJS() string { return e.mathjs }

func (e *Expression) LaTeX() string { return e.latex }

// Rendering returns the symbolic rendering, or "" when validation did not
// succeed or was never attempted.
func (e *Expression) Rendering() string { return e.rendering }

// Latency returns the model call duration in seconds.
func (e *Expression) Latency() (float64, bool) { return e.latency, e.hasLatency }

func (e *Expression) Query() string { return e.query }

// WithRendering returns a copy of e carrying the given symbolic rendering.
// A record can be enriched at most once.
func (e *Expression) WithRendering(rendering string) (*Expression, error) {
	if e.rendering != "" {
		return nil, ErrAlreadyEnriched
	}
	if strings.TrimSpace(rendering) == "" {
		return nil, &ValidationError{Field: FieldRendering, Reason: "must be a non-empty string"}
	}
	out := *e
	out.rendering = rendering
	return &out, nil
}

// Equal reports whether both records carry the same attributes.
func (e *Expression) Equal(other *Expression) bool {
	if e == nil || other == nil {
		return e == other
	}
	return *e == *other
}

// wireExpression is the JSON form. Keys match files written by earlier
// versions of the tool.
type wireExpression struct {
	MathJS    *string  `json:"mathjs"`
	LaTeX     *string  `json:"latex"`
	Rendering *string  `json:"sympy_repr,omitempty"`
	Latency   *float64 `json:"response_time,omitempty"`
	Query     *string  `json:"user_input,omitempty"`
}

func (e *Expression) MarshalJSON() ([]byte, error) {
	w := wireExpression{MathJS: &e.mathjs, LaTeX: &e.latex}
	if e.rendering != "" {
		w.Rendering = &e.rendering
	}
	if e.hasLatency {
		w.Latency = &e.latency
	}
	if e.query != "" {
		w.Query = &e.query
	}
	return json.Marshal(w)
}

func (e *Expression) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if m == nil {
		return &ValidationError{Field: FieldMathJS, Reason: "missing"}
	}

	var opts []Option
	if v, ok := m[FieldLatency].(float64); ok {
		opts = append(opts, WithLatencySeconds(v))
	}
	if v, ok := m[FieldQuery].(string); ok {
		opts = append(opts, WithQuery(v))
	}

	parsed, err := FromMap(m, opts...)
	if err != nil {
		return err
	}
	if r, ok := m[FieldRendering].(string); ok && r != "" {
		parsed, err = parsed.WithRendering(r)
		if err != nil {
			return err
		}
	}

	*e = *parsed
	return nil
}
