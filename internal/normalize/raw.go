package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Swanand58/math-ai-agent/internal/llm"
)

// Kind identifies the shape of a raw model response.
type Kind int

const (
	// KindContentMapping is a response whose content is already a JSON object.
	KindContentMapping Kind = iota
	// KindContentText is a response whose content is free text.
	KindContentText
	// KindPlainText is a bare string.
	KindPlainText
	// KindTextField is a value exposing its output through a Text method.
	KindTextField
	// KindOther is anything else; only its string form is usable.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindContentMapping:
		return "content-mapping"
	case KindContentText:
		return "content-text"
	case KindPlainText:
		return "plain-text"
	case KindTextField:
		return "text-field"
	default:
		return "other"
	}
}

// Texter is implemented by SDK results that expose their text output
// through a method, such as genai.GenerateContentResponse.
type Texter interface {
	Text() string
}

// Raw is a classified model response.
type Raw struct {
	Kind Kind

	// Mapping is set for KindContentMapping.
	Mapping map[string]any

	// Text is the string content for the text-shaped kinds.
	Text string

	// Fallback is the string conversion of the whole response, used when
	// nothing else yields a record.
	Fallback string
}

// Text wraps a bare string.
func Text(s string) Raw {
	return Raw{Kind: KindPlainText, Text: s, Fallback: s}
}

// Content classifies provider response content. JSON objects become
// mappings; a JSON string literal is unwrapped; anything else is text.
func Content(content json.RawMessage) Raw {
	trimmed := bytes.TrimSpace(content)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var m map[string]any
		if err := json.Unmarshal(trimmed, &m); err == nil && m != nil {
			return Raw{Kind: KindContentMapping, Mapping: m, Fallback: string(content)}
		}
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return Raw{Kind: KindContentText, Text: s, Fallback: s}
		}
	}

	return Raw{Kind: KindContentText, Text: string(content), Fallback: string(content)}
}

// Classify decides which shape v has.
func Classify(v any) Raw {
	switch r := v.(type) {
	case Raw:
		return r
	case *llm.Response:
		if r == nil {
			return Raw{Kind: KindOther, Fallback: ""}
		}
		return Content(r.Content)
	case llm.Response:
		return Content(r.Content)
	case json.RawMessage:
		return Content(r)
	case string:
		return Text(r)
	case Texter:
		s := r.Text()
		return Raw{Kind: KindTextField, Text: s, Fallback: s}
	case nil:
		return Raw{Kind: KindOther}
	default:
		return Raw{Kind: KindOther, Fallback: fmt.Sprint(v)}
	}
}
