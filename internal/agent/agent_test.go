package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swanand58/math-ai-agent/internal/llm"
	"github.com/Swanand58/math-ai-agent/internal/normalize"
	"github.com/Swanand58/math-ai-agent/internal/store"
)

type memoryHistory struct {
	events []store.ExpressionEventData
	err    error
}

func (h *memoryHistory) AppendExpression(_ context.Context, data store.ExpressionEventData) error {
	h.events = append(h.events, data)
	return h.err
}

func TestProcess_StructuredReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"mathjs":"sqrt(x^2 + y^2)","latex":"\\sqrt{x^2 + y^2}"}`),
	})
	hist := &memoryHistory{}
	a := New(mock, DefaultConfig(), WithHistory(hist), WithSessionID("s1"))

	res, err := a.Process(context.Background(), "  square root of x squared plus y squared ")
	require.NoError(t, err)

	e := res.Expression
	assert.Equal(t, "sqrt(x^2 + y^2)", e.MathJS())
	assert.Equal(t, `\sqrt{x^2 + y^2}`, e.LaTeX())
	assert.Equal(t, "square root of x squared plus y squared", e.Query())
	assert.Equal(t, "√(x² + y²)", e.Rendering())
	assert.True(t, res.Validated)
	assert.Equal(t, normalize.TierMapping, res.Tier)

	latency, ok := e.Latency()
	assert.True(t, ok)
	assert.GreaterOrEqual(t, latency, 0.0)

	require.Len(t, mock.Calls, 1)
	call := mock.Calls[0]
	assert.Same(t, ExpressionSchema, call.Schema)
	assert.Contains(t, call.System, "MathJS")
	require.Len(t, call.Messages, 1)
	assert.Contains(t, call.Messages[0].Content, `"square root of x squared plus y squared"`)

	require.Len(t, hist.events, 1)
	ev := hist.events[0]
	assert.Equal(t, "s1", ev.SessionID)
	assert.True(t, ev.Success)
	assert.Equal(t, "mapping", ev.Tier)
	assert.Equal(t, "√(x² + y²)", ev.Rendering)

	raw, ok := a.LastRaw()
	assert.True(t, ok)
	assert.Contains(t, raw, "sqrt(x^2 + y^2)")
}

func TestProcess_UnstructuredReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("<think>reasoning...</think>\nHere you go:\nsqrt(x^2 + y^2)\n\\sqrt{x^2+y^2}"),
	})
	cfg := DefaultConfig()
	cfg.StructuredOutput = false
	a := New(mock, cfg)

	res, err := a.Process(context.Background(), "distance")
	require.NoError(t, err)
	assert.Equal(t, "sqrt(x^2 + y^2)", res.Expression.MathJS())
	assert.Equal(t, `\sqrt{x^2+y^2}`, res.Expression.LaTeX())
	assert.Equal(t, normalize.TierLines, res.Tier)
	assert.Nil(t, mock.Calls[0].Schema)
}

func TestProcess_SchemaViolationIsNormalized(t *testing.T) {
	content := json.RawMessage(`<think>hm</think>{"mathjs": "x + y", "latex": "x + y"} trailing`)
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{Content: content, Err: errors.New("invalid JSON")},
	})
	a := New(mock, DefaultConfig())

	res, err := a.Process(context.Background(), "x plus y")
	require.NoError(t, err)
	assert.Equal(t, "x + y", res.Expression.MathJS())
	assert.Equal(t, normalize.TierJSON, res.Tier)
}

func TestProcess_ValidatorFailureKeepsRecord(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"mathjs":"this is not math(","latex":"?"}`),
	})
	a := New(mock, DefaultConfig())

	res, err := a.Process(context.Background(), "gibberish")
	require.NoError(t, err)
	assert.False(t, res.Validated)
	assert.Empty(t, res.Expression.Rendering())
	assert.Equal(t, "this is not math(", res.Expression.MathJS())
}

func TestProcess_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrRateLimit{Err: errors.New("429")},
	})
	hist := &memoryHistory{}
	a := New(mock, DefaultConfig(), WithHistory(hist))

	_, err := a.Process(context.Background(), "x plus y")
	var rl *llm.ErrRateLimit
	require.True(t, errors.As(err, &rl), "got %v", err)

	_, ok := a.LastRaw()
	assert.False(t, ok)

	require.Len(t, hist.events, 1)
	assert.False(t, hist.events[0].Success)
	assert.NotEmpty(t, hist.events[0].ErrorMessage)
}

func TestProcess_EmptyReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("   ")})
	a := New(mock, DefaultConfig())

	_, err := a.Process(context.Background(), "x")
	assert.ErrorIs(t, err, normalize.ErrEmptyResponse)
}

func TestProcess_EmptyQuery(t *testing.T) {
	mock := llm.NewMockProvider()
	a := New(mock, DefaultConfig())

	_, err := a.Process(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, 0, mock.CallCount())
}

func TestProcess_HistoryFailureIsNotFatal(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"mathjs":"x","latex":"x"}`),
	})
	hist := &memoryHistory{err: errors.New("disk full")}
	a := New(mock, DefaultConfig(), WithHistory(hist))

	_, err := a.Process(context.Background(), "x")
	require.NoError(t, err)
}

func TestProcess_PurposeAttached(t *testing.T) {
	var purpose string
	p := contextSpy{fn: func(ctx context.Context) { purpose = llm.PurposeFrom(ctx) }}
	a := New(p, DefaultConfig())

	_, err := a.Process(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, Purpose, purpose)
}

func TestNew_GeneratesSessionID(t *testing.T) {
	a := New(llm.NewMockProvider(), DefaultConfig())
	b := New(llm.NewMockProvider(), DefaultConfig())
	assert.NotEmpty(t, a.SessionID())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(`the "area" of a circle`)
	assert.True(t, strings.HasPrefix(msg, "Convert this math expression"))
	assert.Contains(t, msg, `"the \"area\" of a circle"`)
	assert.Contains(t, msg, "Return ONLY a JSON object")
}

type contextSpy struct {
	fn func(context.Context)
}

func (p contextSpy) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.fn(ctx)
	return &llm.Response{Content: json.RawMessage(`{"mathjs":"x","latex":"x"}`)}, nil
}

func (contextSpy) ModelID() string { return "spy" }
