package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only
	Session string    // expression events only
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// ExpressionEventData captures one processed query. MathJS and LaTeX are
// empty when processing failed.
type ExpressionEventData struct {
	SessionID    string
	Query        string
	MathJS       string
	LaTeX        string
	Rendering    string
	ResponseTime float64 // seconds
	Tier         string
	Success      bool
	ErrorMessage string
}

// ExpressionEvent is a stored expression event.
type ExpressionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ExpressionEventData
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// HistoryRepo provides append access to expression events.
type HistoryRepo interface {
	// AppendExpression records the outcome of one query.
	AppendExpression(ctx context.Context, data ExpressionEventData) error
}

var (
	_ EventRepo   = (*SQLEventRepo)(nil)
	_ HistoryRepo = (*SQLEventRepo)(nil)
)
