// Package agent turns a natural-language math query into a validated
// expression record: one model call, normalization, then symbolic
// enrichment.
package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Swanand58/math-ai-agent/internal/expression"
	"github.com/Swanand58/math-ai-agent/internal/llm"
	"github.com/Swanand58/math-ai-agent/internal/normalize"
	"github.com/Swanand58/math-ai-agent/internal/store"
	"github.com/Swanand58/math-ai-agent/internal/symbolic"
)

// Purpose labels LLM request events made by the agent.
const Purpose = "parse-expression"

// ErrEmptyQuery is returned for blank input.
var ErrEmptyQuery = errors.New("query is empty")

// Result is the outcome of one processed query.
type Result struct {
	Expression *expression.Expression

	// Tier is the extraction step that produced the record.
	Tier normalize.Tier

	// Validated reports whether the symbolic validator accepted the
	// MathJS form.
	Validated bool
}

// Agent processes queries against a single provider. It is safe for
// concurrent use, though callers normally run one query at a time.
type Agent struct {
	provider  llm.Provider
	config    Config
	history   store.HistoryRepo
	sessionID string

	mu      sync.Mutex
	lastRaw string
	hasRaw  bool
}

// Option configures an Agent.
type Option func(*Agent)

// WithHistory records every processed query in repo.
func WithHistory(repo store.HistoryRepo) Option {
	return func(a *Agent) { a.history = repo }
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(a *Agent) { a.sessionID = id }
}

// New creates an Agent using provider.
func New(provider llm.Provider, cfg Config, opts ...Option) *Agent {
	a := &Agent{
		provider:  provider,
		config:    cfg,
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SessionID identifies this agent's history events.
func (a *Agent) SessionID() string { return a.sessionID }

// ModelID returns the provider's model.
func (a *Agent) ModelID() string { return a.provider.ModelID() }

// LastRaw returns the raw text of the most recent model reply.
func (a *Agent) LastRaw() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastRaw, a.hasRaw
}

// Process sends query to the model and normalizes the reply. A reply that
// fails schema validation is still normalized from its text.
func (a *Agent) Process(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(query)},
		},
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}
	if a.config.StructuredOutput {
		req.Schema = ExpressionSchema
	}

	start := time.Now()
	resp, err := a.provider.Generate(ctx, req)
	latency := time.Since(start)

	var raw normalize.Raw
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if !errors.As(err, &invalid) || len(invalid.Content) == 0 {
			a.record(ctx, query, nil, "", latency, err)
			return nil, fmt.Errorf("query model: %w", err)
		}
		raw = normalize.Content(invalid.Content)
	} else {
		raw = normalize.Classify(resp)
	}

	a.mu.Lock()
	a.lastRaw, a.hasRaw = raw.Fallback, true
	a.mu.Unlock()

	res, err := normalize.NormalizeDetailed(raw,
		expression.WithLatency(latency),
		expression.WithQuery(query),
	)
	if err != nil {
		a.record(ctx, query, nil, "", latency, err)
		return nil, err
	}

	e, ok := symbolic.Enrich(res.Expression)
	a.record(ctx, query, e, res.Tier, latency, nil)

	return &Result{Expression: e, Tier: res.Tier, Validated: ok}, nil
}

// record appends a history event; failures only produce a warning.
func (a *Agent) record(ctx context.Context, query string, e *expression.Expression, tier normalize.Tier, latency time.Duration, procErr error) {
	if a.history == nil {
		return
	}

	data := store.ExpressionEventData{
		SessionID:    a.sessionID,
		Query:        query,
		ResponseTime: latency.Seconds(),
		Tier:         string(tier),
		Success:      procErr == nil,
	}
	if e != nil {
		data.MathJS = e.MathJS()
		data.LaTeX = e.LaTeX()
		data.Rendering = e.Rendering()
	}
	if procErr != nil {
		data.ErrorMessage = procErr.Error()
	}

	if err := a.history.AppendExpression(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record expression event: %v\n", err)
	}
}
