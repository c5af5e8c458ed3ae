package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/Swanand58/math-ai-agent/internal/agent"
	"github.com/Swanand58/math-ai-agent/internal/expression"
	"github.com/Swanand58/math-ai-agent/internal/library"
)

// Processor runs one query. *agent.Agent satisfies it.
type Processor interface {
	Process(ctx context.Context, query string) (*agent.Result, error)
	LastRaw() (string, bool)
}

// Style tells a front end how to present a Block.
type Style int

const (
	StyleInfo Style = iota
	StyleResult
	StyleHint
	StyleError
	StyleRaw
)

// Block is one piece of output.
type Block struct {
	Style Style
	Text  string
}

// Reply is everything a line produced. Exit ends the loop.
type Reply struct {
	Blocks []Block
	Exit   bool
}

func reply(style Style, format string, args ...any) Reply {
	return Reply{Blocks: []Block{{Style: style, Text: fmt.Sprintf(format, args...)}}}
}

// Session is the loop state shared by both front ends.
type Session struct {
	proc  Processor
	lib   *library.Library
	last  *expression.Expression
	debug bool
}

// NewSession returns a Session that sends queries to proc and saves to lib.
func NewSession(proc Processor, lib *library.Library) *Session {
	return &Session{proc: proc, lib: lib}
}

// Debug reports whether raw responses are shown after each result.
func (s *Session) Debug() bool { return s.debug }

// Last returns the most recent processed or loaded expression, or nil.
func (s *Session) Last() *expression.Expression { return s.last }

// Handle parses and runs line synchronously.
func (s *Session) Handle(ctx context.Context, line string) Reply {
	cmd := ParseCommand(line)
	if cmd.Kind == KindQuery {
		res, err := s.proc.Process(ctx, cmd.Arg)
		return s.Complete(res, err)
	}
	return s.Execute(cmd)
}

// Execute runs a non-query command.
func (s *Session) Execute(cmd Command) Reply {
	switch cmd.Kind {
	case KindEmpty, KindQuery:
		return Reply{}
	case KindExit:
		r := reply(StyleInfo, "Goodbye!")
		r.Exit = true
		return r
	case KindHelp:
		return reply(StyleInfo, "%s", helpText)
	case KindDebug:
		s.debug = !s.debug
		if s.debug {
			return reply(StyleInfo, "Debug mode enabled")
		}
		return reply(StyleInfo, "Debug mode disabled")
	case KindRaw:
		raw, ok := s.proc.LastRaw()
		if !ok {
			return reply(StyleHint, "No previous response to show")
		}
		return reply(StyleRaw, "--- Raw Response ---\n%s\n-------------------", raw)
	case KindSave:
		return s.save(cmd.Arg)
	case KindLoad:
		return s.load(cmd.Arg)
	case KindList:
		return s.list()
	}
	return Reply{}
}

// Complete turns the outcome of a query into output and remembers the
// expression on success.
func (s *Session) Complete(res *agent.Result, err error) Reply {
	if err != nil {
		return reply(StyleError, "Error processing expression: %v", err)
	}
	s.last = res.Expression

	r := Reply{Blocks: []Block{{Style: StyleResult, Text: res.Expression.Display()}}}
	if s.debug {
		r.Blocks = append(r.Blocks, Block{Style: StyleHint, Text: fmt.Sprintf("DEBUG - extraction tier: %s, validated: %t", res.Tier, res.Validated)})
		if raw, ok := s.proc.LastRaw(); ok {
			r.Blocks = append(r.Blocks, Block{Style: StyleRaw, Text: "DEBUG - Raw response:\n" + raw})
		}
	}
	return r
}

func (s *Session) save(name string) Reply {
	if s.last == nil {
		return reply(StyleHint, "No expression to save. Process an expression first.")
	}
	path, err := s.lib.Save(s.last, name)
	if err != nil {
		return reply(StyleError, "Error saving expression: %v", err)
	}
	return reply(StyleInfo, "Expression saved to: %s", path)
}

func (s *Session) load(name string) Reply {
	if name == "" {
		return reply(StyleHint, "Please specify a filename to load.")
	}
	e, err := s.lib.Load(name)
	if err != nil {
		return reply(StyleError, "Error loading expression: %v", err)
	}
	s.last = e
	return Reply{Blocks: []Block{
		{Style: StyleInfo, Text: "Loaded expression:"},
		{Style: StyleResult, Text: e.Display()},
	}}
}

func (s *Session) list() Reply {
	names, err := s.lib.List()
	if err != nil {
		return reply(StyleError, "Error listing expressions: %v", err)
	}
	if len(names) == 0 {
		return reply(StyleHint, "No saved expressions found.")
	}
	var b strings.Builder
	b.WriteString("Saved expressions:")
	for i, n := range names {
		fmt.Fprintf(&b, "\n%d. %s", i+1, n)
	}
	return reply(StyleInfo, "%s", b.String())
}
