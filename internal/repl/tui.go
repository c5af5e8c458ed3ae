package repl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Swanand58/math-ai-agent/internal/agent"
	"github.com/Swanand58/math-ai-agent/internal/ui/theme"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerTickMsg animates the spinner while a query runs.
type spinnerTickMsg time.Time

// queryDoneMsg carries the outcome of a query run off the update loop.
type queryDoneMsg struct {
	Result *agent.Result
	Err    error
}

type model struct {
	ctx     context.Context
	session *Session
	input   textinput.Model

	busy      bool
	tickCount int
	quitting  bool
}

func newModel(ctx context.Context, s *Session) model {
	ti := textinput.New()
	ti.Placeholder = "integral of x squared dx"
	ti.Prompt = "❯ "
	ti.CharLimit = 500
	ti.Focus()

	return model{ctx: ctx, session: s, input: ti}
}

func (m model) Init() tea.Cmd {
	header := theme.Title.Render(banner) + "\n" + theme.Hint.Render("Enter a math expression or command.")
	return tea.Sequence(tea.Println(header), m.input.Focus())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case spinnerTickMsg:
		if !m.busy {
			return m, nil
		}
		m.tickCount++
		return m, spinnerTick()

	case queryDoneMsg:
		m.busy = false
		r := m.session.Complete(msg.Result, msg.Err)
		return m, printReply(r)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		if m.busy {
			return m, nil
		}
		line := m.input.Value()
		m.input.Reset()
		echo := tea.Println(theme.Prompt.Render("❯ ") + line)

		cmd := ParseCommand(line)
		if cmd.Kind == KindQuery {
			m.busy = true
			m.tickCount = 0
			return m, tea.Batch(echo, m.runQuery(cmd.Arg), spinnerTick())
		}

		r := m.session.Execute(cmd)
		if r.Exit {
			m.quitting = true
			return m, tea.Sequence(echo, printReply(r), tea.Quit)
		}
		return m, tea.Sequence(echo, printReply(r))
	}

	if m.busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) runQuery(q string) tea.Cmd {
	ctx, proc := m.ctx, m.session.proc
	return func() tea.Msg {
		res, err := proc.Process(ctx, q)
		return queryDoneMsg{Result: res, Err: err}
	}
}

func (m model) View() tea.View {
	v := tea.NewView("")
	switch {
	case m.quitting:
	case m.busy:
		frame := spinnerFrames[m.tickCount%len(spinnerFrames)]
		v.SetContent(theme.Spinner.Render(frame) + " " + theme.Hint.Render("Processing expression..."))
	default:
		v.SetContent(m.input.View())
	}
	return v
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// printReply renders r above the input line. Empty replies print nothing.
func printReply(r Reply) tea.Cmd {
	if len(r.Blocks) == 0 {
		return nil
	}
	parts := make([]string, 0, len(r.Blocks))
	for _, b := range r.Blocks {
		parts = append(parts, styleFor(b.Style).Render(b.Text))
	}
	return tea.Println(strings.Join(parts, "\n") + "\n")
}

func styleFor(s Style) lipgloss.Style {
	switch s {
	case StyleResult:
		return theme.Result
	case StyleHint:
		return theme.Hint
	case StyleError:
		return theme.Failure
	case StyleRaw:
		return theme.Raw
	}
	return theme.Body
}

// Run starts the Bubble Tea interface and blocks until the user exits.
func Run(ctx context.Context, s *Session) error {
	p := tea.NewProgram(newModel(ctx, s), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run interactive loop: %w", err)
	}
	return nil
}
