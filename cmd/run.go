package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Swanand58/math-ai-agent/internal/agent"
	"github.com/Swanand58/math-ai-agent/internal/llm"
	"github.com/Swanand58/math-ai-agent/internal/repl"
	"github.com/Swanand58/math-ai-agent/internal/store"
)

// openAgent opens the store and builds an agent whose model calls and
// processed queries are recorded there. The caller closes the store.
func openAgent(cmd *cobra.Command) (*agent.Agent, *store.Store, error) {
	provider, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	cfg := llm.ResolveConfig(provider, model)
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}

	eventRepo := st.EventRepo()
	p, err := llm.NewProvider(cmd.Context(), cfg, eventRepo)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("create LLM provider: %w", err)
	}

	acfg := agent.DefaultConfig()
	acfg.StructuredOutput = cfg.StructuredOutput
	return agent.New(p, acfg, agent.WithHistory(eventRepo)), st, nil
}

// runInteractive builds the agent and starts the interactive loop.
func runInteractive(cmd *cobra.Command) error {
	a, st, err := openAgent(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	session := repl.NewSession(a, resolveLibrary(cmd))
	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		fmt.Printf("Using model %s.\n", a.ModelID())
		return repl.RunPlain(cmd.Context(), session, os.Stdin, os.Stdout)
	}
	return repl.Run(cmd.Context(), session)
}
