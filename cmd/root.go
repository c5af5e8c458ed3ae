package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Swanand58/math-ai-agent/internal/library"
	"github.com/Swanand58/math-ai-agent/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathagent",
	Short: "Turn natural-language math into MathJS and LaTeX",
	Long: "mathagent asks a language model to translate a math description into " +
		"MathJS and LaTeX notation, checks the result symbolically, and keeps a " +
		"library of saved expressions.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("env-file")
		return loadDotEnv(path)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("env-file", ".env", "Dotenv file with API keys; variables already set win")
	pf.String("db", "", "Path to SQLite database file (overrides MATHAGENT_DB env var)")
	pf.String("dir", "", "Directory for saved expressions (overrides MATHAGENT_EXPRESSIONS_DIR env var)")
	pf.String("provider", "", "LLM provider: groq, gemini, openai, anthropic, openrouter, mock")
	pf.String("model", "", "Model for the selected provider")

	rootCmd.Flags().Bool("plain", false, "Use a plain line-based prompt instead of the full-screen UI")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv adds the variables in path to the environment without
// overriding existing ones. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHAGENT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database named by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// resolveLibrary uses --dir, then MATHAGENT_EXPRESSIONS_DIR, then ./expressions.
func resolveLibrary(cmd *cobra.Command) *library.Library {
	if d, _ := cmd.Flags().GetString("dir"); d != "" {
		return library.New(d)
	}
	return library.New(library.DirFromEnv())
}
