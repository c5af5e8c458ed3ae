package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Swanand58/math-ai-agent/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently processed queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		session, _ := cmd.Flags().GetString("session")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryExpressions(cmd.Context(), store.QueryOpts{Limit: limit, Session: session})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No history yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-30s  %-30s  %-10s  %7s\n",
			"ID", "Timestamp", "Query", "MathJS", "Tier", "Secs")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, e := range events {
			result := e.MathJS
			if !e.Success {
				result = "✗ " + e.ErrorMessage
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-30s  %-30s  %-10s  %7.3f\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.Query, 30),
				truncate(result, 30),
				e.Tier,
				e.ResponseTime,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().String("session", "", "Only show one interactive session")
}
