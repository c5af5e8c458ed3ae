package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Browse saved expressions",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved expression files, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := resolveLibrary(cmd)
		names, err := lib.List()
		if err != nil {
			return fmt.Errorf("list expressions: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintf(out, "No saved expressions found in %s.\n", lib.Dir())
			return nil
		}
		for i, n := range names {
			fmt.Fprintf(out, "%d. %s\n", i+1, n)
		}
		return nil
	},
}

var savedShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := resolveLibrary(cmd).Load(args[0])
		if err != nil {
			return fmt.Errorf("load expression: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), e.Display())
		return nil
	},
}

func init() {
	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedShowCmd)
}
