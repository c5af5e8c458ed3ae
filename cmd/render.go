package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Swanand58/math-ai-agent/internal/symbolic"
)

var renderCmd = &cobra.Command{
	Use:   "render <mathjs>",
	Short: "Check a MathJS expression symbolically and print its pretty form",
	Long:  "render runs only the symbolic validator. It needs no model credentials.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := symbolic.Render(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
