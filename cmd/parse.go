package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// autoName is the --save value when no name is given.
const autoName = "-"

var parseCmd = &cobra.Command{
	Use:   "parse <query...>",
	Short: "Convert one math description and print the result",
	Example: `  mathagent parse "square root of x squared plus y squared"
  mathagent parse --save=distance "square root of x squared plus y squared"
  mathagent parse --json integral of sin x dx`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		a, st, err := openAgent(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := a.Process(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("process expression: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			data, err := json.MarshalIndent(res.Expression, "", "  ")
			if err != nil {
				return fmt.Errorf("encode expression: %w", err)
			}
			fmt.Fprintln(out, string(data))
		} else {
			fmt.Fprintln(out, res.Expression.Display())
		}

		if cmd.Flags().Changed("save") {
			name, _ := cmd.Flags().GetString("save")
			if name == autoName {
				name = ""
			}
			path, err := resolveLibrary(cmd).Save(res.Expression, name)
			if err != nil {
				return fmt.Errorf("save expression: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Expression saved to: %s\n", path)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().Bool("json", false, "Print the JSON form instead of the display block")
	parseCmd.Flags().String("save", "", "Save the result, optionally under a name (--save=name)")
	parseCmd.Flags().Lookup("save").NoOptDefVal = autoName
}
