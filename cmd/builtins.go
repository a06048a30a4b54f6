package cmd

import (
	"sort"

	"github.com/fatih/color"
	"github.com/marczalik/smallsh/core/shell"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the commands handled inside the shell process itself.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin shell commands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var builtins []string
		for name := range shell.AllBuiltins {
			builtins = append(builtins, name)
		}
		sort.Strings(builtins)

		bold := color.New(color.Bold)
		for _, v := range builtins {
			bold.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
