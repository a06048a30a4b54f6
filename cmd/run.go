package cmd

import (
	"github.com/fatih/color"
	"github.com/marczalik/smallsh/core/shell"
	"github.com/spf13/cobra"
)

// runCmd starts an interactive shell session on the current terminal.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive shell session.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		if configuration.Motd != "" {
			color.New(color.FgCyan).Fprintln(cmd.OutOrStdout(), configuration.Motd)
		}

		sh, err := shell.NewShell(configuration)
		if err != nil {
			return err
		}
		defer sh.Close()

		return sh.Run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
