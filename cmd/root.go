package cmd

import (
	"os"

	"github.com/juanibiapina/venue/internal/telemetry"
	"github.com/juanibiapina/venue/internal/version"
	"github.com/spf13/cobra"
)

// skipTelemetry lists commands that handle their own telemetry or shouldn't be tracked
var skipTelemetry = map[string]bool{
	"mcp":        true, // has own telemetry
	"tui":        true, // has own telemetry
	"venue":      true, // root runs the tui
	"completion": true, // shell completion
	"__complete": true, // internal completion
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "venue",
	Short: "Find, compare and book event centers and caterers",
	Long: `Browse event centers and caterers, read their reviews and book a date,
from the terminal.

Run without a command to open the interactive browser. The other commands
print the same data for scripts and agents.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		name := cmd.Name()
		if skipTelemetry[name] {
			return
		}
		if parent := cmd.Parent(); parent != nil && parent.Name() == "completion" {
			return
		}
		telemetry.CLICommandStart(name)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		telemetry.CLICommandEnd()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return tuiCmd.RunE(cmd, args)
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	initTelemetry()
	err := RootCmd.Execute()
	telemetry.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.Version = version.Version

	// Don't show usage on errors - only show it when explicitly requested
	RootCmd.SilenceUsage = true
}
