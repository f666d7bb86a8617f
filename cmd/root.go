package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/sb/internal/app"
	"github.com/firefly-engineering/sb/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "sb",
	Short: "Sandbox CLI tool dispatcher",
	Long: `sb gives every working directory its own reusable container sandbox.

Run without a subcommand to open a shell in the current directory's sandbox.
The sandbox is created on first use and started again when it is stopped.
Inside, the directory is mounted at /workspace and a volume shared by all
sandboxes keeps /home/agent between runs.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
	RunE: runShell,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// runShell opens an interactive shell in the working directory's sandbox.
func runShell(cmd *cobra.Command, args []string) error {
	ctrl, err := app.Default.Controller()
	if err != nil {
		return err
	}

	return exitWith(ctrl.Shell(context.Background()))
}
