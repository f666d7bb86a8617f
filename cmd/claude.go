package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/sb/internal/app"
	"github.com/firefly-engineering/sb/internal/errors"
	"github.com/firefly-engineering/sb/internal/sanitize"
)

var claudeCmd = &cobra.Command{
	Use:   "claude [args...]",
	Short: "Launch Claude Code environment",
	Long: `Run claude inside the working directory's sandbox.

Every argument after "claude" is forwarded, flags included. Arguments that
contain shell metacharacters, start with '-' or are longer than 1000 characters
are refused before the sandbox is touched.`,
	DisableFlagParsing: true,
	RunE:               runClaude,
}

func init() {
	rootCmd.AddCommand(claudeCmd)
}

func runClaude(cmd *cobra.Command, args []string) error {
	// refuse bad arguments before a runtime is even detected
	if _, err := sanitize.Args(args); err != nil {
		return errors.InvalidArgument(err)
	}

	ctrl, err := app.Default.Controller()
	if err != nil {
		return err
	}

	return exitWith(ctrl.Run(context.Background(), args))
}
