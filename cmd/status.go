package cmd

import (
	"context"
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/sb/internal/app"
	"github.com/firefly-engineering/sb/internal/config"
	"github.com/firefly-engineering/sb/internal/sandbox"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sandbox of the current directory",
	Long: `Show the sandbox identity, state and resource limits for the current
directory without changing anything.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	wd, id, err := app.Default.Identity()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Directory: %s\n", wd)
	fmt.Fprintf(out, "Sandbox:   %s\n", id)

	rt, rtErr := app.Default.GetRuntime()
	if rtErr != nil {
		fmt.Fprintf(out, "Runtime:   unavailable\n")
		fmt.Fprintf(out, "State:     unknown\n")
	} else {
		state := sandbox.Probe(context.Background(), rt, id.String())
		fmt.Fprintf(out, "Runtime:   %s\n", rt.Name())
		fmt.Fprintf(out, "State:     %s\n", state)
	}

	cfg, cfgErr := app.Default.Config()
	if cfgErr == nil {
		fmt.Fprintf(out, "CPUs:      %s (%s)\n", cfg.Limits.CPUs, cfg.Origins["cpus"])
		fmt.Fprintf(out, "Memory:    %s (%s)\n", cfg.Limits.Memory, cfg.Origins["memory"])
	}

	if rt != nil {
		attach := append([]string{rt.Name(), "exec", "-it", id.String()}, config.EntryScript)
		fmt.Fprintf(out, "Attach:    %s\n", shellquote.Join(attach...))
	}

	if rtErr != nil {
		logWarning("%v", rtErr)
	}
	return cfgErr
}
