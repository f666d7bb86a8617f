package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/sb/internal/app"
	"github.com/firefly-engineering/sb/internal/runtime"
)

var runtimeCmd = &cobra.Command{
	Use:   "runtime",
	Short: "Show container runtime information",
	Long: `Display information about available and active container runtimes.

sb supports two container runtimes:
  - docker:  Docker Engine
  - podman:  Podman

The runtime is auto-detected, docker first. Set [runtime] command in the
user config, or SB_RUNTIME, to choose one.`,
	Args: cobra.NoArgs,
	RunE: runRuntime,
}

func init() {
	rootCmd.AddCommand(runtimeCmd)
}

func runRuntime(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	active := ""
	rt, err := app.Default.GetRuntime()
	if err != nil {
		fmt.Fprintf(out, "Detection failed: %s\n", err)
	} else {
		active = rt.Name()
		fmt.Fprintf(out, "Active runtime: %s\n", active)
	}

	fmt.Fprintln(out)

	available := runtime.Available()
	fmt.Fprintln(out, "Available runtimes:")
	if len(available) == 0 {
		fmt.Fprintln(out, "  (none)")
	} else {
		for _, name := range available {
			marker := "  "
			if string(name) == active {
				marker = "* "
			}
			fmt.Fprintf(out, "%s%s\n", marker, name)
		}
	}

	return nil
}
