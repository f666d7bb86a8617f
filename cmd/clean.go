package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/sb/internal/app"
	"github.com/firefly-engineering/sb/internal/logging"
	"github.com/firefly-engineering/sb/internal/sandbox"
)

const (
	hardCleanWarning  = "⚠️  WARNING: --hard will remove ALL sandbox artifacts including persistent data!"
	hardCleanQuestion = "Are you sure you want to continue? (y/N):"
)

var cleanHard bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove sandbox container and artifacts",
	Long: `Stop and remove the sandbox container and remove the sandbox image.

With --hard the persistent home volume shared by every sandbox is removed
too, after confirmation. Each step is attempted even when an earlier one
fails; clean always exits 0.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanHard, "hard", false, "Also remove persistent volume (with confirmation)")
	rootCmd.AddCommand(cleanCmd)
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	boldStyle = lipgloss.NewStyle().Bold(true)
)

func runClean(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if cleanHard {
		ok, err := app.Default.Prompter.Confirm(hardCleanWarning, hardCleanQuestion)
		if err != nil {
			logging.Debug("confirmation failed", "error", err)
		}
		if err != nil || !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	rt, err := app.Default.GetRuntime()
	if err != nil {
		logWarning("Cannot clean sandbox artifacts: %v", err)
		return nil
	}

	fmt.Fprintln(out, boldStyle.Render("🧹 Cleaning sandbox artifacts..."))
	report := sandbox.Clean(context.Background(), rt, cleanHard)
	printReport(out, report)
	fmt.Fprintln(out, okStyle.Render("✅ Sandbox cleanup completed!"))

	if n := report.Failed(); n > 0 {
		logging.Debug("teardown finished with failures", "failed", n)
	}
	return nil
}

func printReport(w io.Writer, report *sandbox.Report) {
	for _, res := range report.Results {
		switch res.Outcome {
		case sandbox.OutcomeOK:
			fmt.Fprintln(w, okStyle.Render("✅ "+res.Detail))
		case sandbox.OutcomeFailed:
			fmt.Fprintln(w, warnStyle.Render("⚠️  "+res.Detail))
		default:
			fmt.Fprintln(w, res.Detail)
		}
	}
}
