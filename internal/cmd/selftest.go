package cmd

import (
	"fmt"
	"io"

	"github.com/Digital-Shane/torrent-tidy/internal/core"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newSelfTestCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "self-test",
		Short: "Check the filename parser against known release names",
		Long: `Runs the built-in movie and show cases and prints PASSED or FAILED for each.
Show cases query the configured lookup provider.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelfTest(cmd, opts)
		},
	}
}

func runSelfTest(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	rt, err := opts.newRunEnv(cmd, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	out := cmd.OutOrStdout()
	renderer := lipgloss.NewRenderer(out)
	passed := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Render("PASSED")
	failed := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("1")).Render("FAILED")

	fmt.Fprintln(out, "---Testing Movies---")
	failures := printResults(out, core.SelfTestMovies(core.MovieSelfTests), passed, failed)

	fmt.Fprintln(out, "---Testing Shows---")
	failures += printResults(out, rt.processor.SelfTestShows(cmd.Context(), core.ShowSelfTests), passed, failed)

	if failures > 0 {
		return fmt.Errorf("%d self-test case%s failed", failures, plural(failures))
	}
	return nil
}

func printResults(out io.Writer, results []core.SelfTestResult, passed, failed string) int {
	failures := 0
	for _, r := range results {
		switch {
		case r.Passed:
			fmt.Fprintln(out, passed, r.Got)
		case r.Err != nil:
			failures++
			fmt.Fprintln(out, failed, r.Case.Input, "->", r.Err)
		default:
			failures++
			fmt.Fprintln(out, failed, r.Got)
		}
	}
	return failures
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
