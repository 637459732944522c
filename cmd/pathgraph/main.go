// Command pathgraph inspects how pathcheck sees a package: the control flow
// graph of a function, or a full exploration with its metrics.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	tests   bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "pathgraph",
		Short:         "Inspect control flow graphs and explorations of Go functions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log exploration details")
	root.PersistentFlags().BoolVar(&tests, "tests", false, "include test files")

	root.AddCommand(newCFGCommand(), newExploreCommand())
	return root
}
