package main

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/pathcheck/internal/checks"
	"github.com/mpyw/pathcheck/internal/config"
	"github.com/mpyw/pathcheck/internal/directives/nilcheck"
	"github.com/mpyw/pathcheck/internal/registry"
	"github.com/mpyw/pathcheck/internal/runner"
	"github.com/mpyw/pathcheck/internal/telemetry"
)

// exploreConfig and exploreMetricsFile hold flag values for the explore command.
var (
	exploreConfig      string
	exploreMetricsFile string
)

func newExploreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [packages]",
		Short: "Explore every function and print findings with exploration statistics",
		Example: `  pathgraph explore ./...
  pathgraph explore --config pathcheck.yaml --metrics-file pathcheck.prom ./...`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExploreCommand,
	}
	cmd.Flags().StringVar(&exploreConfig, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&exploreMetricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file")
	return cmd
}

func runExploreCommand(cmd *cobra.Command, args []string) error {
	conf, err := config.Load(exploreConfig)
	if err != nil {
		return err
	}
	pkgs, err := load(args)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)

	checkers := registry.Default()
	enabled := checkers.Enabled(conf.Checks)

	out := cmd.OutOrStdout()
	total := 0
	for _, pkg := range pkgs {
		helpers := nilcheck.Build(pkg.Fset, pkg.TypesInfo, pkg.Syntax, conf.NilCheckFuncs)
		r := runner.New(runner.Options{
			Registry:       checkers,
			Enabled:        enabled,
			MaxSteps:       conf.Limits.MaxSteps,
			MaxBlockVisits: conf.Limits.MaxBlockVisits,
			Workers:        conf.Workers,
			NilCheckFuncs:  []checks.FuncMatcher{helpers},
			Logger:         slog.Default().With(slog.String("package", pkg.PkgPath)),
			Metrics:        metrics,
		})

		members := runner.Members(inspector.New(pkg.Syntax), nil)
		findings, err := r.Run(cmd.Context(), pkg.TypesInfo, members)
		if err != nil {
			return err
		}
		slog.Debug("package explored",
			slog.String("package", pkg.PkgPath),
			slog.Int("members", len(members)),
			slog.Int("findings", len(findings)),
		)
		for _, f := range findings {
			fmt.Fprintf(out, "%s: %s (%s)\n", pkg.Fset.Position(f.Pos), f.Message, f.Check)
		}
		total += len(findings)
	}
	fmt.Fprintf(out, "%d findings in %d packages\n", total, len(pkgs))

	if exploreMetricsFile != "" {
		if err := prometheus.WriteToTextfile(exploreMetricsFile, reg); err != nil {
			return errors.Wrap(err, "writing metrics")
		}
	}
	return nil
}
