package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/pathcheck/internal/cfg"
	"github.com/mpyw/pathcheck/internal/gosyntax"
	"github.com/mpyw/pathcheck/internal/runner"
)

// cfgFunc and cfgOutput hold flag values for the cfg command.
var (
	cfgFunc   string
	cfgOutput string
)

func newCFGCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cfg [packages]",
		Short: "Print the control flow graph of a function in DOT format",
		Example: `  pathgraph cfg --func Load ./internal/config
  pathgraph cfg --func '(*Runner).RunMember' -o runner.dot ./internal/runner`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCFGCommand,
	}
	cmd.Flags().StringVarP(&cfgFunc, "func", "f", "", "function name: F, T.M or (*T).M; literals as F.func1")
	cmd.Flags().StringVarP(&cfgOutput, "output", "o", "", "write to this file instead of stdout")
	_ = cmd.MarkFlagRequired("func")
	return cmd
}

func runCFGCommand(cmd *cobra.Command, args []string) error {
	pkgs, err := load(args)
	if err != nil {
		return err
	}

	for _, pkg := range pkgs {
		for _, m := range runner.Members(inspector.New(pkg.Syntax), nil) {
			if m.Name != cfgFunc {
				continue
			}
			fn, _, err := gosyntax.Lower(pkg.TypesInfo, m.Decl)
			if err != nil {
				return err
			}
			g, err := cfg.Build(fn)
			if err != nil {
				return errors.Wrapf(err, "building graph of %s", m.Name)
			}
			return writeOutput(cmd.OutOrStdout(), func(w io.Writer) error {
				return cfg.WriteDOT(w, g, pkg.PkgPath+"."+m.Name)
			})
		}
	}
	return errors.Errorf("function %s not found", cfgFunc)
}

func writeOutput(stdout io.Writer, write func(io.Writer) error) error {
	if cfgOutput == "" {
		return write(stdout)
	}
	f, err := os.Create(cfgOutput)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
