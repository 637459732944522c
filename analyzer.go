// Package pathcheck provides a go/analysis based analyzer that explores every
// path through a function and reports dereferences of nil values.
package pathcheck

import (
	"context"
	"errors"
	"flag"
	"go/ast"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/pathcheck/internal/checks"
	"github.com/mpyw/pathcheck/internal/config"
	"github.com/mpyw/pathcheck/internal/directives/ignore"
	"github.com/mpyw/pathcheck/internal/directives/nilcheck"
	"github.com/mpyw/pathcheck/internal/engine"
	"github.com/mpyw/pathcheck/internal/registry"
	"github.com/mpyw/pathcheck/internal/runner"
)

// Flags for the analyzer.
var (
	configPath     string
	maxSteps       int
	maxBlockVisits int
	workers        int
	nilCheckFuncs  string
	debug          bool

	// Checker enable/disable flags.
	enableNilDeref  bool
	enableConstCond bool
)

func init() {
	// Assigned here rather than in the literal to break the initialization
	// cycle Analyzer -> run -> loadConfig -> Analyzer.
	Analyzer.Run = run

	Analyzer.Flags.StringVar(&configPath, "config", "",
		"path to a YAML configuration file; flags set explicitly take precedence")
	Analyzer.Flags.IntVar(&maxSteps, "max-steps", engine.DefaultMaxSteps,
		"number of exploration steps per function before giving up")
	Analyzer.Flags.IntVar(&maxBlockVisits, "max-block-visits", engine.DefaultMaxBlockVisits,
		"number of times one path may enter the same block")
	Analyzer.Flags.IntVar(&workers, "workers", 0,
		"functions explored concurrently per package (0 = one per CPU)")
	Analyzer.Flags.StringVar(&nilCheckFuncs, "nilcheck-funcs", "",
		"comma-separated list of helpers returning whether their argument is nil (e.g., pkg.Func or pkg.Type.Method)")
	Analyzer.Flags.BoolVar(&debug, "debug", false, "log exploration details to stderr")

	// Checker flags
	Analyzer.Flags.BoolVar(&enableNilDeref, "nilderef", true, "enable nilderef checker")
	Analyzer.Flags.BoolVar(&enableConstCond, "constcond", false, "enable constcond checker")
}

// Analyzer is the main analyzer for pathcheck.
var Analyzer = &analysis.Analyzer{
	Name:     "pathcheck",
	Doc:      "explores every path through each function and reports dereferences of values that may be nil",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Flags:    flag.FlagSet{},
}

var ErrNoInspector = errors.New("inspector analyzer result not found")

func run(pass *analysis.Pass) (any, error) {
	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, ErrNoInspector
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// Build set of files to skip
	skipFiles := buildSkipFiles(pass)

	// Build ignore maps for each file (excluding skipped files)
	ignoreMaps := buildIgnoreMaps(pass, skipFiles)

	reg := registry.Default()
	enabled := reg.Enabled(cfg.Checks)

	// Build nil-check helper map from //pathcheck:nilcheck directives and -nilcheck-funcs
	helpers := nilcheck.Build(pass.Fset, pass.TypesInfo, analyzedFiles(pass, skipFiles), cfg.NilCheckFuncs)

	r := runner.New(runner.Options{
		Registry:       reg,
		Enabled:        enabled,
		MaxSteps:       cfg.Limits.MaxSteps,
		MaxBlockVisits: cfg.Limits.MaxBlockVisits,
		Workers:        cfg.Workers,
		NilCheckFuncs:  []checks.FuncMatcher{helpers},
		Logger:         newLogger().With(slog.String("package", pass.Pkg.Path())),
	})

	members := runner.Members(insp, func(n ast.Node) bool {
		return skipFiles[pass.Fset.Position(n.Pos()).Filename]
	})

	findings, err := r.Run(context.Background(), pass.TypesInfo, members)
	if err != nil {
		return nil, err
	}

	// Ignore maps track usage, so filtering stays on this goroutine.
	for _, f := range findings {
		if shouldIgnore(pass, ignoreMaps, f) {
			continue
		}
		pass.Reportf(f.Pos, "%s", f.Message)
	}

	// Report unused ignore directives
	reportUnusedIgnores(pass, ignoreMaps, buildEnabledCheckers(enabled), ignore.Known(reg.Names()))

	return nil, nil
}

// loadConfig reads -config and applies the flags set on the command line
// on top of it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Checks == nil {
		cfg.Checks = make(map[string]bool)
	}

	Analyzer.Flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-steps":
			cfg.Limits.MaxSteps = maxSteps
		case "max-block-visits":
			cfg.Limits.MaxBlockVisits = maxBlockVisits
		case "workers":
			cfg.Workers = workers
		case "nilcheck-funcs":
			cfg.NilCheckFuncs = strings.Split(nilCheckFuncs, ",")
		case "nilderef":
			cfg.Checks[checks.NilDerefName] = enableNilDeref
		case "constcond":
			cfg.Checks[checks.ConstCondName] = enableConstCond
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	if !debug {
		return slog.Default()
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped.
// Test files can be skipped via the driver's built-in -test flag.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename

		// Always skip generated files
		if ast.IsGenerated(file) {
			skipFiles[filename] = true
		}
	}

	return skipFiles
}

// buildIgnoreMaps creates ignore maps for each file in the pass.
func buildIgnoreMaps(pass *analysis.Pass, skipFiles map[string]bool) map[string]ignore.Map {
	ignoreMaps := make(map[string]ignore.Map)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		ignoreMaps[filename] = ignore.Build(pass.Fset, file)
	}

	return ignoreMaps
}

// analyzedFiles returns the files of the pass that are not skipped.
func analyzedFiles(pass *analysis.Pass, skipFiles map[string]bool) []*ast.File {
	var files []*ast.File
	for _, file := range pass.Files {
		if !skipFiles[pass.Fset.Position(file.Pos()).Filename] {
			files = append(files, file)
		}
	}
	return files
}

// shouldIgnore checks if the finding is suppressed by a directive.
func shouldIgnore(pass *analysis.Pass, ignoreMaps map[string]ignore.Map, f checks.Finding) bool {
	pos := pass.Fset.Position(f.Pos)
	ignoreMap, ok := ignoreMaps[pos.Filename]
	if !ok {
		return false
	}
	return ignoreMap.ShouldIgnore(pos.Line, ignore.CheckerName(f.Check))
}

// buildEnabledCheckers creates a map of which checkers are enabled.
func buildEnabledCheckers(enabled map[string]bool) ignore.EnabledCheckers {
	out := make(ignore.EnabledCheckers)
	for name, on := range enabled {
		if on {
			out[ignore.CheckerName(name)] = true
		}
	}
	return out
}

// reportUnusedIgnores reports ignore directives that suppressed nothing or
// name checks that do not exist.
func reportUnusedIgnores(pass *analysis.Pass, ignoreMaps map[string]ignore.Map, enabled ignore.EnabledCheckers, known ignore.KnownCheckers) {
	for _, ignoreMap := range ignoreMaps {
		for _, unused := range ignoreMap.GetUnusedIgnores(enabled, known) {
			if len(unused.Unknown) > 0 {
				pass.Reportf(unused.Pos, "unknown checker(s) in pathcheck:ignore directive: %s", joinNames(unused.Unknown))
			}
			switch {
			case len(unused.Checkers) > 0:
				pass.Reportf(unused.Pos, "unused pathcheck:ignore directive for checker(s): %s", joinNames(unused.Checkers))
			case len(unused.Unknown) == 0:
				pass.Reportf(unused.Pos, "unused pathcheck:ignore directive")
			}
		}
	}
}

func joinNames(names []ignore.CheckerName) string {
	s := make([]string, len(names))
	for i, n := range names {
		s[i] = string(n)
	}
	return strings.Join(s, ", ")
}
