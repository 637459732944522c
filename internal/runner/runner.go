// Package runner explores the members of a package and collects findings.
package runner

import (
	"cmp"
	"context"
	"go/ast"
	"go/types"
	"log/slog"
	"runtime"
	"slices"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/mpyw/pathcheck/internal/cfg"
	"github.com/mpyw/pathcheck/internal/checks"
	"github.com/mpyw/pathcheck/internal/engine"
	"github.com/mpyw/pathcheck/internal/gosyntax"
	"github.com/mpyw/pathcheck/internal/liveness"
	"github.com/mpyw/pathcheck/internal/registry"
	"github.com/mpyw/pathcheck/internal/telemetry"
)

const tracerName = "github.com/mpyw/pathcheck/internal/runner"

// Member is one function body to explore.
type Member struct {
	Name string
	Decl ast.Node // *ast.FuncDecl or *ast.FuncLit
}

// Report is the result of exploring one member.
type Report struct {
	Member   Member
	Result   engine.Result
	Findings []checks.Finding

	// Err is set when the member could not be explored to the end.
	Err error
}

// Options configures a Runner. The zero value runs the default checks with
// the engine defaults.
type Options struct {
	Registry *registry.Registry
	Enabled  map[string]bool // resolved by Registry.Enabled when nil

	MaxSteps       int
	MaxBlockVisits int

	// Workers bounds concurrent members. Zero means one per CPU.
	Workers int

	NilCheckFuncs []checks.FuncMatcher

	Logger  *slog.Logger
	Metrics *telemetry.Metrics // optional
	Tracer  trace.Tracer
}

// Runner explores members with a shared configuration. It is safe for
// concurrent use.
type Runner struct {
	opts Options
}

// New creates a Runner.
func New(opts Options) *Runner {
	if opts.Registry == nil {
		opts.Registry = registry.Default()
	}
	if opts.Enabled == nil {
		opts.Enabled = opts.Registry.Enabled(nil)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(tracerName)
	}
	return &Runner{opts: opts}
}

// Run explores members concurrently and returns their findings ordered by
// position. A member that fails is logged and skipped; only cancellation of
// ctx is returned as an error.
func (r *Runner) Run(ctx context.Context, info *types.Info, members []Member) ([]checks.Finding, error) {
	reports := make([]Report, len(members))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, m := range members {
		g.Go(func() error {
			reports[i] = r.RunMember(gctx, info, m)
			return nil
		})
	}
	_ = g.Wait()

	var findings []checks.Finding
	for _, rep := range reports {
		findings = append(findings, rep.Findings...)
	}
	slices.SortStableFunc(findings, func(a, b checks.Finding) int {
		return cmp.Compare(a.Pos, b.Pos)
	})
	return findings, ctx.Err()
}

// RunMember explores one member: lowering, graph construction, liveness and
// the walk with a fresh set of checks.
func (r *Runner) RunMember(ctx context.Context, info *types.Info, m Member) Report {
	ctx, span := r.opts.Tracer.Start(ctx, "Runner.RunMember",
		trace.WithAttributes(attribute.String("pathcheck.member", m.Name)),
	)
	defer span.End()

	logger := r.opts.Logger.With(slog.String("member", m.Name))
	rep := Report{Member: m}

	fn, res, err := gosyntax.Lower(info, m.Decl)
	if err != nil {
		rep.Err = err
		if errors.Is(err, gosyntax.ErrNoBody) {
			r.opts.Metrics.RecordSkipped("no_body")
			return rep
		}
		r.skip(span, logger, "unsupported", err)
		return rep
	}

	g, err := cfg.Build(fn)
	if err != nil {
		rep.Err = err
		r.skip(span, logger, "invalid_body", err)
		return rep
	}
	live := liveness.Analyze(g, res)

	ex := engine.New(g, live,
		engine.WithMaxSteps(r.opts.MaxSteps),
		engine.WithMaxBlockVisits(r.opts.MaxBlockVisits),
		engine.WithResolver(res),
		engine.WithLogger(logger),
	)
	collector := checks.NewCollector()
	env := checks.Env{
		Factory:       ex.Factory(),
		Resolver:      res,
		Callees:       res,
		Collector:     collector,
		NilCheckFuncs: r.opts.NilCheckFuncs,
	}
	for _, c := range r.opts.Registry.Build(env, r.opts.Enabled) {
		ex.AddCheck(c)
	}

	result, err := ex.Walk(ctx)
	rep.Result = result
	span.SetAttributes(
		attribute.Int("pathcheck.steps", result.Steps),
		attribute.String("pathcheck.outcome", result.Outcome.String()),
	)
	if err != nil {
		// The walk logged the fault; findings up to it are dropped with the
		// member.
		rep.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.opts.Metrics.RecordFault()
		return rep
	}
	r.opts.Metrics.RecordExploration(result.Outcome.String(), result.Steps)

	rep.Findings = collector.Findings()
	for _, f := range rep.Findings {
		r.opts.Metrics.RecordFinding(f.Check)
	}
	span.SetAttributes(attribute.Int("pathcheck.findings", len(rep.Findings)))
	return rep
}

func (r *Runner) skip(span trace.Span, logger *slog.Logger, reason string, err error) {
	logger.Warn("member skipped", slog.String("reason", reason), slog.Any("error", err))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	r.opts.Metrics.RecordSkipped(reason)
}
