package engine

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/mpyw/pathcheck/internal/cfg"
	"github.com/mpyw/pathcheck/internal/liveness"
	"github.com/mpyw/pathcheck/internal/symbolic"
	"github.com/mpyw/pathcheck/internal/syntax"
)

// Explorer walks the exploded graph of one body. It is single-use and not
// safe for concurrent use.
type Explorer struct {
	graph    *cfg.Graph
	live     *liveness.Result
	opts     Options
	factory  *symbolic.Factory
	resolver syntax.Resolver
	logger   *slog.Logger

	checks     []Check
	processors []InstructionProcessor
	listeners  []*Listener

	queue   []Node
	visited map[visitKey][]*symbolic.ProgramState
	current ProgramPoint

	// cut counts paths dropped by the block visit cap.
	cut int
}

type visitKey struct {
	block  int
	offset int
	hash   uint64
}

// New returns an Explorer for g. live must be the liveness of g computed with
// the same resolver.
func New(g *cfg.Graph, live *liveness.Result, opts ...Option) *Explorer {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Explorer{
		graph:    g,
		live:     live,
		opts:     o,
		factory:  symbolic.NewFactory(),
		resolver: o.Resolver,
		logger:   o.Logger,
		visited:  make(map[visitKey][]*symbolic.ProgramState),
	}
}

// Graph returns the explored graph.
func (e *Explorer) Graph() *cfg.Graph { return e.graph }

// Factory returns the run's value factory, for checks that create values.
func (e *Explorer) Factory() *symbolic.Factory { return e.factory }

// Resolver returns the symbol resolver.
func (e *Explorer) Resolver() syntax.Resolver { return e.resolver }

// AddCheck registers c. Checks run in registration order. Observer interfaces
// implemented by c are subscribed for the run.
func (e *Explorer) AddCheck(c Check) {
	e.checks = append(e.checks, c)
	if p, ok := c.(InstructionProcessor); ok {
		e.processors = append(e.processors, p)
	}

	var (
		l       Listener
		observe bool
	)
	if o, ok := c.(InstructionObserver); ok {
		l.InstructionProcessed, observe = o.InstructionProcessed, true
	}
	if o, ok := c.(ConditionObserver); ok {
		l.ConditionEvaluated, observe = o.ConditionEvaluated, true
	}
	if o, ok := c.(EndObserver); ok {
		l.ExplorationEnded, observe = o.ExplorationEnded, true
	}
	if observe {
		e.Subscribe(l)
	}
}

// Subscribe adds a listener and returns the function removing it.
func (e *Explorer) Subscribe(l Listener) (unsubscribe func()) {
	ref := &l
	e.listeners = append(e.listeners, ref)
	return func() {
		for i, x := range e.listeners {
			if x == ref {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// Walk explores the graph until the worklist is empty, a cap is reached or
// ctx is done. Only faults are returned as errors. ExplorationEnded fires
// only for a Completed walk.
func (e *Explorer) Walk(ctx context.Context) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = e.fault(r)
		}
	}()

	initial := symbolic.NewProgramState()
	e.enqueueBlock(e.graph.Entry, initial)

	for len(e.queue) > 0 {
		if ctx.Err() != nil {
			res.Outcome = Cancelled
			e.logger.Debug("exploration cancelled", slog.Int("steps", res.Steps))
			return res, nil
		}
		if res.Steps >= e.opts.MaxSteps {
			res.Outcome = StepLimit
			e.logger.Debug("exploration step limit reached",
				slog.Int("steps", res.Steps),
				slog.Int("pending", len(e.queue)),
			)
			return res, nil
		}

		node := e.queue[0]
		e.queue[0] = Node{}
		e.queue = e.queue[1:]
		res.Steps++

		if err := e.process(node); err != nil {
			return res, err
		}
	}

	if e.cut > 0 {
		res.Outcome = VisitLimit
		e.logger.Debug("exploration visit limit reached",
			slog.Int("steps", res.Steps),
			slog.Int("cut", e.cut),
		)
		return res, nil
	}

	res.Outcome = Completed
	for _, l := range e.listeners {
		if l.ExplorationEnded != nil {
			l.ExplorationEnded()
		}
	}
	return res, nil
}

func (e *Explorer) fault(r any) error {
	instr := e.current.Instruction()
	var cause error
	switch r := r.(type) {
	case error:
		cause = errors.WithStack(r)
	default:
		cause = errors.Errorf("panic: %v", r)
	}
	fe := &FaultError{Point: e.current, Instruction: instr, Err: cause}
	e.logger.Warn("engine fault",
		slog.String("point", e.current.String()),
		slog.Any("error", cause),
	)
	return fe
}

func (e *Explorer) process(n Node) error {
	p := n.Point
	e.current = p
	if p.Block.Kind == cfg.Exit {
		if d := n.State.StackDepth(); d != 0 {
			e.logger.Warn("exit reached with values on the stack", slog.Int("depth", d))
		}
		return nil
	}

	instr := p.Instruction()
	if instr == nil {
		e.processBlockEnd(p.Block, n.State)
		return nil
	}

	s := n.State
	for _, c := range e.checks {
		if s = c.PreProcessInstruction(p, s); s == nil {
			return nil
		}
	}

	s, err := e.processInstruction(instr, s)
	if err != nil {
		return e.fault(err)
	}
	if s == nil {
		return nil
	}

	for _, l := range e.listeners {
		if l.InstructionProcessed != nil {
			l.InstructionProcessed(instr, p, s)
		}
	}

	if e.graph.IsStatement(instr) {
		s, _ = s.PopValue()
	}
	e.enqueue(p.next(), s)
	return nil
}

func (e *Explorer) processInstruction(instr syntax.Node, s *symbolic.ProgramState) (*symbolic.ProgramState, error) {
	for _, p := range e.processors {
		if next, ok := p.TryProcessInstruction(instr, s); ok {
			return next, nil
		}
	}
	return e.transfer(instr, s)
}

func (e *Explorer) conditionEvaluated(cond syntax.Expr, value bool) {
	for _, l := range e.listeners {
		if l.ConditionEvaluated != nil {
			l.ConditionEvaluated(cond, value)
		}
	}
}

// enqueue schedules (p, s) unless the pair was already seen.
func (e *Explorer) enqueue(p ProgramPoint, s *symbolic.ProgramState) {
	if e.seen(p, s) {
		return
	}
	key := visitKey{block: p.Block.ID, offset: p.Offset, hash: s.Hash()}
	e.visited[key] = append(e.visited[key], s)
	e.queue = append(e.queue, Node{Point: p, State: s})
}

func (e *Explorer) seen(p ProgramPoint, s *symbolic.ProgramState) bool {
	key := visitKey{block: p.Block.ID, offset: p.Offset, hash: s.Hash()}
	for _, prev := range e.visited[key] {
		if prev.Equal(s) {
			return true
		}
	}
	return false
}

// enqueueBlock moves s onto the start of b: dead symbols are dropped and the
// per-path visit cap is applied. A capped path whose state was already
// explored at b loses nothing and is not counted as cut.
func (e *Explorer) enqueueBlock(b *cfg.Block, s *symbolic.ProgramState) {
	s = s.RemoveSymbols(func(sym syntax.Symbol) bool {
		return e.live.IsLiveIn(b, sym)
	})
	p := ProgramPoint{Block: b}
	if s.Visits(b.ID) >= e.opts.MaxBlockVisits {
		if !e.seen(p, s) {
			e.cut++
		}
		return
	}
	e.enqueue(p, s.WithVisit(b.ID))
}
