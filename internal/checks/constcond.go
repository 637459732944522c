package checks

import (
	"github.com/mpyw/pathcheck/internal/engine"
	"github.com/mpyw/pathcheck/internal/symbolic"
	"github.com/mpyw/pathcheck/internal/syntax"
)

const (
	seenTrue uint8 = 1 << iota
	seenFalse
)

// ConstCond reports conditions that only ever took one value. It relies on
// a completed exploration: a walk stopped by a cap reports nothing.
type ConstCond struct {
	env      Env
	order    []syntax.Expr
	outcomes map[syntax.Expr]uint8
}

// NewConstCond returns the check for one member.
func NewConstCond(env Env) *ConstCond {
	return &ConstCond{env: env, outcomes: make(map[syntax.Expr]uint8)}
}

// PreProcessInstruction implements engine.Check.
func (c *ConstCond) PreProcessInstruction(_ engine.ProgramPoint, s *symbolic.ProgramState) *symbolic.ProgramState {
	return s
}

// ConditionEvaluated implements engine.ConditionObserver.
func (c *ConstCond) ConditionEvaluated(cond syntax.Expr, value bool) {
	if _, ok := c.outcomes[cond]; !ok {
		c.order = append(c.order, cond)
	}
	if value {
		c.outcomes[cond] |= seenTrue
	} else {
		c.outcomes[cond] |= seenFalse
	}
}

// ExplorationEnded implements engine.EndObserver.
func (c *ConstCond) ExplorationEnded() {
	for _, cond := range c.order {
		if _, ok := syntax.Unparen(cond).(*syntax.Literal); ok {
			continue
		}
		switch c.outcomes[cond] {
		case seenTrue:
			c.env.Collector.Reportf(ConstCondName, cond.Pos(), "condition %s is always true", syntax.String(cond))
		case seenFalse:
			c.env.Collector.Reportf(ConstCondName, cond.Pos(), "condition %s is always false", syntax.String(cond))
		}
	}
}
