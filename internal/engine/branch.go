package engine

import (
	"github.com/mpyw/pathcheck/internal/cfg"
	"github.com/mpyw/pathcheck/internal/symbolic"
	"github.com/mpyw/pathcheck/internal/syntax"
)

// processBlockEnd leaves b along its successors.
func (e *Explorer) processBlockEnd(b *cfg.Block, s *symbolic.ProgramState) {
	switch b.Kind {
	case cfg.BinaryBranch:
		e.processBinaryBranch(b, s)
		return
	case cfg.Branch:
		if sw, ok := b.BranchingNode.(*syntax.Switch); ok && sw.Tag != nil {
			s, _ = s.PopValue()
		}
	case cfg.Jump:
		s, _ = s.PopValues(jumpArity(b.JumpNode))
	case cfg.ForeachCollectionProducer:
		s, _ = s.PopValue()
	}

	for _, succ := range b.Successors() {
		e.enqueueBlock(succ, s)
	}
}

// jumpArity is the number of values a jump statement consumes.
func jumpArity(n syntax.Node) int {
	switch n := n.(type) {
	case *syntax.Return:
		if n.Value != nil {
			return 1
		}
	case *syntax.Throw:
		if n.Value != nil {
			return 1
		}
	case *syntax.Using:
		if n.Resource != nil {
			return 1
		}
	case *syntax.Lock:
		return 1
	}
	return 0
}

func (e *Explorer) processBinaryBranch(b *cfg.Block, s *symbolic.ProgramState) {
	whenTrue, whenFalse := b.TrueSuccessor(), b.FalseSuccessor()

	switch n := b.BranchingNode.(type) {
	case *syntax.ForEach:
		e.enqueueBlock(whenTrue, s)
		e.enqueueBlock(whenFalse, s)

	case *syntax.Coalesce:
		s, v := s.PopValue()
		for _, st := range symbolic.TrySetConstraint(v, symbolic.Null, s) {
			e.enqueueBlock(whenTrue, st)
		}
		for _, st := range symbolic.TrySetConstraint(v, symbolic.NotNull, s) {
			e.enqueueBlock(whenFalse, st.PushValue(v))
		}

	case *syntax.ConditionalAccess:
		s, v := s.PopValue()
		for _, st := range symbolic.TrySetConstraint(v, symbolic.Null, s) {
			e.enqueueBlock(whenTrue, st.PushValue(symbolic.NullValue))
		}
		for _, st := range symbolic.TrySetConstraint(v, symbolic.NotNull, s) {
			e.enqueueBlock(whenFalse, st.PushValue(v))
		}

	case *syntax.Binary:
		// && pushes false when it skips its right operand, || pushes true.
		s, v := s.PopValue()
		for _, st := range e.assume(n.Left, v, true, s) {
			if n.Op == syntax.OpOrElse {
				st = st.PushValue(symbolic.TrueValue)
			}
			e.enqueueBlock(whenTrue, st)
		}
		for _, st := range e.assume(n.Left, v, false, s) {
			if n.Op == syntax.OpAndAlso {
				st = st.PushValue(symbolic.FalseValue)
			}
			e.enqueueBlock(whenFalse, st)
		}

	default:
		cond := condition(b.BranchingNode)
		s, v := s.PopValue()
		for _, st := range e.assume(cond, v, true, s) {
			e.enqueueBlock(whenTrue, st)
		}
		for _, st := range e.assume(cond, v, false, s) {
			e.enqueueBlock(whenFalse, st)
		}
	}
}

// assume splits s on v being value and reports the condition when feasible.
func (e *Explorer) assume(cond syntax.Expr, v symbolic.Value, value bool, s *symbolic.ProgramState) []*symbolic.ProgramState {
	states := symbolic.TrySetConstraint(v, symbolic.BoolConstraint(value), s)
	if len(states) > 0 && cond != nil {
		e.conditionEvaluated(cond, value)
	}
	return states
}

// condition returns the expression deciding a binary branch.
func condition(n syntax.Node) syntax.Expr {
	switch n := n.(type) {
	case *syntax.If:
		return n.Cond
	case *syntax.While:
		return n.Cond
	case *syntax.Do:
		return n.Cond
	case *syntax.For:
		return n.Cond
	case *syntax.Conditional:
		return n.Cond
	case syntax.Expr:
		return n
	}
	return nil
}
