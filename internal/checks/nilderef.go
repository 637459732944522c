package checks

import (
	"github.com/mpyw/pathcheck/internal/engine"
	"github.com/mpyw/pathcheck/internal/symbolic"
	"github.com/mpyw/pathcheck/internal/syntax"
)

// NilDeref reports dereferences of values that are nil on the current path.
// A reported path is pruned; on the others the target is known to be
// non-nil afterwards.
type NilDeref struct {
	env Env
}

// NewNilDeref returns the check for one member.
func NewNilDeref(env Env) *NilDeref {
	return &NilDeref{env: env}
}

// PreProcessInstruction implements engine.Check.
func (c *NilDeref) PreProcessInstruction(p engine.ProgramPoint, s *symbolic.ProgramState) *symbolic.ProgramState {
	switch n := p.Instruction().(type) {
	case *syntax.MemberAccess:
		if n.NilSafe {
			return s
		}
		return c.dereference(n, n.X, s.PeekValue(), s)

	case *syntax.Unary:
		if n.Op != syntax.OpDeref {
			return s
		}
		return c.dereference(n, n.X, s.PeekValue(), s)

	case *syntax.Assign:
		if n.Compound {
			// The target was already read, and checked, as an operand.
			return s
		}
		// Stack: target operand, then the assigned value.
		switch t := syntax.Unparen(n.Lhs).(type) {
		case *syntax.MemberAccess:
			if !t.NilSafe {
				return c.dereference(t, t.X, s.PeekValueAt(1), s)
			}
		case *syntax.Unary:
			if t.Op == syntax.OpDeref {
				return c.dereference(t, t.X, s.PeekValueAt(1), s)
			}
		}
	}
	return s
}

func (c *NilDeref) dereference(at syntax.Node, target syntax.Expr, v symbolic.Value, s *symbolic.ProgramState) *symbolic.ProgramState {
	if s.HasConstraint(v, symbolic.Null) {
		c.env.Collector.Reportf(NilDerefName, at.Pos(), "nil dereference of %s", syntax.String(target))
		return nil
	}
	if states := symbolic.TrySetConstraint(v, symbolic.NotNull, s); len(states) > 0 {
		return states[0]
	}
	return s
}
