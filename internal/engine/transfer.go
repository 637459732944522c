package engine

import (
	"github.com/pkg/errors"

	"github.com/mpyw/pathcheck/internal/symbolic"
	"github.com/mpyw/pathcheck/internal/syntax"
)

// transfer applies the default semantics of instr. Every expression pushes
// exactly one value; declarations and foreach bindings push none.
func (e *Explorer) transfer(instr syntax.Node, s *symbolic.ProgramState) (*symbolic.ProgramState, error) {
	f := e.factory

	switch n := instr.(type) {
	case *syntax.Ident:
		s, v := e.read(n, s)
		return s.PushValue(v), nil

	case *syntax.Literal:
		switch n.Kind {
		case syntax.LitNull:
			return s.PushValue(symbolic.NullValue), nil
		case syntax.LitTrue:
			return s.PushValue(symbolic.TrueValue), nil
		case syntax.LitFalse:
			return s.PushValue(symbolic.FalseValue), nil
		}
		return e.pushNotNull(s), nil

	case *syntax.Unary:
		return e.transferUnary(n, s), nil

	case *syntax.Binary:
		if n.Op.IsShortCircuit() {
			break
		}
		return e.transferBinary(n, s), nil

	case *syntax.Assign:
		return e.transferAssign(n, s), nil

	case *syntax.TupleAssign:
		s, rhs := s.PopValues(len(n.Rhs))
		for i := len(n.Lhs) - 1; i >= 0; i-- {
			if n.Lhs[i] == nil {
				continue
			}
			var targets []symbolic.Value
			s, targets = s.PopValues(len(syntax.TargetOperands(n.Lhs[i])))
			var v symbolic.Value = f.Plain()
			if len(rhs) == len(n.Lhs) {
				v = rhs[i]
			}
			s = e.store(n.Lhs[i], targets, v, s)
		}
		return s.PushValue(f.Plain()), nil

	case *syntax.IncDec:
		s, _ = s.PopValue()
		v := f.Plain()
		s = e.storeRead(n.X, v, s)
		return s.SetConstraint(v, symbolic.NotNull).PushValue(v), nil

	case *syntax.MemberAccess:
		s, target := s.PopValue()
		return e.member(target, n.Name, s), nil

	case *syntax.ElementAccess:
		s, _ = s.PopValues(2)
		return s.PushValue(f.Plain()), nil

	case *syntax.Invocation:
		s, _ = s.PopValues(len(n.Args) + 1)
		return e.havoc(s).PushValue(f.Plain()), nil

	case *syntax.ObjectCreation:
		s, _ = s.PopValues(len(n.Args))
		return e.pushNotNull(s), nil

	case *syntax.Lambda:
		return e.pushNotNull(s), nil

	case *syntax.Conversion:
		// The value is unchanged, only its static type.
		return s, nil

	case *syntax.Opaque:
		s, _ = s.PopValues(len(n.Operands))
		return s.PushValue(f.Plain()), nil

	case *syntax.LocalDecl:
		var v symbolic.Value
		if n.Init != nil {
			s, v = s.PopValue()
		} else {
			v = f.Plain()
		}
		if sym := e.resolver.SymbolOf(n.Name); sym != nil {
			s = s.SetSymbolicValue(sym, v)
		}
		return s, nil

	case *syntax.ForEachBinding:
		for _, id := range n.Loop.Vars {
			if sym := e.resolver.SymbolOf(id); sym != nil {
				s = s.SetSymbolicValue(sym, f.Plain())
			}
		}
		return s, nil

	case *syntax.ExprStmt:
		s, _ = s.PopValue()
		return s, nil
	}

	return nil, errors.Wrapf(ErrEngineFault, "no transfer function for %T", instr)
}

// read returns the value of id, binding a fresh one the first time a symbol
// is read so that later reads agree.
func (e *Explorer) read(id *syntax.Ident, s *symbolic.ProgramState) (*symbolic.ProgramState, symbolic.Value) {
	sym := e.resolver.SymbolOf(id)
	if sym == nil {
		return s, e.factory.Plain()
	}
	if v, ok := s.GetSymbolicValue(sym); ok {
		return s, v
	}
	v := e.factory.Plain()
	return s.SetSymbolicValue(sym, v), v
}

func (e *Explorer) pushNotNull(s *symbolic.ProgramState) *symbolic.ProgramState {
	v := e.factory.Plain()
	return s.SetConstraint(v, symbolic.NotNull).PushValue(v)
}

// member pushes the value of target.name, reusing the one already read on
// this path.
func (e *Explorer) member(target symbolic.Value, name string, s *symbolic.ProgramState) *symbolic.ProgramState {
	key := symbolic.MemberSymbol{Target: target, Field: name}
	if v, ok := s.GetSymbolicValue(key); ok {
		return s.PushValue(v)
	}
	v := e.factory.Member(target, name)
	return s.SetSymbolicValue(key, v).PushValue(v)
}

func (e *Explorer) transferUnary(n *syntax.Unary, s *symbolic.ProgramState) *symbolic.ProgramState {
	if n.Op == syntax.OpAddr {
		if _, ok := syntax.Unparen(n.X).(*syntax.Ident); !ok {
			s, _ = s.PopValue()
		}
		return e.pushNotNull(s)
	}

	s, v := s.PopValue()
	if n.Op == syntax.OpNot {
		return s.PushValue(e.factory.Not(v))
	}
	return s.PushValue(e.factory.Plain())
}

func (e *Explorer) transferBinary(n *syntax.Binary, s *symbolic.ProgramState) *symbolic.ProgramState {
	f := e.factory
	s, r := s.PopValue()
	s, l := s.PopValue()

	var v symbolic.Value
	switch n.Op {
	case syntax.OpEq, syntax.OpNotEq:
		kind := symbolic.ValueEquality
		if e.resolver.Nilable(n.Left) || e.resolver.Nilable(n.Right) {
			kind = symbolic.ReferenceEquality
		}
		v = f.Equality(kind, n.Op == syntax.OpNotEq, l, r)
	case syntax.OpLess:
		v = f.Comparison(symbolic.LessThan, l, r)
	case syntax.OpLessEq:
		v = f.Comparison(symbolic.LessOrEqual, l, r)
	case syntax.OpGtr:
		v = f.Comparison(symbolic.LessThan, r, l)
	case syntax.OpGtrEq:
		v = f.Comparison(symbolic.LessOrEqual, r, l)
	case syntax.OpAnd:
		v = f.And(l, r)
	case syntax.OpOr:
		v = f.Or(l, r)
	case syntax.OpXor:
		v = f.Xor(l, r)
	default:
		return e.pushNotNull(s)
	}
	return s.PushValue(v)
}

func (e *Explorer) transferAssign(n *syntax.Assign, s *symbolic.ProgramState) *symbolic.ProgramState {
	if n.Compound {
		s, _ = s.PopValues(2)
		v := e.factory.Plain()
		s = e.storeRead(n.Lhs, v, s).SetConstraint(v, symbolic.NotNull)
		return s.PushValue(v)
	}

	s, v := s.PopValue()
	s, targets := s.PopValues(len(syntax.TargetOperands(n.Lhs)))
	return e.store(n.Lhs, targets, v, s).PushValue(v)
}

// store writes v to lhs, whose target operands were just popped.
func (e *Explorer) store(lhs syntax.Expr, targets []symbolic.Value, v symbolic.Value, s *symbolic.ProgramState) *symbolic.ProgramState {
	switch t := syntax.Unparen(lhs).(type) {
	case *syntax.Ident:
		if sym := e.resolver.SymbolOf(t); sym != nil {
			return s.SetSymbolicValue(sym, v)
		}
	case *syntax.MemberAccess:
		if len(targets) == 1 {
			return s.RemoveMembers().SetSymbolicValue(symbolic.MemberSymbol{Target: targets[0], Field: t.Name}, v)
		}
		return s.RemoveMembers()
	case *syntax.Unary:
		// A write through a pointer may change any field or captured local.
		return e.havoc(s)
	}
	return s
}

// storeRead writes v to a target that was evaluated as a read, so only its
// value and not its target operands is known (x += 1, x++).
func (e *Explorer) storeRead(lhs syntax.Expr, v symbolic.Value, s *symbolic.ProgramState) *symbolic.ProgramState {
	if id, ok := syntax.Unparen(lhs).(*syntax.Ident); ok {
		if sym := e.resolver.SymbolOf(id); sym != nil {
			return s.SetSymbolicValue(sym, v)
		}
		return s
	}
	return s.RemoveMembers()
}

// havoc forgets what a call or a write through a pointer may have changed:
// every field value and every captured local.
func (e *Explorer) havoc(s *symbolic.ProgramState) *symbolic.ProgramState {
	s = s.RemoveMembers()
	for _, sym := range e.live.CapturedSymbols() {
		if _, ok := s.GetSymbolicValue(sym); ok {
			s = s.SetSymbolicValue(sym, e.factory.Plain())
		}
	}
	return s
}
