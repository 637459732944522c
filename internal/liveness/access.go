package liveness

import "github.com/mpyw/pathcheck/internal/syntax"

// access returns the symbols an instruction reads, writes and captures. A
// compound write such as x += 1 is preceded by its own read instruction, so
// it only appears here as a write.
func access(n syntax.Node, r syntax.Resolver) (uses, defs, captured []syntax.Symbol) {
	sym := func(e syntax.Expr) syntax.Symbol {
		if id, ok := syntax.Unparen(e).(*syntax.Ident); ok {
			return r.SymbolOf(id)
		}
		return nil
	}
	add := func(list []syntax.Symbol, s syntax.Symbol) []syntax.Symbol {
		if s == nil {
			return list
		}
		return append(list, s)
	}

	switch n := n.(type) {
	case *syntax.Ident:
		uses = add(uses, r.SymbolOf(n))
	case *syntax.Assign:
		defs = add(defs, sym(n.Lhs))
	case *syntax.TupleAssign:
		for _, l := range n.Lhs {
			if l != nil {
				defs = add(defs, sym(l))
			}
		}
	case *syntax.IncDec:
		defs = add(defs, sym(n.X))
	case *syntax.LocalDecl:
		defs = add(defs, r.SymbolOf(n.Name))
	case *syntax.ForEachBinding:
		for _, v := range n.Loop.Vars {
			defs = add(defs, r.SymbolOf(v))
		}
	case *syntax.Unary:
		if n.Op == syntax.OpAddr {
			if s := sym(n.X); s != nil {
				uses = append(uses, s)
				captured = append(captured, s)
			}
		}
	case *syntax.Lambda:
		for _, c := range n.Captures {
			if s := r.SymbolOf(c); s != nil {
				uses = append(uses, s)
				captured = append(captured, s)
			}
		}
	}
	return uses, defs, captured
}
