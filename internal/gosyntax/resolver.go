package gosyntax

import (
	"go/types"

	"github.com/mpyw/pathcheck/internal/syntax"
	"github.com/mpyw/pathcheck/internal/typeutil"
)

// Resolver answers symbol and type questions about a lowered body.
type Resolver struct {
	objects map[*syntax.Ident]types.Object
	types   map[syntax.Expr]types.Type
	callees map[*syntax.Invocation]*types.Func
}

func newResolver() *Resolver {
	return &Resolver{
		objects: make(map[*syntax.Ident]types.Object),
		types:   make(map[syntax.Expr]types.Type),
		callees: make(map[*syntax.Invocation]*types.Func),
	}
}

// SymbolOf implements syntax.Resolver. Only local variables and parameters
// resolve.
func (r *Resolver) SymbolOf(id *syntax.Ident) syntax.Symbol {
	if v, ok := localVar(r.objects[id]); ok {
		return v
	}
	return nil
}

// Nilable implements syntax.Resolver.
func (r *Resolver) Nilable(e syntax.Expr) bool {
	if l, ok := syntax.Unparen(e).(*syntax.Literal); ok && l.Kind == syntax.LitNull {
		return true
	}
	return typeutil.IsNilable(r.types[e])
}

// Callee returns the function inv statically calls, or nil.
func (r *Resolver) Callee(inv *syntax.Invocation) *types.Func {
	return r.callees[inv]
}

// Object returns the object id was lowered from.
func (r *Resolver) Object(id *syntax.Ident) types.Object {
	return r.objects[id]
}

// TypeOf returns the static type of a lowered expression, or nil.
func (r *Resolver) TypeOf(e syntax.Expr) types.Type {
	return r.types[e]
}

// localVar reports whether obj is a variable declared inside a function.
func localVar(obj types.Object) (*types.Var, bool) {
	v, ok := obj.(*types.Var)
	if !ok || v.IsField() || v.Pkg() == nil || v.Parent() == nil {
		return nil, false
	}
	if v.Parent() == v.Pkg().Scope() || v.Parent() == types.Universe {
		return nil, false
	}
	return v, true
}
