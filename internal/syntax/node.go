package syntax

import "go/token"

// Node is any statement or expression of a body.
type Node interface {
	Pos() token.Pos
	node()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmt()
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Func is one analyzable member: a function, method, accessor or lambda.
type Func struct {
	Name   string
	Params []*Ident
	Body   *Block
	At     token.Pos
}

// Pos returns the position of the member declaration.
func (f *Func) Pos() token.Pos { return f.At }

// Symbol is a declared entity a body can read or write.
type Symbol interface {
	Name() string
}

// Var is a minimal Symbol for hosts without their own symbol table.
type Var struct {
	name string
}

// NewVar returns a fresh symbol. Two Vars with the same name are distinct.
func NewVar(name string) *Var {
	return &Var{name: name}
}

// Name returns the variable name.
func (v *Var) Name() string { return v.name }

func (v *Var) String() string { return v.name }

// Resolver resolves identifiers to symbols and answers static type questions.
type Resolver interface {
	// SymbolOf returns the local or parameter symbol the identifier refers to,
	// or nil if the identifier is not a tracked local (fields, globals, types).
	SymbolOf(id *Ident) Symbol

	// Nilable reports whether the static type of e admits a null value.
	Nilable(e Expr) bool
}

// NameResolver resolves identifiers by name against a fixed set of symbols.
// Unknown names resolve to nil, and every expression is considered nilable.
type NameResolver map[string]Symbol

// Declare adds fresh symbols for the given names and returns the resolver.
func (r NameResolver) Declare(names ...string) NameResolver {
	for _, n := range names {
		r[n] = NewVar(n)
	}
	return r
}

// SymbolOf implements Resolver.
func (r NameResolver) SymbolOf(id *Ident) Symbol {
	if id == nil {
		return nil
	}
	if s, ok := r[id.Name]; ok {
		return s
	}
	return nil
}

// Nilable implements Resolver.
func (r NameResolver) Nilable(Expr) bool { return true }
