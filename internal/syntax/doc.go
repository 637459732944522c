// Package syntax defines the structured body model analyzed by pathcheck.
//
// # Overview
//
// A host front-end (see internal/gosyntax for Go) lowers one function, method,
// property accessor or lambda into a [Func]. The model is deliberately small and
// host neutral: it keeps only the constructs whose control flow or value
// semantics matter to the engine, and wraps everything else in [Opaque].
//
// # Statements
//
//	Block, ExprStmt, LocalDecl, Empty
//	If, While, Do, For, ForEach, Switch (+ SwitchSection)
//	Break, Continue, Goto, GotoCase, GotoDefault, Fallthrough, Labeled
//	Return, Throw, YieldBreak
//	Using, Lock, Fixed
//
// # Expressions
//
//	Ident, Literal, Paren, Unary, Binary, Assign, TupleAssign, IncDec
//	Conditional (c ? a : b), Coalesce (a ?? b), ConditionalAccess (a?.b)
//	MemberAccess, ElementAccess, Invocation, ObjectCreation, Lambda,
//	Conversion, Opaque
//
// Short-circuit operators (&&, ||) are [Binary] nodes with [OpAndAlso] and
// [OpOrElse]; the CFG builder turns them into branch blocks.
//
// # Symbols
//
// Identifiers are resolved through a [Resolver] oracle. Any value with a
// Name method is a [Symbol], so a Go front-end can hand out types.Object values
// directly. [Var] and [NameResolver] serve hosts without a symbol table and
// tests.
package syntax
