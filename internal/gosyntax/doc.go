// Package gosyntax lowers Go function bodies into the structured body model
// of package syntax.
//
// # Lowering
//
// [Lower] accepts an *ast.FuncDecl or an *ast.FuncLit together with the
// types.Info of its package:
//
//	Go                               body model
//	─────────────────────────────────────────────────────────────
//	if init; cond {} else {}         { init; if (cond) ... else ... }
//	for init; cond; post {}          for (init; cond; post) ...
//	for k, v := range x {}           foreach (k, v in x) ...
//	switch tag { case a, b: }        tagged switch
//	switch { case cond: }            conditional switch
//	switch v := x.(type) {}          tagged switch, v declared per clause
//	select {}                        tagged switch over the clauses
//	panic(v)                         throw v
//	var p *T                         var p = nil
//	new(T), make(T), T{}, &T{}       allocation (never nil)
//	p.f, *p, i.M(), p.V()            dereference of p or i
//	p.M() with a pointer receiver    nil-safe member access
//	func() { ... }                   lambda capturing the outer locals it uses
//	go f(), defer f()                skipped
//
// Constant expressions become literals, so "if debug {}" with a constant
// debug is recognized as a deliberate constant condition.
//
// # Resolution
//
// The returned [Resolver] implements syntax.Resolver from the recorded
// types.Object of every lowered identifier: local variables and parameters
// are symbols, while fields, globals and functions are not tracked. It also
// maps invocations to their static callee.
package gosyntax
