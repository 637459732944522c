package checks_test

import (
	"context"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/pathcheck/internal/cfg"
	"github.com/mpyw/pathcheck/internal/checks"
	"github.com/mpyw/pathcheck/internal/engine"
	"github.com/mpyw/pathcheck/internal/funcspec"
	"github.com/mpyw/pathcheck/internal/liveness"
	"github.com/mpyw/pathcheck/internal/syntax"
)

func id(name string) *syntax.Ident { return &syntax.Ident{Name: name} }

func stmt(e syntax.Expr) *syntax.ExprStmt { return &syntax.ExprStmt{X: e} }

func block(stmts ...syntax.Stmt) *syntax.Block { return &syntax.Block{Stmts: stmts} }

func isNull(x syntax.Expr) *syntax.Binary {
	return &syntax.Binary{Op: syntax.OpEq, Left: x, Right: syntax.Null()}
}

func access(x syntax.Expr, name string, at token.Pos) *syntax.MemberAccess {
	return &syntax.MemberAccess{X: x, Name: name, At: at}
}

type callees map[*syntax.Invocation]*types.Func

func (c callees) Callee(inv *syntax.Invocation) *types.Func { return c[inv] }

type newCheck func(checks.Env) engine.Check

func nilDeref(env checks.Env) engine.Check     { return checks.NewNilDeref(env) }
func constCond(env checks.Env) engine.Check    { return checks.NewConstCond(env) }
func nilCheckFunc(env checks.Env) engine.Check { return checks.NewNilCheckFunc(env) }

func explore(t *testing.T, r syntax.Resolver, env checks.Env, body []syntax.Stmt, with ...newCheck) []checks.Finding {
	t.Helper()
	got, outcome := exploreWith(t, r, env, body, nil, with...)
	require.Equal(t, engine.Completed, outcome)
	return got
}

func exploreWith(t *testing.T, r syntax.Resolver, env checks.Env, body []syntax.Stmt, opts []engine.Option, with ...newCheck) ([]checks.Finding, engine.Outcome) {
	t.Helper()
	g, err := cfg.Build(&syntax.Func{Name: "M", Body: block(body...)})
	require.NoError(t, err)

	e := engine.New(g, liveness.Analyze(g, r), append([]engine.Option{engine.WithResolver(r)}, opts...)...)
	env.Factory = e.Factory()
	env.Resolver = r
	env.Collector = checks.NewCollector()
	for _, c := range with {
		e.AddCheck(c(env))
	}

	res, err := e.Walk(context.Background())
	require.NoError(t, err)
	return env.Collector.Findings(), res.Outcome
}

func TestNilDeref(t *testing.T) {
	tests := []struct {
		name string
		body func() []syntax.Stmt
		want []checks.Finding
	}{
		{
			name: "access inside null branch",
			body: func() []syntax.Stmt {
				return []syntax.Stmt{
					&syntax.If{Cond: isNull(id("s")), Then: stmt(access(id("s"), "Len", 10))},
				}
			},
			want: []checks.Finding{{Check: "nilderef", Pos: 10, Message: "nil dereference of s"}},
		},
		{
			name: "access inside non-null branch",
			body: func() []syntax.Stmt {
				return []syntax.Stmt{
					&syntax.If{
						Cond: &syntax.Binary{Op: syntax.OpNotEq, Left: id("s"), Right: syntax.Null()},
						Then: stmt(access(id("s"), "Len", 10)),
					},
				}
			},
		},
		{
			name: "nil-safe access",
			body: func() []syntax.Stmt {
				return []syntax.Stmt{
					&syntax.LocalDecl{Name: id("s"), Init: syntax.Null()},
					stmt(&syntax.MemberAccess{X: id("s"), Name: "Method", NilSafe: true, At: 10}),
				}
			},
		},
		{
			name: "store through null",
			body: func() []syntax.Stmt {
				return []syntax.Stmt{
					&syntax.LocalDecl{Name: id("s"), Init: syntax.Null()},
					stmt(&syntax.Assign{Lhs: access(id("s"), "f", 20), Rhs: syntax.Number("1")}),
				}
			},
			want: []checks.Finding{{Check: "nilderef", Pos: 20, Message: "nil dereference of s"}},
		},
		{
			name: "pointer dereference",
			body: func() []syntax.Stmt {
				return []syntax.Stmt{
					&syntax.LocalDecl{Name: id("s"), Init: syntax.Null()},
					stmt(&syntax.Unary{Op: syntax.OpDeref, X: id("s"), At: 30}),
				}
			},
			want: []checks.Finding{{Check: "nilderef", Pos: 30, Message: "nil dereference of s"}},
		},
		{
			name: "reported once and pruned",
			body: func() []syntax.Stmt {
				return []syntax.Stmt{
					&syntax.LocalDecl{Name: id("s"), Init: syntax.Null()},
					stmt(access(id("s"), "f", 10)),
					stmt(access(id("s"), "g", 11)),
				}
			},
			want: []checks.Finding{{Check: "nilderef", Pos: 10, Message: "nil dereference of s"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := syntax.NameResolver{}.Declare("s")
			got := explore(t, r, checks.Env{}, tt.body(), nilDeref)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConstCond(t *testing.T) {
	t.Run("dereference proves the later check", func(t *testing.T) {
		// s.f; if (s == null) { s.g; }
		r := syntax.NameResolver{}.Declare("s")
		cond := isNull(id("s"))
		cond.At = 40
		got := explore(t, r, checks.Env{}, []syntax.Stmt{
			stmt(access(id("s"), "f", 10)),
			&syntax.If{Cond: cond, Then: stmt(access(id("s"), "g", 50))},
		}, nilDeref, constCond)

		assert.Equal(t, []checks.Finding{
			{Check: "constcond", Pos: 40, Message: "condition s == null is always false"},
		}, got)
	})

	t.Run("literal conditions are intentional", func(t *testing.T) {
		// while (true) { if (c) break; }
		r := syntax.NameResolver{}.Declare("c")
		got := explore(t, r, checks.Env{}, []syntax.Stmt{
			&syntax.While{Cond: syntax.True(), Body: &syntax.If{Cond: id("c"), Then: &syntax.Break{}}},
		}, constCond)

		assert.Empty(t, got)
	})

	t.Run("loop cut by the visit cap", func(t *testing.T) {
		// a, b := false, false; while (!b) { b = a; a = true; }
		// !b is true twice and false on the third test.
		body := func() []syntax.Stmt {
			return []syntax.Stmt{
				&syntax.LocalDecl{Name: id("a"), Init: syntax.False()},
				&syntax.LocalDecl{Name: id("b"), Init: syntax.False()},
				&syntax.While{
					Cond: &syntax.Unary{Op: syntax.OpNot, X: id("b"), At: 7},
					Body: block(
						stmt(&syntax.Assign{Lhs: id("b"), Rhs: id("a")}),
						stmt(&syntax.Assign{Lhs: id("a"), Rhs: syntax.True()}),
					),
				},
			}
		}
		r := syntax.NameResolver{}.Declare("a", "b")

		got, outcome := exploreWith(t, r, checks.Env{}, body(), nil, constCond)
		assert.Equal(t, engine.VisitLimit, outcome)
		assert.Empty(t, got)

		got, outcome = exploreWith(t, r, checks.Env{}, body(), []engine.Option{engine.WithMaxBlockVisits(4)}, constCond)
		assert.Equal(t, engine.Completed, outcome)
		assert.Empty(t, got)
	})

	t.Run("both outcomes", func(t *testing.T) {
		r := syntax.NameResolver{}.Declare("c")
		got := explore(t, r, checks.Env{}, []syntax.Stmt{
			&syntax.If{Cond: id("c"), Then: &syntax.Return{}},
		}, constCond)

		assert.Empty(t, got)
	})
}

func TestNilCheckFunc(t *testing.T) {
	pkg := types.NewPackage("example.com/util", "util")
	isNil := types.NewFunc(token.NoPos, pkg, "IsNil", types.NewSignatureType(nil, nil, nil, nil, nil, false))

	// if (util.IsNil(p)) { p.f; }
	body := func() ([]syntax.Stmt, *syntax.Invocation) {
		inv := &syntax.Invocation{Fun: id("util.IsNil"), Args: []syntax.Expr{id("p")}}
		return []syntax.Stmt{
			&syntax.If{Cond: inv, Then: stmt(access(id("p"), "f", 10))},
		}, inv
	}

	t.Run("configured", func(t *testing.T) {
		r := syntax.NameResolver{}.Declare("p")
		stmts, inv := body()
		env := checks.Env{
			Callees:       callees{inv: isNil},
			NilCheckFuncs: []checks.FuncMatcher{funcspec.Parse("example.com/util.IsNil")},
		}
		got := explore(t, r, env, stmts, nilCheckFunc, nilDeref)

		assert.Equal(t, []checks.Finding{{Check: "nilderef", Pos: 10, Message: "nil dereference of p"}}, got)
	})

	t.Run("not configured", func(t *testing.T) {
		r := syntax.NameResolver{}.Declare("p")
		stmts, inv := body()
		env := checks.Env{
			Callees:       callees{inv: isNil},
			NilCheckFuncs: []checks.FuncMatcher{funcspec.Parse("example.com/other.IsNil")},
		}
		got := explore(t, r, env, stmts, nilCheckFunc, nilDeref)

		assert.Empty(t, got)
	})
}

func TestCollector(t *testing.T) {
	c := checks.NewCollector()
	c.Reportf("b", 20, "second")
	c.Reportf("a", 10, "first %d", 1)
	c.Reportf("b", 20, "second")

	assert.Equal(t, []checks.Finding{
		{Check: "a", Pos: 10, Message: "first 1"},
		{Check: "b", Pos: 20, Message: "second"},
	}, c.Findings())
}
