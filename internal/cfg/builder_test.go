package cfg_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/pathcheck/internal/cfg"
	"github.com/mpyw/pathcheck/internal/syntax"
)

func id(name string) *syntax.Ident { return &syntax.Ident{Name: name} }

func call(name string) *syntax.Invocation { return &syntax.Invocation{Fun: id(name)} }

func stmt(e syntax.Expr) *syntax.ExprStmt { return &syntax.ExprStmt{X: e} }

func assign(name string, rhs syntax.Expr) *syntax.Assign {
	return &syntax.Assign{Lhs: id(name), Rhs: rhs}
}

func body(stmts ...syntax.Stmt) *syntax.Block { return &syntax.Block{Stmts: stmts} }

func build(t *testing.T, stmts ...syntax.Stmt) *cfg.Graph {
	t.Helper()
	g, err := cfg.Build(&syntax.Func{Name: "f", Body: body(stmts...)})
	require.NoError(t, err)
	return g
}

func texts(b *cfg.Block) []string {
	out := make([]string, 0, len(b.Instructions))
	for _, n := range b.Instructions {
		out = append(out, syntax.String(n))
	}
	return out
}

func TestBuild_IfTrue(t *testing.T) {
	x := assign("x", syntax.Number("1"))
	g := build(t, &syntax.If{Cond: syntax.True(), Then: body(stmt(x))})

	require.Len(t, g.Blocks, 3)
	assert.Equal(t, cfg.BinaryBranch, g.Entry.Kind)
	assert.Equal(t, []string{"true"}, texts(g.Entry))

	then := g.Entry.TrueSuccessor()
	assert.Equal(t, []string{"1", "x = 1"}, texts(then))
	assert.Same(t, g.Exit, g.Entry.FalseSuccessor())
	assert.Equal(t, []*cfg.Block{g.Exit}, then.Successors())

	assert.True(t, g.IsStatement(x))
	assert.Equal(t, 0, g.Entry.ID)
}

func TestBuild_While(t *testing.T) {
	g := build(t, &syntax.While{Cond: id("c"), Body: body(stmt(assign("x", syntax.Number("1"))))})

	require.Len(t, g.Blocks, 3)
	assert.Equal(t, []string{"c"}, texts(g.Entry))
	loop := g.Entry.TrueSuccessor()
	assert.Equal(t, []string{"1", "x = 1"}, texts(loop))
	assert.Same(t, g.Entry, loop.Successors()[0])
	assert.Same(t, g.Exit, g.Entry.FalseSuccessor())
}

func TestBuild_Do(t *testing.T) {
	g := build(t, &syntax.Do{Body: body(stmt(assign("x", syntax.Number("1")))), Cond: id("c")})

	require.Len(t, g.Blocks, 3)
	assert.Equal(t, cfg.Simple, g.Entry.Kind)
	assert.Equal(t, []string{"1", "x = 1"}, texts(g.Entry))

	cond := g.Entry.Successors()[0]
	assert.Equal(t, []string{"c"}, texts(cond))
	assert.Same(t, g.Entry, cond.TrueSuccessor())
	assert.Same(t, g.Exit, cond.FalseSuccessor())
}

func TestBuild_For(t *testing.T) {
	post := &syntax.IncDec{X: id("i"), Inc: true}
	g := build(t, &syntax.For{
		Init: []syntax.Stmt{stmt(assign("i", syntax.Number("0")))},
		Cond: id("c"),
		Post: []syntax.Expr{post},
		Body: body(stmt(call("f"))),
	})

	assert.Equal(t, []string{"0", "i = 0"}, texts(g.Entry))
	cond := g.Entry.Successors()[0]
	assert.Equal(t, []string{"c"}, texts(cond))

	loop := cond.TrueSuccessor()
	assert.Equal(t, []string{"f", "f()"}, texts(loop))
	inc := loop.Successors()[0]
	assert.Equal(t, []string{"i", "i++"}, texts(inc))
	assert.Same(t, cond, inc.Successors()[0])
	assert.Same(t, g.Exit, cond.FalseSuccessor())

	assert.True(t, g.IsStatement(post))
}

func TestBuild_ForWithoutCondition(t *testing.T) {
	g := build(t, &syntax.For{Body: body()})

	assert.NotEmpty(t, g.Blocks)
	assert.NotContains(t, g.Blocks, g.Exit)
}

func TestBuild_ForEach(t *testing.T) {
	loop := &syntax.ForEach{Vars: []*syntax.Ident{id("v")}, Collection: id("xs"), Body: body(stmt(call("f")))}
	g := build(t, loop)

	assert.Equal(t, cfg.ForeachCollectionProducer, g.Entry.Kind)
	assert.Equal(t, []string{"xs"}, texts(g.Entry))

	branch := g.Entry.Successors()[0]
	assert.Equal(t, cfg.BinaryBranch, branch.Kind)
	assert.Same(t, loop, branch.BranchingNode)
	assert.Empty(t, branch.Instructions)

	each := branch.TrueSuccessor()
	assert.Equal(t, []string{"foreach v", "f", "f()"}, texts(each))
	assert.Same(t, branch, each.Successors()[0])
	assert.Same(t, g.Exit, branch.FalseSuccessor())
}

func TestBuild_ShortCircuit(t *testing.T) {
	and := &syntax.Binary{Op: syntax.OpAndAlso, Left: id("a"), Right: id("b")}
	g := build(t, &syntax.Return{Value: and})

	require.Len(t, g.Blocks, 4)
	assert.Same(t, and, g.Entry.BranchingNode)
	assert.Equal(t, []string{"a"}, texts(g.Entry))

	right := g.Entry.TrueSuccessor()
	assert.Equal(t, []string{"b"}, texts(right))

	ret := g.Entry.FalseSuccessor()
	assert.Equal(t, cfg.Jump, ret.Kind)
	assert.IsType(t, &syntax.Return{}, ret.JumpNode)
	assert.Same(t, ret, right.Successors()[0])
	assert.Same(t, g.Exit, ret.Successors()[0])

	or := &syntax.Binary{Op: syntax.OpOrElse, Left: id("a"), Right: id("b")}
	g = build(t, &syntax.Return{Value: or})
	assert.Equal(t, []string{"b"}, texts(g.Entry.FalseSuccessor()))
	assert.Equal(t, cfg.Jump, g.Entry.TrueSuccessor().Kind)
}

func TestBuild_Coalesce(t *testing.T) {
	g := build(t, stmt(assign("x", &syntax.Coalesce{Left: id("a"), Right: id("b")})))

	assert.Equal(t, []string{"a"}, texts(g.Entry))
	whenNull := g.Entry.Successors()[0]
	whenNotNull := g.Entry.Successors()[1]
	assert.Equal(t, []string{"b"}, texts(whenNull))
	assert.Equal(t, []string{"x = a ?? b"}, texts(whenNotNull))
	assert.Same(t, whenNotNull, whenNull.Successors()[0])
}

func TestBuild_ConditionalAccess(t *testing.T) {
	access := &syntax.ConditionalAccess{X: id("a"), Access: &syntax.MemberAccess{X: &syntax.Binding{}, Name: "b"}}
	g := build(t, stmt(access))

	assert.Equal(t, []string{"a"}, texts(g.Entry))
	whenNull := g.Entry.Successors()[0]
	whenNotNull := g.Entry.Successors()[1]
	assert.Equal(t, []string{"a?.b"}, texts(whenNull))
	assert.Equal(t, []string{".b"}, texts(whenNotNull))
	assert.Same(t, whenNull, whenNotNull.Successors()[0])
}

func TestBuild_Conditional(t *testing.T) {
	g := build(t, &syntax.Return{Value: &syntax.Conditional{Cond: id("c"), Then: id("a"), Else: id("b")}})

	assert.Equal(t, []string{"c"}, texts(g.Entry))
	assert.Equal(t, []string{"a"}, texts(g.Entry.TrueSuccessor()))
	assert.Equal(t, []string{"b"}, texts(g.Entry.FalseSuccessor()))
	assert.Same(t, g.Entry.TrueSuccessor().Successors()[0], g.Entry.FalseSuccessor().Successors()[0])
}

func TestBuild_TaggedSwitch(t *testing.T) {
	g := build(t, &syntax.Switch{
		Tag: id("x"),
		Sections: []*syntax.SwitchSection{
			{Labels: []syntax.Expr{syntax.Number("1")}, Body: []syntax.Stmt{stmt(call("a")), &syntax.Break{}}},
			{Labels: []syntax.Expr{syntax.Number("2")}, Body: []syntax.Stmt{stmt(call("b")), &syntax.Break{}}},
			{Labels: []syntax.Expr{nil}, Body: []syntax.Stmt{stmt(call("c")), &syntax.Break{}}},
		},
	})

	require.Len(t, g.Blocks, 5)
	assert.Equal(t, cfg.Branch, g.Entry.Kind)
	assert.Equal(t, []string{"x"}, texts(g.Entry))

	var got [][]string
	for _, s := range g.Entry.Successors() {
		got = append(got, texts(s))
		assert.Equal(t, cfg.Jump, s.Kind)
		assert.Same(t, g.Exit, s.Successors()[0])
	}
	assert.Equal(t, [][]string{{"a", "a()"}, {"b", "b()"}, {"c", "c()"}}, got)
}

func TestBuild_TaggedSwitchWithoutDefault(t *testing.T) {
	g := build(t, &syntax.Switch{
		Tag: id("x"),
		Sections: []*syntax.SwitchSection{
			{Labels: []syntax.Expr{syntax.Number("1")}, Body: []syntax.Stmt{stmt(call("a"))}},
		},
	})

	require.Len(t, g.Entry.Successors(), 2)
	assert.Same(t, g.Exit, g.Entry.Successors()[1])
}

func TestBuild_ConditionalSwitch(t *testing.T) {
	a, b := id("a"), id("b")
	g := build(t, &syntax.Switch{
		Conditional: true,
		Sections: []*syntax.SwitchSection{
			{Labels: []syntax.Expr{a}, Body: []syntax.Stmt{stmt(call("f"))}},
			{Labels: []syntax.Expr{b}, Body: []syntax.Stmt{stmt(call("g"))}},
		},
	})

	assert.Same(t, a, g.Entry.BranchingNode)
	assert.Equal(t, []string{"f", "f()"}, texts(g.Entry.TrueSuccessor()))

	second := g.Entry.FalseSuccessor()
	assert.Same(t, b, second.BranchingNode)
	assert.Equal(t, []string{"g", "g()"}, texts(second.TrueSuccessor()))
	assert.Same(t, g.Exit, second.FalseSuccessor())
}

func TestBuild_SwitchJumps(t *testing.T) {
	g := build(t, &syntax.Switch{
		Tag: id("x"),
		Sections: []*syntax.SwitchSection{
			{Labels: []syntax.Expr{syntax.Number("1")}, Body: []syntax.Stmt{stmt(call("f")), &syntax.Fallthrough{}}},
			{Labels: []syntax.Expr{syntax.Number("2")}, Body: []syntax.Stmt{stmt(call("g"))}},
			{Labels: []syntax.Expr{syntax.Number("3")}, Body: []syntax.Stmt{&syntax.GotoCase{Value: syntax.Number("1")}}},
		},
	})

	first, second, third := g.Entry.Successors()[0], g.Entry.Successors()[1], g.Entry.Successors()[2]
	assert.IsType(t, &syntax.Fallthrough{}, first.JumpNode)
	assert.Same(t, second, first.Successors()[0])
	assert.IsType(t, &syntax.GotoCase{}, third.JumpNode)
	assert.Same(t, first, third.Successors()[0])
}

func TestBuild_LabeledContinue(t *testing.T) {
	g := build(t, &syntax.Labeled{
		Label: "outer",
		Stmt: &syntax.While{
			Cond: id("a"),
			Body: body(&syntax.While{Cond: id("b"), Body: body(&syntax.Continue{Label: "outer"})}),
		},
	})

	var found bool
	for _, b := range g.Blocks {
		if _, ok := b.JumpNode.(*syntax.Continue); ok {
			found = true
			assert.Same(t, g.Entry, b.Successors()[0])
		}
	}
	assert.True(t, found)
	assert.Equal(t, []string{"a"}, texts(g.Entry))
}

func TestBuild_Goto(t *testing.T) {
	g := build(t,
		&syntax.Goto{Label: "end"},
		stmt(call("skipped")),
		&syntax.Labeled{Label: "end", Stmt: &syntax.Return{}},
	)

	assert.IsType(t, &syntax.Goto{}, g.Entry.JumpNode)
	target := g.Entry.Successors()[0]
	assert.IsType(t, &syntax.Return{}, target.JumpNode)
	assert.Len(t, g.Blocks, 3)
	assert.Len(t, g.AllBlocks(), 4)
}

func TestBuild_UnreachableAfterReturn(t *testing.T) {
	g := build(t, &syntax.Return{}, stmt(assign("x", syntax.Number("1"))))

	assert.Len(t, g.Blocks, 2)
	require.Len(t, g.AllBlocks(), 3)
	assert.Equal(t, []string{"1", "x = 1"}, texts(g.AllBlocks()[2]))
}

func TestBuild_Using(t *testing.T) {
	g := build(t, &syntax.Using{Resource: id("r"), Body: body(stmt(call("f")))})

	assert.Equal(t, cfg.Jump, g.Entry.Kind)
	assert.Equal(t, []string{"r"}, texts(g.Entry))
	assert.Equal(t, []string{"f", "f()"}, texts(g.Entry.Successors()[0]))
}

func TestBuild_InvalidBody(t *testing.T) {
	tests := []struct {
		name  string
		stmts []syntax.Stmt
	}{
		{"undefined goto label", []syntax.Stmt{&syntax.Goto{Label: "nowhere"}}},
		{"break outside loop", []syntax.Stmt{&syntax.Break{}}},
		{"continue outside loop", []syntax.Stmt{&syntax.Continue{}}},
		{"goto case outside switch", []syntax.Stmt{&syntax.GotoCase{Value: syntax.Number("1")}}},
		{"duplicate label", []syntax.Stmt{
			&syntax.Labeled{Label: "l", Stmt: &syntax.Empty{}},
			&syntax.Labeled{Label: "l", Stmt: &syntax.Empty{}},
		}},
		{"continue in switch", []syntax.Stmt{&syntax.Switch{Tag: id("x"), Sections: []*syntax.SwitchSection{
			{Labels: []syntax.Expr{nil}, Body: []syntax.Stmt{&syntax.Continue{}}},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cfg.Build(&syntax.Func{Body: body(tt.stmts...)})
			assert.ErrorIs(t, err, cfg.ErrInvalidBody)
		})
	}

	_, err := cfg.Build(&syntax.Func{})
	assert.ErrorIs(t, err, cfg.ErrInvalidBody)
}

func TestWriteDOT(t *testing.T) {
	g := build(t, &syntax.If{Cond: id("c"), Then: body(stmt(call("f")))})

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteDOT(&buf, g, "f"))

	out := buf.String()
	assert.Contains(t, out, "digraph CFG {")
	assert.Contains(t, out, `label="f";`)
	assert.Contains(t, out, `n0 -> n1 [label="true"];`)
	assert.Contains(t, out, `[label="false"];`)
}
