package gosyntax

import (
	"go/ast"
	"go/token"
	"go/types"
	"strconv"

	"github.com/mpyw/pathcheck/internal/syntax"
)

func (l *lowerer) block(b *ast.BlockStmt) *syntax.Block {
	return &syntax.Block{Stmts: l.stmts(b.List), At: b.Lbrace}
}

func (l *lowerer) stmts(list []ast.Stmt) []syntax.Stmt {
	out := make([]syntax.Stmt, 0, len(list))
	for _, s := range list {
		out = append(out, l.stmt(s))
	}
	return out
}

// withInit prefixes s with the init statement of an if or switch.
func (l *lowerer) withInit(init ast.Stmt, s func() syntax.Stmt) syntax.Stmt {
	if init == nil {
		return s()
	}
	first := l.stmt(init)
	return &syntax.Block{Stmts: []syntax.Stmt{first, s()}, At: init.Pos()}
}

func (l *lowerer) stmt(s ast.Stmt) syntax.Stmt {
	switch s := s.(type) {
	case *ast.BlockStmt:
		return l.block(s)

	case *ast.ExprStmt:
		if call, ok := ast.Unparen(s.X).(*ast.CallExpr); ok && l.isBuiltin(call.Fun, "panic") && len(call.Args) == 1 {
			return &syntax.Throw{Value: l.expr(call.Args[0]), At: call.Pos()}
		}
		return &syntax.ExprStmt{X: l.expr(s.X)}

	case *ast.AssignStmt:
		return l.assign(s)

	case *ast.IncDecStmt:
		return &syntax.ExprStmt{X: l.incDec(s)}

	case *ast.SendStmt:
		return &syntax.ExprStmt{X: l.send(s)}

	case *ast.DeclStmt:
		return l.decl(s)

	case *ast.IfStmt:
		return l.withInit(s.Init, func() syntax.Stmt {
			n := &syntax.If{Cond: l.expr(s.Cond), Then: l.block(s.Body), At: s.If}
			if s.Else != nil {
				n.Else = l.stmt(s.Else)
			}
			return n
		})

	case *ast.ForStmt:
		n := &syntax.For{At: s.For}
		if s.Init != nil {
			n.Init = []syntax.Stmt{l.stmt(s.Init)}
		}
		if s.Cond != nil {
			n.Cond = l.expr(s.Cond)
		}
		if s.Post != nil {
			if post := l.simple(s.Post); post != nil {
				n.Post = []syntax.Expr{post}
			}
		}
		n.Body = l.block(s.Body)
		return n

	case *ast.RangeStmt:
		n := &syntax.ForEach{Collection: l.expr(s.X), At: s.For}
		for _, v := range []ast.Expr{s.Key, s.Value} {
			if id, ok := v.(*ast.Ident); ok && id.Name != "_" {
				n.Vars = append(n.Vars, l.ident(id))
			}
		}
		n.Body = l.block(s.Body)
		return n

	case *ast.SwitchStmt:
		return l.withInit(s.Init, func() syntax.Stmt { return l.switchStmt(s) })

	case *ast.TypeSwitchStmt:
		return l.withInit(s.Init, func() syntax.Stmt { return l.typeSwitch(s) })

	case *ast.SelectStmt:
		return l.selectStmt(s)

	case *ast.BranchStmt:
		label := ""
		if s.Label != nil {
			label = s.Label.Name
		}
		switch s.Tok {
		case token.BREAK:
			return &syntax.Break{Label: label, At: s.TokPos}
		case token.CONTINUE:
			return &syntax.Continue{Label: label, At: s.TokPos}
		case token.GOTO:
			return &syntax.Goto{Label: label, At: s.TokPos}
		case token.FALLTHROUGH:
			return &syntax.Fallthrough{At: s.TokPos}
		}

	case *ast.LabeledStmt:
		return &syntax.Labeled{Label: s.Label.Name, Stmt: l.stmt(s.Stmt), At: s.Label.Pos()}

	case *ast.ReturnStmt:
		switch len(s.Results) {
		case 0:
			return &syntax.Return{At: s.Return}
		case 1:
			return &syntax.Return{Value: l.expr(s.Results[0]), At: s.Return}
		}
		return &syntax.Return{Value: &syntax.Opaque{Operands: l.exprs(s.Results), At: s.Results[0].Pos()}, At: s.Return}
	}

	// go, defer, empty and declarations without values.
	return &syntax.Empty{At: s.Pos()}
}

func (l *lowerer) assign(s *ast.AssignStmt) syntax.Stmt {
	if s.Tok != token.ASSIGN && s.Tok != token.DEFINE {
		return &syntax.ExprStmt{X: l.simple(s)}
	}
	if len(s.Lhs) == 1 && len(s.Rhs) == 1 {
		lhs := s.Lhs[0]
		if isBlank(lhs) {
			return &syntax.ExprStmt{X: l.expr(s.Rhs[0])}
		}
		if id, ok := lhs.(*ast.Ident); ok && s.Tok == token.DEFINE && l.info.Defs[id] != nil {
			return &syntax.LocalDecl{Name: l.ident(id), Init: l.expr(s.Rhs[0])}
		}
	}
	return &syntax.ExprStmt{X: l.simple(s)}
}

// simple lowers a simple statement used in expression position: a for post
// statement or an assignment.
func (l *lowerer) simple(s ast.Stmt) syntax.Expr {
	switch s := s.(type) {
	case *ast.ExprStmt:
		return l.expr(s.X)
	case *ast.IncDecStmt:
		return l.incDec(s)
	case *ast.SendStmt:
		return l.send(s)
	case *ast.AssignStmt:
		if op, ok := compoundOps[s.Tok]; ok {
			return &syntax.Assign{Lhs: l.expr(s.Lhs[0]), Rhs: l.expr(s.Rhs[0]), Op: op, Compound: true, At: s.TokPos}
		}
		if len(s.Lhs) == 1 && len(s.Rhs) == 1 && !isBlank(s.Lhs[0]) {
			return &syntax.Assign{Lhs: l.expr(s.Lhs[0]), Rhs: l.expr(s.Rhs[0]), At: s.TokPos}
		}
		t := &syntax.TupleAssign{Lhs: make([]syntax.Expr, len(s.Lhs)), Rhs: l.exprs(s.Rhs), At: s.TokPos}
		for i, e := range s.Lhs {
			if !isBlank(e) {
				t.Lhs[i] = l.expr(e)
			}
		}
		return t
	}
	return nil
}

func (l *lowerer) incDec(s *ast.IncDecStmt) syntax.Expr {
	return &syntax.IncDec{X: l.expr(s.X), Inc: s.Tok == token.INC, At: s.TokPos}
}

func (l *lowerer) send(s *ast.SendStmt) syntax.Expr {
	return &syntax.Opaque{Text: types.ExprString(s.Chan) + " <- " + types.ExprString(s.Value), Operands: []syntax.Expr{l.expr(s.Chan), l.expr(s.Value)}, At: s.Arrow}
}

func (l *lowerer) decl(s *ast.DeclStmt) syntax.Stmt {
	gd, ok := s.Decl.(*ast.GenDecl)
	if !ok || gd.Tok != token.VAR {
		return &syntax.Empty{At: s.Pos()}
	}

	var out []syntax.Stmt
	for _, spec := range gd.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		switch {
		case len(vs.Values) == 0:
			for _, n := range vs.Names {
				if n.Name != "_" {
					out = append(out, &syntax.LocalDecl{Name: l.ident(n), Init: l.zero(n)})
				}
			}
		case len(vs.Values) == len(vs.Names):
			for i, n := range vs.Names {
				if n.Name == "_" {
					out = append(out, &syntax.ExprStmt{X: l.expr(vs.Values[i])})
					continue
				}
				out = append(out, &syntax.LocalDecl{Name: l.ident(n), Init: l.expr(vs.Values[i])})
			}
		default:
			t := &syntax.TupleAssign{Lhs: make([]syntax.Expr, len(vs.Names)), Rhs: l.exprs(vs.Values), At: vs.Pos()}
			for i, n := range vs.Names {
				if n.Name != "_" {
					t.Lhs[i] = l.ident(n)
				}
			}
			out = append(out, &syntax.ExprStmt{X: t})
		}
	}

	if len(out) == 1 {
		return out[0]
	}
	return &syntax.Block{Stmts: out, At: s.Pos()}
}

func (l *lowerer) switchStmt(s *ast.SwitchStmt) syntax.Stmt {
	n := &syntax.Switch{At: s.Switch}
	if s.Tag != nil {
		n.Tag = l.expr(s.Tag)
	} else {
		n.Conditional = true
	}
	for _, c := range s.Body.List {
		cc := c.(*ast.CaseClause)
		sec := &syntax.SwitchSection{At: cc.Case}
		if cc.List == nil {
			sec.Labels = []syntax.Expr{nil}
		}
		for _, e := range cc.List {
			sec.Labels = append(sec.Labels, l.expr(e))
		}
		sec.Body = l.stmts(cc.Body)
		n.Sections = append(n.Sections, sec)
	}
	return n
}

func (l *lowerer) typeSwitch(s *ast.TypeSwitchStmt) syntax.Stmt {
	var (
		bound *ast.Ident
		x     ast.Expr
	)
	switch a := s.Assign.(type) {
	case *ast.AssignStmt:
		bound = a.Lhs[0].(*ast.Ident)
		x = a.Rhs[0].(*ast.TypeAssertExpr).X
	case *ast.ExprStmt:
		x = a.X.(*ast.TypeAssertExpr).X
	}

	n := &syntax.Switch{
		Tag: &syntax.Opaque{Text: types.ExprString(x) + ".(type)", Operands: []syntax.Expr{l.expr(x)}, At: x.Pos()},
		At:  s.Switch,
	}
	for _, c := range s.Body.List {
		cc := c.(*ast.CaseClause)
		sec := &syntax.SwitchSection{At: cc.Case}
		if cc.List == nil {
			sec.Labels = []syntax.Expr{nil}
		}
		for _, t := range cc.List {
			sec.Labels = append(sec.Labels, &syntax.Opaque{Text: types.ExprString(t), At: t.Pos()})
		}

		if bound != nil && bound.Name != "_" {
			if obj := l.info.Implicits[cc]; obj != nil {
				v := &syntax.LocalDecl{Name: l.bind(bound.Name, obj, bound.Pos()), Init: l.caseValue(cc, x)}
				sec.Body = append(sec.Body, v)
			}
		}
		sec.Body = append(sec.Body, l.stmts(cc.Body)...)
		n.Sections = append(n.Sections, sec)
	}
	return n
}

// caseValue is the value of a type switch variable inside clause cc.
func (l *lowerer) caseValue(cc *ast.CaseClause, x ast.Expr) syntax.Expr {
	if len(cc.List) != 1 {
		return l.expr(x)
	}
	if tv, ok := l.info.Types[cc.List[0]]; ok && tv.IsNil() {
		return l.null(cc.List[0].Pos())
	}
	return &syntax.Conversion{Type: types.ExprString(cc.List[0]), X: l.expr(x), At: cc.Case}
}

func (l *lowerer) selectStmt(s *ast.SelectStmt) syntax.Stmt {
	n := &syntax.Switch{Tag: &syntax.Opaque{Text: "select", At: s.Select}, At: s.Select}
	for i, c := range s.Body.List {
		cc := c.(*ast.CommClause)
		sec := &syntax.SwitchSection{At: cc.Case}
		if cc.Comm == nil {
			sec.Labels = []syntax.Expr{nil}
		} else {
			sec.Labels = []syntax.Expr{syntax.Number(strconv.Itoa(i))}
			sec.Body = append(sec.Body, l.stmt(cc.Comm))
		}
		sec.Body = append(sec.Body, l.stmts(cc.Body)...)
		n.Sections = append(n.Sections, sec)
	}
	return n
}

var compoundOps = map[token.Token]syntax.BinaryOp{
	token.ADD_ASSIGN:     syntax.OpAdd,
	token.SUB_ASSIGN:     syntax.OpSub,
	token.MUL_ASSIGN:     syntax.OpMul,
	token.QUO_ASSIGN:     syntax.OpDiv,
	token.REM_ASSIGN:     syntax.OpRem,
	token.AND_ASSIGN:     syntax.OpAnd,
	token.OR_ASSIGN:      syntax.OpOr,
	token.XOR_ASSIGN:     syntax.OpXor,
	token.SHL_ASSIGN:     syntax.OpShl,
	token.SHR_ASSIGN:     syntax.OpShr,
	token.AND_NOT_ASSIGN: syntax.OpAndNot,
}
