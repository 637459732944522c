package gosyntax

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"github.com/mpyw/pathcheck/internal/funcspec"
	"github.com/mpyw/pathcheck/internal/syntax"
	"github.com/mpyw/pathcheck/internal/typeutil"
)

var binaryOps = map[token.Token]syntax.BinaryOp{
	token.ADD:     syntax.OpAdd,
	token.SUB:     syntax.OpSub,
	token.MUL:     syntax.OpMul,
	token.QUO:     syntax.OpDiv,
	token.REM:     syntax.OpRem,
	token.SHL:     syntax.OpShl,
	token.SHR:     syntax.OpShr,
	token.AND_NOT: syntax.OpAndNot,
	token.AND:     syntax.OpAnd,
	token.OR:      syntax.OpOr,
	token.XOR:     syntax.OpXor,
	token.EQL:     syntax.OpEq,
	token.NEQ:     syntax.OpNotEq,
	token.LSS:     syntax.OpLess,
	token.LEQ:     syntax.OpLessEq,
	token.GTR:     syntax.OpGtr,
	token.GEQ:     syntax.OpGtrEq,
	token.LAND:    syntax.OpAndAlso,
	token.LOR:     syntax.OpOrElse,
}

func (l *lowerer) exprs(list []ast.Expr) []syntax.Expr {
	out := make([]syntax.Expr, 0, len(list))
	for _, e := range list {
		out = append(out, l.expr(e))
	}
	return out
}

func (l *lowerer) expr(e ast.Expr) syntax.Expr {
	out := l.lowerExpr(e)
	if t := l.info.TypeOf(e); t != nil {
		l.r.types[out] = t
	}
	return out
}

func (l *lowerer) lowerExpr(e ast.Expr) syntax.Expr {
	if tv, ok := l.info.Types[e]; ok {
		if tv.IsNil() {
			return l.null(e.Pos())
		}
		if tv.Value != nil {
			return constantLit(tv.Value, e.Pos())
		}
	}

	switch e := e.(type) {
	case *ast.Ident:
		return l.ident(e)

	case *ast.ParenExpr:
		return &syntax.Paren{X: l.expr(e.X)}

	case *ast.UnaryExpr:
		switch e.Op {
		case token.NOT:
			return &syntax.Unary{Op: syntax.OpNot, X: l.expr(e.X), At: e.OpPos}
		case token.SUB:
			return &syntax.Unary{Op: syntax.OpNeg, X: l.expr(e.X), At: e.OpPos}
		case token.AND:
			if cl, ok := ast.Unparen(e.X).(*ast.CompositeLit); ok {
				return l.composite(cl, l.info.TypeOf(e))
			}
			return &syntax.Unary{Op: syntax.OpAddr, X: l.expr(e.X), At: e.OpPos}
		case token.ARROW:
			return &syntax.Opaque{Text: types.ExprString(e), Operands: []syntax.Expr{l.expr(e.X)}, At: e.OpPos}
		}
		return &syntax.Unary{Op: syntax.OpOther, X: l.expr(e.X), At: e.OpPos}

	case *ast.StarExpr:
		return &syntax.Unary{Op: syntax.OpDeref, X: l.expr(e.X), At: e.Star}

	case *ast.BinaryExpr:
		op, ok := binaryOps[e.Op]
		if !ok {
			break
		}
		return &syntax.Binary{Op: op, Left: l.expr(e.X), Right: l.expr(e.Y), At: e.OpPos}

	case *ast.SelectorExpr:
		return l.selector(e)

	case *ast.IndexExpr:
		if l.isInstance(e.X) {
			return l.expr(e.X)
		}
		return &syntax.ElementAccess{X: l.expr(e.X), Index: l.expr(e.Index), At: e.Lbrack}

	case *ast.IndexListExpr:
		return l.expr(e.X)

	case *ast.SliceExpr:
		ops := []syntax.Expr{l.expr(e.X)}
		for _, x := range []ast.Expr{e.Low, e.High, e.Max} {
			if x != nil {
				ops = append(ops, l.expr(x))
			}
		}
		return &syntax.Opaque{Text: types.ExprString(e), Operands: ops, At: e.Lbrack}

	case *ast.CallExpr:
		return l.call(e)

	case *ast.CompositeLit:
		return l.composite(e, l.info.TypeOf(e))

	case *ast.FuncLit:
		return l.lambda(e)

	case *ast.TypeAssertExpr:
		if e.Type != nil {
			return &syntax.Conversion{Type: types.ExprString(e.Type), X: l.expr(e.X), At: e.Lparen}
		}

	case *ast.KeyValueExpr:
		return l.expr(e.Value)
	}

	return &syntax.Opaque{Text: types.ExprString(e), At: e.Pos()}
}

func constantLit(v constant.Value, at token.Pos) *syntax.Literal {
	switch v.Kind() {
	case constant.Bool:
		if constant.BoolVal(v) {
			return &syntax.Literal{Kind: syntax.LitTrue, At: at}
		}
		return &syntax.Literal{Kind: syntax.LitFalse, At: at}
	case constant.String:
		return &syntax.Literal{Kind: syntax.LitString, Value: constant.StringVal(v), At: at}
	}
	return &syntax.Literal{Kind: syntax.LitNumber, Value: v.ExactString(), At: at}
}

func (l *lowerer) selector(e *ast.SelectorExpr) syntax.Expr {
	sel, ok := l.info.Selections[e]
	if !ok || sel.Kind() == types.MethodExpr {
		// Qualified identifier or method expression: a name without a receiver.
		id := &syntax.Ident{Name: types.ExprString(e), At: e.Pos()}
		if obj := l.info.ObjectOf(e.Sel); obj != nil {
			l.r.objects[id] = obj
		}
		return id
	}

	xt := l.info.TypeOf(e.X)
	n := &syntax.MemberAccess{X: l.expr(e.X), Name: e.Sel.Name, At: e.Pos()}
	switch sel.Kind() {
	case types.FieldVal:
		n.NilSafe = !typeutil.IsPointer(xt)
	case types.MethodVal:
		n.NilSafe = nilSafeMethod(sel, xt)
	}
	return n
}

// nilSafeMethod reports whether selecting a method on a nil receiver of type
// xt is fine: pointer receivers get the nil pointer, while value receivers
// and interfaces dereference it.
func nilSafeMethod(sel *types.Selection, xt types.Type) bool {
	if typeutil.IsInterface(xt) {
		return false
	}
	if !typeutil.IsPointer(xt) {
		return true
	}
	fn, ok := sel.Obj().(*types.Func)
	if !ok {
		return false
	}
	recv := fn.Type().(*types.Signature).Recv()
	return recv != nil && typeutil.IsPointer(recv.Type())
}

func (l *lowerer) isInstance(x ast.Expr) bool {
	var id *ast.Ident
	switch x := ast.Unparen(x).(type) {
	case *ast.Ident:
		id = x
	case *ast.SelectorExpr:
		id = x.Sel
	default:
		return false
	}
	_, ok := l.info.Instances[id]
	return ok
}

func (l *lowerer) isBuiltin(fun ast.Expr, name string) bool {
	b, ok := l.builtin(fun)
	return ok && b.Name() == name
}

func (l *lowerer) builtin(fun ast.Expr) (*types.Builtin, bool) {
	id, ok := ast.Unparen(fun).(*ast.Ident)
	if !ok {
		return nil, false
	}
	b, ok := l.info.Uses[id].(*types.Builtin)
	return b, ok
}

func (l *lowerer) call(e *ast.CallExpr) syntax.Expr {
	if tv, ok := l.info.Types[e.Fun]; ok && tv.IsType() && len(e.Args) == 1 {
		return &syntax.Conversion{Type: types.ExprString(e.Fun), X: l.expr(e.Args[0]), At: e.Lparen}
	}

	if b, ok := l.builtin(e.Fun); ok {
		switch b.Name() {
		case "new":
			return &syntax.ObjectCreation{Type: typeutil.TypeName(l.info.TypeOf(e)), At: e.Pos()}
		case "make":
			return &syntax.ObjectCreation{Type: typeutil.TypeName(l.info.TypeOf(e)), Args: l.exprs(e.Args[1:]), At: e.Pos()}
		}
		return &syntax.Opaque{Text: types.ExprString(e), Operands: l.exprs(e.Args), At: e.Pos()}
	}

	inv := &syntax.Invocation{Fun: l.expr(e.Fun), Args: l.exprs(e.Args), At: e.Pos()}
	if fn := funcspec.ExtractFunc(l.info, e); fn != nil {
		l.r.callees[inv] = fn
	}
	return inv
}

func (l *lowerer) composite(e *ast.CompositeLit, t types.Type) syntax.Expr {
	return &syntax.ObjectCreation{Type: typeutil.TypeName(t), Args: l.exprs(e.Elts), At: e.Pos()}
}

// lambda lowers a function literal to a value capturing the outer locals
// its body uses.
func (l *lowerer) lambda(e *ast.FuncLit) syntax.Expr {
	var captures []*syntax.Ident
	seen := make(map[*types.Var]bool)
	ast.Inspect(e.Body, func(n ast.Node) bool {
		id, ok := n.(*ast.Ident)
		if !ok {
			return true
		}
		v, ok := localVar(l.info.Uses[id])
		if !ok || seen[v] || (v.Pos() >= e.Pos() && v.Pos() < e.End()) {
			return true
		}
		seen[v] = true
		captures = append(captures, l.bind(id.Name, v, id.Pos()))
		return true
	})
	return &syntax.Lambda{Captures: captures, At: e.Pos()}
}
