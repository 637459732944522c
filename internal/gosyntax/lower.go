package gosyntax

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/pkg/errors"

	"github.com/mpyw/pathcheck/internal/syntax"
	"github.com/mpyw/pathcheck/internal/typeutil"
)

var (
	// ErrNoBody is returned for functions declared without a body.
	ErrNoBody = errors.New("function has no body")

	// ErrUnsupported is returned for nodes that are not functions.
	ErrUnsupported = errors.New("unsupported declaration")
)

type lowerer struct {
	info *types.Info
	r    *Resolver
}

// Lower converts a function declaration or literal into a syntax.Func.
func Lower(info *types.Info, decl ast.Node) (*syntax.Func, *Resolver, error) {
	var (
		ftype *ast.FuncType
		body  *ast.BlockStmt
		recv  *ast.FieldList
		name  string
	)
	switch d := decl.(type) {
	case *ast.FuncDecl:
		ftype, body, recv, name = d.Type, d.Body, d.Recv, FuncName(d)
	case *ast.FuncLit:
		ftype, body, name = d.Type, d.Body, "func literal"
	default:
		return nil, nil, errors.Wrapf(ErrUnsupported, "%T", decl)
	}
	if body == nil {
		return nil, nil, errors.Wrap(ErrNoBody, name)
	}

	l := &lowerer{info: info, r: newResolver()}
	fn := &syntax.Func{Name: name, At: decl.Pos()}
	for _, fields := range []*ast.FieldList{recv, ftype.Params} {
		if fields == nil {
			continue
		}
		for _, f := range fields.List {
			for _, n := range f.Names {
				if n.Name != "_" {
					fn.Params = append(fn.Params, l.ident(n))
				}
			}
		}
	}

	// Named results start at their zero value.
	var results []syntax.Stmt
	if ftype.Results != nil {
		for _, f := range ftype.Results.List {
			for _, n := range f.Names {
				if n.Name != "_" {
					results = append(results, &syntax.LocalDecl{Name: l.ident(n), Init: l.zero(n)})
				}
			}
		}
	}

	fn.Body = l.block(body)
	fn.Body.Stmts = append(results, fn.Body.Stmts...)
	return fn, l.r, nil
}

// FuncName returns the display name of a declaration: F, T.M or (*T).M.
func FuncName(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		return d.Name.Name
	}
	t := d.Recv.List[0].Type
	if star, ok := t.(*ast.StarExpr); ok {
		return "(*" + types.ExprString(recvBase(star.X)) + ")." + d.Name.Name
	}
	return types.ExprString(recvBase(t)) + "." + d.Name.Name
}

// recvBase strips type parameters from a receiver type.
func recvBase(t ast.Expr) ast.Expr {
	switch x := t.(type) {
	case *ast.IndexExpr:
		return x.X
	case *ast.IndexListExpr:
		return x.X
	}
	return t
}

func (l *lowerer) ident(id *ast.Ident) *syntax.Ident {
	n := &syntax.Ident{Name: id.Name, At: id.Pos()}
	if obj := l.info.ObjectOf(id); obj != nil {
		l.r.objects[n] = obj
		l.r.types[n] = obj.Type()
	}
	return n
}

// bind returns a fresh identifier standing for obj.
func (l *lowerer) bind(name string, obj types.Object, at token.Pos) *syntax.Ident {
	n := &syntax.Ident{Name: name, At: at}
	l.r.objects[n] = obj
	l.r.types[n] = obj.Type()
	return n
}

func (l *lowerer) null(at token.Pos) *syntax.Literal {
	return &syntax.Literal{Kind: syntax.LitNull, Value: "nil", At: at}
}

// zero returns the zero value of the variable declared by id, or nil when it
// is neither nil nor false.
func (l *lowerer) zero(id *ast.Ident) syntax.Expr {
	obj := l.info.ObjectOf(id)
	if obj == nil {
		return nil
	}
	switch {
	case typeutil.IsNilable(obj.Type()):
		return l.null(id.Pos())
	case typeutil.IsBool(obj.Type()):
		return &syntax.Literal{Kind: syntax.LitFalse, At: id.Pos()}
	}
	return nil
}

func isBlank(e ast.Expr) bool {
	id, ok := e.(*ast.Ident)
	return ok && id.Name == "_"
}
