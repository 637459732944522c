package runner

import (
	"fmt"
	"go/ast"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/pathcheck/internal/gosyntax"
)

// Members lists every function declaration with a body and every function
// literal, in source order. Literals are explored on their own and named
// after their enclosing declaration: F.func1, (*T).M.func2, init.func1 at
// package level. Nodes for which skip returns true are left out with
// everything below them.
func Members(insp *inspector.Inspector, skip func(ast.Node) bool) []Member {
	var members []Member
	lits := make(map[string]int)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.FuncLit)(nil),
	}
	insp.WithStack(nodeFilter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		if skip != nil && skip(n) {
			return false
		}
		switch n := n.(type) {
		case *ast.FuncDecl:
			if n.Body != nil {
				members = append(members, Member{Name: gosyntax.FuncName(n), Decl: n})
			}
		case *ast.FuncLit:
			outer := "init"
			for _, a := range stack {
				if fd, ok := a.(*ast.FuncDecl); ok {
					outer = gosyntax.FuncName(fd)
					break
				}
			}
			lits[outer]++
			members = append(members, Member{Name: fmt.Sprintf("%s.func%d", outer, lits[outer]), Decl: n})
		}
		return true
	})

	return members
}
