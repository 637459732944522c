package runner_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/pathcheck/internal/runner"
)

func TestMembers(t *testing.T) {
	const src = `package p

type T struct{}

var hook = func() {}

func F() {
	_ = func() {}
	_ = func() { _ = func() {} }
}

func (t *T) M() {
	_ = func() {}
}

func External()
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, 0)
	require.NoError(t, err)
	insp := inspector.New([]*ast.File{file})

	names := func(ms []runner.Member) []string {
		var out []string
		for _, m := range ms {
			out = append(out, m.Name)
		}
		return out
	}

	assert.Equal(t, []string{
		"init.func1",
		"F",
		"F.func1",
		"F.func2",
		"F.func3",
		"(*T).M",
		"(*T).M.func1",
	}, names(runner.Members(insp, nil)))

	skipM := func(n ast.Node) bool {
		fd, ok := n.(*ast.FuncDecl)
		return ok && fd.Name.Name == "M"
	}
	assert.Equal(t, []string{
		"init.func1",
		"F",
		"F.func1",
		"F.func2",
		"F.func3",
	}, names(runner.Members(insp, skipM)))
}
