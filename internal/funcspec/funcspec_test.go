package funcspec_test

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/pathcheck/internal/funcspec"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want funcspec.Spec
	}{
		{"example.com/util.IsNil", funcspec.Spec{PkgPath: "example.com/util", FuncName: "IsNil"}},
		{"example.com/store.Handle.IsZero", funcspec.Spec{PkgPath: "example.com/store", TypeName: "Handle", FuncName: "IsZero"}},
		{"context.WithCancel", funcspec.Spec{PkgPath: "context", FuncName: "WithCancel"}},
		{"IsNil", funcspec.Spec{FuncName: "IsNil"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := funcspec.Parse(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.FullName())
		})
	}
}

func TestParseList(t *testing.T) {
	got := funcspec.ParseList(" a.com/x.F, ,b.com/y.T.M ")
	assert.Equal(t, []funcspec.Spec{
		{PkgPath: "a.com/x", FuncName: "F"},
		{PkgPath: "b.com/y", TypeName: "T", FuncName: "M"},
	}, got)
	assert.Empty(t, funcspec.ParseList(""))
}

const src = `package util

type Handle struct{}

func (*Handle) IsZero() bool { return true }

func IsNil(v any) bool { return v == nil }

func use(h *Handle, f func(any) bool) {
	_ = IsNil(h)
	_ = h.IsZero()
	_ = f(h)
}
`

func TestExtractFunc(t *testing.T) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "util.go", src, 0)
	require.NoError(t, err)

	info := &types.Info{
		Uses:       map[*ast.Ident]types.Object{},
		Defs:       map[*ast.Ident]types.Object{},
		Selections: map[*ast.SelectorExpr]*types.Selection{},
	}
	conf := types.Config{Importer: importer.Default()}
	_, err = conf.Check("example.com/util", fset, []*ast.File{file}, info)
	require.NoError(t, err)

	var calls []*ast.CallExpr
	ast.Inspect(file, func(n ast.Node) bool {
		if c, ok := n.(*ast.CallExpr); ok {
			calls = append(calls, c)
		}
		return true
	})
	require.Len(t, calls, 3)

	isNil := funcspec.Parse("example.com/util.IsNil")
	isZero := funcspec.Parse("example.com/util.Handle.IsZero")

	fn := funcspec.ExtractFunc(info, calls[0])
	require.NotNil(t, fn)
	assert.True(t, isNil.Matches(fn))
	assert.False(t, isZero.Matches(fn))

	fn = funcspec.ExtractFunc(info, calls[1])
	require.NotNil(t, fn)
	assert.True(t, isZero.Matches(fn))

	assert.Nil(t, funcspec.ExtractFunc(info, calls[2]))
}
