package nilcheck

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"
)

func TestIsDirective(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"//pathcheck:nilcheck", true},
		{"// pathcheck:nilcheck", true},
		{"//pathcheck:nilcheck - reports nil configs", true},
		{"//pathcheck:ignore", false},
		{"// regular comment", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := isDirective(tt.text); got != tt.want {
				t.Errorf("isDirective(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	src := `package test

type Config struct{}

//pathcheck:nilcheck
func isNil(c *Config) bool { return c == nil }

//pathcheck:nilcheck
func wrongArity(a, b *Config) bool { return a == nil }

//pathcheck:nilcheck
func wrongResult(c *Config) int { return 0 }

func unmarked(c *Config) bool { return c == nil }

func (c *Config) Missing() bool { return c == nil }
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	info := &types.Info{Defs: map[*ast.Ident]types.Object{}}
	pkg, err := new(types.Config).Check("example.com/test", fset, []*ast.File{file}, info)
	if err != nil {
		t.Fatalf("Failed to type-check: %v", err)
	}

	m := Build(fset, info, []*ast.File{file}, []string{"example.com/test.Config.Missing"})

	if m.Len() != 2 {
		t.Errorf("Expected 2 helpers, got %d", m.Len())
	}

	lookup := func(name string) *types.Func {
		return pkg.Scope().Lookup(name).(*types.Func)
	}

	for name, want := range map[string]bool{
		"isNil":       true,
		"wrongArity":  false,
		"wrongResult": false,
		"unmarked":    false,
	} {
		if got := m.Matches(lookup(name)); got != want {
			t.Errorf("Matches(%s) = %v, want %v", name, got, want)
		}
	}

	cfg := pkg.Scope().Lookup("Config").(*types.TypeName)
	method, _, _ := types.LookupFieldOrMethod(cfg.Type(), true, pkg, "Missing")
	if !m.Matches(method.(*types.Func)) {
		t.Error("Expected external spec to match (*Config).Missing")
	}
}

func TestNilMap(t *testing.T) {
	var m *Map
	if m.Matches(nil) {
		t.Error("Expected nil map to match nothing")
	}
	if m.Len() != 0 {
		t.Errorf("Expected nil map length 0, got %d", m.Len())
	}
}
