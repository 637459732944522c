// Package nilcheck handles //pathcheck:nilcheck directives and the
// -nilcheck-funcs flag.
//
// A helper marked with the directive, or listed in the flag, reports whether
// its single argument is nil:
//
//	//pathcheck:nilcheck
//	func isNil(c *Config) bool { return c == nil }
//
// Calls to it are then explored as if they were the comparison itself.
package nilcheck

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"github.com/mpyw/pathcheck/internal/funcspec"
	"github.com/mpyw/pathcheck/internal/typeutil"
)

// Map tracks nil-check helpers.
type Map struct {
	local    map[*types.Func]struct{} // from directives
	external []funcspec.Spec          // from -nilcheck-funcs flag or config
}

// Matches checks if fn is a nil-check helper. It implements
// checks.FuncMatcher.
func (m *Map) Matches(fn *types.Func) bool {
	if m == nil {
		return false
	}

	// Check local map first (directive-based)
	if _, ok := m.local[fn]; ok {
		return true
	}

	// Check external specs (flag-based)
	for _, spec := range m.external {
		if spec.Matches(fn) {
			return true
		}
	}

	return false
}

// Len returns the total number of helpers (local + external).
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.local) + len(m.external)
}

// Build scans files for functions marked with the directive and adds the
// external helper specs.
func Build(fset *token.FileSet, info *types.Info, files []*ast.File, external []string) *Map {
	m := &Map{
		local:    make(map[*types.Func]struct{}),
		external: funcspec.ParseList(strings.Join(external, ",")),
	}

	for _, file := range files {
		buildForFile(fset, info, file, m.local)
	}

	return m
}

// buildForFile scans a single file for nilcheck directives.
func buildForFile(fset *token.FileSet, info *types.Info, file *ast.File, m map[*types.Func]struct{}) {
	// Build a set of directive lines for quick lookup
	directiveLines := make(map[int]bool)

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if isDirective(c.Text) {
				directiveLines[fset.Position(c.Pos()).Line] = true
			}
		}
	}

	if len(directiveLines) == 0 {
		return
	}

	// Find function declarations that have the directive on the previous line
	for _, decl := range file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		if !directiveLines[fset.Position(funcDecl.Pos()).Line-1] {
			continue
		}

		fn, ok := info.ObjectOf(funcDecl.Name).(*types.Func)
		if !ok || !isHelperSignature(fn) {
			continue
		}

		m[fn] = struct{}{}
	}
}

// isHelperSignature reports whether fn takes one argument and returns a
// single bool.
func isHelperSignature(fn *types.Func) bool {
	sig := fn.Type().(*types.Signature)
	return sig.Params().Len() == 1 &&
		sig.Results().Len() == 1 &&
		typeutil.IsBool(sig.Results().At(0).Type())
}

// isDirective checks if a comment is a nilcheck directive.
func isDirective(text string) bool {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)

	return strings.HasPrefix(text, "pathcheck:nilcheck")
}
