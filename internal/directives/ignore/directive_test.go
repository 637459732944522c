package ignore

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

const (
	nilDeref  CheckerName = "nilderef"
	constCond CheckerName = "constcond"
)

func TestKnown(t *testing.T) {
	k := Known([]string{"nilderef", "constcond", "nilcheckfunc"})
	if len(k) != 3 {
		t.Errorf("Expected 3 known checkers, got %d", len(k))
	}
	if !k["nilcheckfunc"] {
		t.Error("Expected nilcheckfunc to be known")
	}
	if k["nilderf"] {
		t.Error("Expected nilderf to be unknown")
	}
}

func TestParseIgnoreComment(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   []CheckerName
		wantOk bool
	}{
		{
			name:   "basic ignore all",
			text:   "//pathcheck:ignore",
			want:   nil,
			wantOk: true,
		},
		{
			name:   "ignore specific checker",
			text:   "//pathcheck:ignore nilderef",
			want:   []CheckerName{nilDeref},
			wantOk: true,
		},
		{
			name:   "ignore multiple checkers",
			text:   "//pathcheck:ignore nilderef,constcond",
			want:   []CheckerName{nilDeref, constCond},
			wantOk: true,
		},
		{
			name:   "ignore with comment dash",
			text:   "//pathcheck:ignore - this is a reason",
			want:   nil,
			wantOk: true,
		},
		{
			name:   "ignore specific with comment",
			text:   "//pathcheck:ignore nilderef - this is a reason",
			want:   []CheckerName{nilDeref},
			wantOk: true,
		},
		{
			name:   "not an ignore comment",
			text:   "// regular comment",
			want:   nil,
			wantOk: false,
		},
		{
			name:   "ignore with leading space",
			text:   "// pathcheck:ignore",
			want:   nil,
			wantOk: true,
		},
		{
			name:   "ignore with inline comment",
			text:   "//pathcheck:ignore nilderef // comment",
			want:   []CheckerName{nilDeref},
			wantOk: true,
		},
		{
			name:   "ignore all with inline comment",
			text:   "//pathcheck:ignore // comment",
			want:   nil,
			wantOk: true,
		},
		{
			name:   "longer directive name",
			text:   "//pathcheck:ignored",
			want:   nil,
			wantOk: false,
		},
		{
			name:   "ignore dash only",
			text:   "//pathcheck:ignore -",
			want:   nil,
			wantOk: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseIgnoreComment(tt.text)
			if ok != tt.wantOk {
				t.Errorf("parseIgnoreComment() ok = %v, want %v", ok, tt.wantOk)
			}
			if len(got) != len(tt.want) {
				t.Errorf("parseIgnoreComment() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseIgnoreComment()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuild(t *testing.T) {
	src := `package test

//pathcheck:ignore
func ignored() {}

//pathcheck:ignore nilderef
func ignorednilDeref() {}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	m := Build(fset, file)

	// Should have 2 entries
	if len(m) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(m))
	}
}

func TestShouldIgnore(t *testing.T) {
	src := `package test

//pathcheck:ignore
func line3() {}

//pathcheck:ignore nilderef
func line6() {}

//pathcheck:ignore constcond
func line9() {}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	m := Build(fset, file)

	// Line 3: ignore all -> should ignore nilderef
	if !m.ShouldIgnore(3, nilDeref) && !m.ShouldIgnore(4, nilDeref) {
		t.Error("Expected line 3-4 to ignore nilderef")
	}

	// Line 6: ignore nilderef -> should ignore nilderef
	if !m.ShouldIgnore(6, nilDeref) && !m.ShouldIgnore(7, nilDeref) {
		t.Error("Expected line 6-7 to ignore nilderef")
	}

	// Line 6: ignore nilderef -> should NOT ignore constcond
	if m.ShouldIgnore(6, constCond) || m.ShouldIgnore(7, constCond) {
		t.Error("Expected line 6-7 to NOT ignore constcond")
	}

	// Line 9: ignore constcond -> should NOT ignore nilderef
	if m.ShouldIgnore(9, nilDeref) || m.ShouldIgnore(10, nilDeref) {
		t.Error("Expected line 9-10 to NOT ignore nilderef")
	}

	// Line 100: no comment -> should NOT ignore anything
	if m.ShouldIgnore(100, nilDeref) {
		t.Error("Expected line 100 to NOT ignore nilderef")
	}
}

var known = Known([]string{"nilderef", "constcond", "nilcheckfunc"})

func TestGetUnusedIgnores(t *testing.T) {
	src := `package test

//pathcheck:ignore
func unusedIgnoreAll() {}

//pathcheck:ignore nilderef
func unusedIgnoreSpecific() {}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	m := Build(fset, file)

	// All checkers enabled but not used
	enabled := EnabledCheckers{
		nilDeref:       true,
		constCond:      true,
		"nilcheckfunc": true,
	}

	unused := m.GetUnusedIgnores(enabled, known)

	// Should have 2 unused ignores
	if len(unused) != 2 {
		t.Errorf("Expected 2 unused ignores, got %d", len(unused))
	}
}

func TestGetUnusedIgnoresWithUsed(t *testing.T) {
	fset := token.NewFileSet()

	// Create a simple file manually
	file := &ast.File{
		Comments: []*ast.CommentGroup{
			{
				List: []*ast.Comment{
					{Slash: token.Pos(10), Text: "//pathcheck:ignore"},
				},
			},
		},
	}

	// Build manually since we don't have proper position info
	m := Build(fset, file)

	// Use one of the entries
	enabled := EnabledCheckers{nilDeref: true}
	line := fset.Position(token.Pos(10)).Line
	m.ShouldIgnore(line, nilDeref)

	unused := m.GetUnusedIgnores(enabled, known)

	// Should have 0 unused ignores (the one we have was used)
	if len(unused) != 0 {
		t.Errorf("Expected 0 unused ignores, got %d", len(unused))
	}
}

func TestGetUnusedIgnoresUnknownChecker(t *testing.T) {
	src := `package test

//pathcheck:ignore nilderf,constcond
func typo() {}

//pathcheck:ignore nilderef
func used() {}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	m := Build(fset, file)
	m.ShouldIgnore(7, nilDeref)

	// constcond is known but disabled.
	unused := m.GetUnusedIgnores(EnabledCheckers{nilDeref: true}, known)
	if len(unused) != 1 {
		t.Fatalf("Expected 1 unused ignore, got %d", len(unused))
	}
	if got := unused[0].Unknown; len(got) != 1 || got[0] != "nilderf" {
		t.Errorf("Unknown = %v, want [nilderf]", got)
	}
	if got := unused[0].Checkers; len(got) != 1 || got[0] != constCond {
		t.Errorf("Checkers = %v, want [constcond]", got)
	}
}
