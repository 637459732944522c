package metatest

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	reportMarker  = "===== SHOULD REPORT ====="
	cleanMarker   = "===== SHOULD NOT REPORT ====="
	wantDirective = "// want "
)

type section int

const (
	sectionNone section = iota
	sectionReport
	sectionClean
)

// fixture is one function of a checker fixture along with the section it
// was declared in.
type fixture struct {
	name    string
	section section
	wants   int
}

// TestFixtureSections checks that every function under a SHOULD REPORT
// marker expects at least one diagnostic and every function under a
// SHOULD NOT REPORT marker expects none.
func TestFixtureSections(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "src", "*", "*.go"))
	if err != nil {
		t.Fatalf("Failed to list fixtures: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("No fixtures found")
	}

	for _, file := range files {
		t.Run(filepath.Base(filepath.Dir(file)), func(t *testing.T) {
			for _, fx := range loadFixtures(t, file) {
				switch fx.section {
				case sectionReport:
					if fx.wants == 0 {
						t.Errorf("%s: %s is under %q but expects no diagnostic", file, fx.name, reportMarker)
					}
				case sectionClean:
					if fx.wants != 0 {
						t.Errorf("%s: %s is under %q but expects %d diagnostic(s)", file, fx.name, cleanMarker, fx.wants)
					}
				}
			}
		})
	}
}

// TestMarkedFixturesHaveBothSections checks that a fixture using the
// markers covers both the reporting and the clean side.
func TestMarkedFixturesHaveBothSections(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "src", "*", "*.go"))
	if err != nil {
		t.Fatalf("Failed to list fixtures: %v", err)
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", file, err)
		}
		src := string(data)
		hasReport := strings.Contains(src, reportMarker)
		hasClean := strings.Contains(src, cleanMarker)
		if hasReport != hasClean {
			t.Errorf("%s: has %q=%v but %q=%v", file, reportMarker, hasReport, cleanMarker, hasClean)
		}
	}
}

func loadFixtures(t *testing.T, file string) []fixture {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
	if err != nil {
		t.Fatalf("Failed to parse %s: %v", file, err)
	}

	// Markers and want comments, by line.
	markers := make(map[int]section)
	wants := make(map[int]int)
	for _, cg := range f.Comments {
		for _, c := range cg.List {
			line := fset.Position(c.Pos()).Line
			switch {
			case strings.Contains(c.Text, cleanMarker):
				markers[line] = sectionClean
			case strings.Contains(c.Text, reportMarker):
				markers[line] = sectionReport
			case strings.Contains(c.Text, wantDirective):
				wants[line]++
			}
		}
	}

	var out []fixture
	for _, decl := range f.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Body == nil {
			continue
		}
		start := fset.Position(fd.Pos()).Line
		end := fset.Position(fd.End()).Line

		fx := fixture{name: fd.Name.Name, section: sectionAt(markers, start)}
		for line := start; line <= end; line++ {
			fx.wants += wants[line]
		}
		out = append(out, fx)
	}
	return out
}

// sectionAt returns the section opened by the closest marker above line.
func sectionAt(markers map[int]section, line int) section {
	best, sec := 0, sectionNone
	for l, s := range markers {
		if l < line && l > best {
			best, sec = l, s
		}
	}
	return sec
}
