// Package ignore handles //pathcheck:ignore directives.
//
// A directive on the line of a finding, or on the line above it, suppresses
// the finding for the listed checks, or for all checks when none are listed.
// Directives that suppress nothing are reported back so they do not rot.
package ignore

import (
	"cmp"
	"go/ast"
	"go/token"
	"slices"
	"strings"
)

const prefix = "pathcheck:ignore"

// CheckerName is the registry name of a check, as written in a directive.
type CheckerName string

// EnabledCheckers is the set of checks that ran.
type EnabledCheckers map[CheckerName]bool

// KnownCheckers is the set of checks a directive may name, enabled or not.
type KnownCheckers map[CheckerName]bool

// Known builds the set of valid names from the registry names.
func Known(names []string) KnownCheckers {
	k := make(KnownCheckers, len(names))
	for _, n := range names {
		k[CheckerName(n)] = true
	}
	return k
}

// Entry is one directive along with the checks it actually suppressed.
type Entry struct {
	pos      token.Pos
	checkers []CheckerName // empty: all checks
	used     map[CheckerName]bool
}

func (e *Entry) matches(checker CheckerName) bool {
	return len(e.checkers) == 0 || slices.Contains(e.checkers, checker)
}

// Map holds the directives of one file by line.
type Map map[int]*Entry

// Build scans the comments of file for directives.
func Build(fset *token.FileSet, file *ast.File) Map {
	m := make(Map)
	for _, cg := range file.Comments {
		for _, c := range cg.List {
			checkers, ok := parseIgnoreComment(c.Text)
			if !ok {
				continue
			}
			m[fset.Position(c.Pos()).Line] = &Entry{
				pos:      c.Pos(),
				checkers: checkers,
				used:     make(map[CheckerName]bool),
			}
		}
	}
	return m
}

// parseIgnoreComment returns the check names of a directive, nil meaning all
// checks. ok is false when text is not a directive.
//
//	//pathcheck:ignore
//	//pathcheck:ignore nilderef,constcond
//	//pathcheck:ignore nilderef - reason
//	//pathcheck:ignore // reason
func parseIgnoreComment(text string) (checkers []CheckerName, ok bool) {
	text = strings.TrimSpace(strings.TrimPrefix(text, "//"))
	rest, ok := strings.CutPrefix(text, prefix)
	if !ok {
		return nil, false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		// e.g. //pathcheck:ignored
		return nil, false
	}

	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "//") || strings.HasPrefix(rest, "-") {
		return nil, true
	}
	for _, sep := range []string{" - ", " //"} {
		if before, _, found := strings.Cut(rest, sep); found {
			rest = before
		}
	}

	for part := range strings.SplitSeq(rest, ",") {
		if name := strings.TrimSpace(part); name != "" {
			checkers = append(checkers, CheckerName(name))
		}
	}
	return checkers, true
}

// ShouldIgnore reports whether a finding of checker on line is suppressed by
// a directive on that line or the one above, and marks the directive used.
func (m Map) ShouldIgnore(line int, checker CheckerName) bool {
	for _, l := range []int{line, line - 1} {
		if e := m[l]; e != nil && e.matches(checker) {
			e.used[checker] = true
			return true
		}
	}
	return false
}

// UnusedIgnore is a directive, or part of one, that suppressed nothing.
type UnusedIgnore struct {
	Pos token.Pos

	// Checkers lists enabled or disabled checks named by the directive that
	// suppressed nothing. It is empty when the whole directive is unused.
	Checkers []CheckerName

	// Unknown lists names that are not checks at all.
	Unknown []CheckerName
}

// GetUnusedIgnores returns the directives that suppressed nothing, ordered by
// position. A name outside known is reported as unknown rather than unused.
func (m Map) GetUnusedIgnores(enabled EnabledCheckers, known KnownCheckers) []UnusedIgnore {
	var out []UnusedIgnore
	for _, e := range m {
		if len(e.checkers) == 0 {
			if !anyUsed(e, enabled) {
				out = append(out, UnusedIgnore{Pos: e.pos})
			}
			continue
		}

		u := UnusedIgnore{Pos: e.pos}
		for _, c := range e.checkers {
			switch {
			case !known[c]:
				u.Unknown = append(u.Unknown, c)
			case !enabled[c] || !e.used[c]:
				u.Checkers = append(u.Checkers, c)
			}
		}
		if len(u.Checkers) > 0 || len(u.Unknown) > 0 {
			out = append(out, u)
		}
	}

	slices.SortFunc(out, func(a, b UnusedIgnore) int {
		return cmp.Compare(a.Pos, b.Pos)
	})
	return out
}

func anyUsed(e *Entry, enabled EnabledCheckers) bool {
	for c := range enabled {
		if e.used[c] {
			return true
		}
	}
	return false
}
