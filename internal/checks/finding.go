package checks

import (
	"cmp"
	"fmt"
	"go/token"
	"go/types"
	"slices"

	"github.com/mpyw/pathcheck/internal/symbolic"
	"github.com/mpyw/pathcheck/internal/syntax"
)

// Names of the bundled checks, as used by flags, config files and
// //pathcheck:ignore directives.
const (
	NilDerefName     = "nilderef"
	ConstCondName    = "constcond"
	NilCheckFuncName = "nilcheckfunc"
)

// Finding is one reported defect.
type Finding struct {
	Check   string
	Pos     token.Pos
	Message string
}

// Collector gathers the findings of one member. A path-sensitive check may
// hit the same instruction on several paths, so duplicates are dropped.
type Collector struct {
	findings []Finding
	seen     map[Finding]bool
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[Finding]bool)}
}

// Reportf records a finding.
func (c *Collector) Reportf(check string, pos token.Pos, format string, args ...any) {
	f := Finding{Check: check, Pos: pos, Message: fmt.Sprintf(format, args...)}
	if c.seen[f] {
		return
	}
	c.seen[f] = true
	c.findings = append(c.findings, f)
}

// Findings returns the findings ordered by position.
func (c *Collector) Findings() []Finding {
	out := slices.Clone(c.findings)
	slices.SortStableFunc(out, func(a, b Finding) int {
		return cmp.Compare(a.Pos, b.Pos)
	})
	return out
}

// CalleeResolver maps invocations to the statically known function they call.
type CalleeResolver interface {
	Callee(inv *syntax.Invocation) *types.Func
}

// Env is what a check receives for the member it explores.
type Env struct {
	Factory   *symbolic.Factory
	Resolver  syntax.Resolver
	Callees   CalleeResolver // optional
	Collector *Collector

	// NilCheckFuncs lists helpers whose single argument is compared to nil.
	NilCheckFuncs []FuncMatcher
}

// FuncMatcher reports whether fn is a configured function.
type FuncMatcher interface {
	Matches(fn *types.Func) bool
}
