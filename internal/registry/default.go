package registry

import (
	"github.com/mpyw/pathcheck/internal/checks"
	"github.com/mpyw/pathcheck/internal/engine"
)

// Default returns a registry with the bundled checks. nilcheckfunc comes
// first so that its results are in place before other checks look at them.
func Default() *Registry {
	r := New()
	r.Register(Entry{
		Name:           checks.NilCheckFuncName,
		Doc:            "treat configured helpers as comparisons with nil",
		DefaultEnabled: true,
		New:            func(env checks.Env) engine.Check { return checks.NewNilCheckFunc(env) },
	})
	r.Register(Entry{
		Name:           checks.NilDerefName,
		Doc:            "report dereferences of values that are nil on some path",
		DefaultEnabled: true,
		New:            func(env checks.Env) engine.Check { return checks.NewNilDeref(env) },
	})
	r.Register(Entry{
		Name:           checks.ConstCondName,
		Doc:            "report conditions that always evaluate the same way",
		DefaultEnabled: false,
		New:            func(env checks.Env) engine.Check { return checks.NewConstCond(env) },
	})
	return r
}
