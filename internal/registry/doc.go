// Package registry maps check names to factories.
//
// # Overview
//
// The analyzer, the debug CLI and tests all select checks by name. A
// [Registry] keeps the known checks in a fixed order and builds a fresh set
// for every member explored, since checks carry per-member state.
//
//	reg := registry.Default()
//	enabled := reg.Enabled(map[string]bool{"constcond": true})
//	for _, c := range reg.Build(env, enabled) {
//	    explorer.AddCheck(c)
//	}
//
// # Built-in Registrations
//
//	nilcheckfunc  on   configured nil-check helpers constrain their argument
//	nilderef      on   dereference of a nil value
//	constcond     off  condition that always evaluates the same way
//
// constcond is off by default: loops whose exit the engine cannot model and
// defensive checks in generated code make it noisy on large code bases.
//
// # Custom Checks
//
//	reg.Register(registry.Entry{
//	    Name:           "mycheck",
//	    DefaultEnabled: true,
//	    New:            func(env checks.Env) engine.Check { return newMyCheck(env) },
//	})
//
// Registering an existing name replaces that check in place.
package registry
