package checks

import (
	"github.com/mpyw/pathcheck/internal/engine"
	"github.com/mpyw/pathcheck/internal/symbolic"
	"github.com/mpyw/pathcheck/internal/syntax"
)

// NilCheckFunc gives calls of configured helpers the value "arg == nil", so
// that branching on IsNil(x) constrains x itself.
type NilCheckFunc struct {
	env Env
}

// NewNilCheckFunc returns the check for one member.
func NewNilCheckFunc(env Env) *NilCheckFunc {
	return &NilCheckFunc{env: env}
}

// PreProcessInstruction implements engine.Check.
func (c *NilCheckFunc) PreProcessInstruction(_ engine.ProgramPoint, s *symbolic.ProgramState) *symbolic.ProgramState {
	return s
}

// TryProcessInstruction implements engine.InstructionProcessor.
func (c *NilCheckFunc) TryProcessInstruction(instr syntax.Node, s *symbolic.ProgramState) (*symbolic.ProgramState, bool) {
	inv, ok := instr.(*syntax.Invocation)
	if !ok || len(inv.Args) != 1 || !c.matches(inv) {
		return nil, false
	}

	// Stack: callee, then the argument.
	s, vals := s.PopValues(2)
	eq := c.env.Factory.Equality(symbolic.ReferenceEquality, false, vals[1], symbolic.NullValue)
	return s.PushValue(eq), true
}

func (c *NilCheckFunc) matches(inv *syntax.Invocation) bool {
	if c.env.Callees == nil {
		return false
	}
	fn := c.env.Callees.Callee(inv)
	if fn == nil {
		return false
	}
	for _, m := range c.env.NilCheckFuncs {
		if m.Matches(fn) {
			return true
		}
	}
	return false
}
