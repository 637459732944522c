// Package symbolic models program states for path-sensitive exploration.
//
// # Values
//
// A [Value] is an opaque token for an unknown runtime value. The set of
// variants is closed:
//
//	*Plain       fresh value with no structure (NullValue, TrueValue, ... are Plain)
//	*Not         !x
//	*And         x & y, x && y
//	*Or          x | y, x || y
//	*Xor         x ^ y
//	*Comparison  x < y, x <= y (> and >= swap operands)
//	*Equality    x == y, x != y (reference or value equality)
//	*Member      x.f
//
// Values are created by a run-scoped [Factory] and compared by identity.
//
// # Constraints
//
// A [Constraint] is a fact a state holds about a value: Null or NotNull in
// the nullability domain, True or False in the boolean domain. A value holds
// at most one constraint per domain, and a boolean constraint excludes Null.
//
// [TrySetConstraint] assumes a constraint and returns the states in which it
// can hold: none on contradiction, one when forced, two when the assumption
// splits (assuming a && b is false, for instance).
//
// # Program State
//
// A [ProgramState] is immutable. Every operation returns a new state that
// shares structure with the old one:
//
//	s2 := s.PushValue(v)
//	s3, top := s2.PopValue()   // s3 equals s, top == v
//
// The stack is a linked list of cells; symbol and constraint maps are
// persistent hash array mapped tries. States compare structurally with
// [ProgramState.Equal] and fingerprint with [ProgramState.Hash]; per-block
// visit counts are carried along but ignored by both.
package symbolic
