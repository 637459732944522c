package symbolic

import "fmt"

// Domain groups mutually exclusive constraints.
type Domain int

const (
	Nullability Domain = iota
	Boolean
)

// Constraint is a fact about a value. The zero value is no constraint.
type Constraint int

const (
	Null Constraint = iota + 1
	NotNull
	True
	False
)

// Domain returns the domain of c.
func (c Constraint) Domain() Domain {
	if c == True || c == False {
		return Boolean
	}
	return Nullability
}

// Opposite returns the other constraint of the same domain.
func (c Constraint) Opposite() Constraint {
	switch c {
	case Null:
		return NotNull
	case NotNull:
		return Null
	case True:
		return False
	case False:
		return True
	}
	return c
}

func (c Constraint) String() string {
	switch c {
	case Null:
		return "Null"
	case NotNull:
		return "NotNull"
	case True:
		return "True"
	case False:
		return "False"
	}
	return fmt.Sprintf("constraint(%d)", int(c))
}

// BoolConstraint returns True or False.
func BoolConstraint(b bool) Constraint {
	if b {
		return True
	}
	return False
}

// constraints is the set held by one value: at most one per domain.
type constraints [2]Constraint

func (cs constraints) with(c Constraint) constraints {
	cs[c.Domain()] = c
	return cs
}

func (cs constraints) empty() bool {
	return cs[Nullability] == 0 && cs[Boolean] == 0
}

// conflicts reports whether c cannot be added to cs.
func (cs constraints) conflicts(c Constraint) bool {
	if held := cs[c.Domain()]; held != 0 && held != c {
		return true
	}
	switch c.Domain() {
	case Boolean:
		return cs[Nullability] == Null
	default:
		return c == Null && cs[Boolean] != 0
	}
}
