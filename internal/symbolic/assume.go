package symbolic

// TrySetConstraint returns the states derived from s in which v holds c.
// The result is empty when c contradicts what s already knows, has one state
// when the assumption is forced and two when it splits. Compound values
// propagate the assumption to their operands.
func TrySetConstraint(v Value, c Constraint, s *ProgramState) []*ProgramState {
	if s.held(v).conflicts(c) {
		return nil
	}
	if s.HasConstraint(v, c) {
		return []*ProgramState{s}
	}

	var states []*ProgramState
	if c.Domain() == Nullability {
		if isBoolean(v) && c == Null {
			return nil
		}
		states = []*ProgramState{s}
	} else {
		states = assumeBool(v, c == True, s)
	}

	out := make([]*ProgramState, 0, len(states))
	for _, st := range states {
		out = appendUnique(out, st.SetConstraint(v, c))
	}
	return out
}

func assumeBool(v Value, b bool, s *ProgramState) []*ProgramState {
	switch v := v.(type) {
	case *Not:
		return TrySetConstraint(v.Operand, BoolConstraint(!b), s)
	case *And:
		if b {
			return both(v.Left, True, v.Right, True, s)
		}
		return union(
			TrySetConstraint(v.Left, False, s),
			both(v.Left, True, v.Right, False, s),
		)
	case *Or:
		if !b {
			return both(v.Left, False, v.Right, False, s)
		}
		return union(
			TrySetConstraint(v.Left, True, s),
			both(v.Left, False, v.Right, True, s),
		)
	case *Xor:
		if b {
			return union(
				both(v.Left, True, v.Right, False, s),
				both(v.Left, False, v.Right, True, s),
			)
		}
		return union(
			both(v.Left, True, v.Right, True, s),
			both(v.Left, False, v.Right, False, s),
		)
	case *Comparison:
		if v.Left == v.Right {
			// x < x never holds, x <= x always does.
			if b != (v.Kind == LessOrEqual) {
				return nil
			}
		}
		return []*ProgramState{s}
	case *Equality:
		if b != v.Negated {
			return assumeEqual(v, s)
		}
		return assumeNotEqual(v, s)
	}
	return []*ProgramState{s}
}

// both assumes c1 on v1 and then c2 on v2.
func both(v1 Value, c1 Constraint, v2 Value, c2 Constraint, s *ProgramState) []*ProgramState {
	var out []*ProgramState
	for _, s1 := range TrySetConstraint(v1, c1, s) {
		out = append(out, TrySetConstraint(v2, c2, s1)...)
	}
	return out
}

func assumeEqual(e *Equality, s *ProgramState) []*ProgramState {
	if e.Left == e.Right {
		return []*ProgramState{s}
	}
	states := []*ProgramState{s}
	for _, d := range []Domain{Nullability, Boolean} {
		l, lok := s.Constraint(e.Left, d)
		r, rok := s.Constraint(e.Right, d)
		switch {
		case lok && rok:
			if l != r {
				return nil
			}
		case lok:
			states = assumeAll(states, e.Right, l)
		case rok:
			states = assumeAll(states, e.Left, r)
		}
	}
	return states
}

func assumeNotEqual(e *Equality, s *ProgramState) []*ProgramState {
	if e.Left == e.Right {
		return nil
	}
	if s.HasConstraint(e.Left, Null) {
		return TrySetConstraint(e.Right, NotNull, s)
	}
	if s.HasConstraint(e.Right, Null) {
		return TrySetConstraint(e.Left, NotNull, s)
	}
	if l, ok := s.Constraint(e.Left, Boolean); ok {
		return TrySetConstraint(e.Right, l.Opposite(), s)
	}
	if r, ok := s.Constraint(e.Right, Boolean); ok {
		return TrySetConstraint(e.Left, r.Opposite(), s)
	}
	return []*ProgramState{s}
}

func assumeAll(states []*ProgramState, v Value, c Constraint) []*ProgramState {
	var out []*ProgramState
	for _, s := range states {
		out = append(out, TrySetConstraint(v, c, s)...)
	}
	return out
}

func union(a, b []*ProgramState) []*ProgramState {
	out := make([]*ProgramState, 0, len(a)+len(b))
	for _, s := range a {
		out = appendUnique(out, s)
	}
	for _, s := range b {
		out = appendUnique(out, s)
	}
	return out
}

func appendUnique(list []*ProgramState, s *ProgramState) []*ProgramState {
	for _, o := range list {
		if o.Equal(s) {
			return list
		}
	}
	return append(list, s)
}
