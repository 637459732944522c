package symbolic

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
	"slices"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/mpyw/pathcheck/internal/syntax"
)

// ErrStackUnderflow is the panic value of a pop on an empty stack. The
// explorer recovers it as an engine fault.
var ErrStackUnderflow = errors.New("symbolic: value stack underflow")

type cell struct {
	value Value
	next  *cell
}

// ProgramState is an immutable abstract state: a value stack, the value of
// each tracked symbol and the constraints held by values.
type ProgramState struct {
	stack       *cell
	depth       int
	symbols     *immutable.Map[syntax.Symbol, Value]
	constraints *immutable.Map[Value, constraints]
	visits      *immutable.Map[int, int]
}

var symbolSeed = maphash.MakeSeed()

type symbolHasher struct{}

func (symbolHasher) Hash(s syntax.Symbol) uint32 {
	return uint32(maphash.Comparable(symbolSeed, s))
}

func (symbolHasher) Equal(a, b syntax.Symbol) bool { return a == b }

type valueHasher struct{}

func (valueHasher) Hash(v Value) uint32 {
	id := v.ID()
	return uint32(id ^ id>>32)
}

func (valueHasher) Equal(a, b Value) bool { return a == b }

// NewProgramState returns the initial state: empty stack, no symbols, and the
// constraints of the predefined values.
func NewProgramState() *ProgramState {
	cs := immutable.NewMap[Value, constraints](valueHasher{})
	cs = cs.Set(NullValue, constraints{}.with(Null))
	cs = cs.Set(TrueValue, constraints{}.with(NotNull).with(True))
	cs = cs.Set(FalseValue, constraints{}.with(NotNull).with(False))
	cs = cs.Set(ThisValue, constraints{}.with(NotNull))

	return &ProgramState{
		symbols:     immutable.NewMap[syntax.Symbol, Value](symbolHasher{}),
		constraints: cs,
		visits:      immutable.NewMap[int, int](nil),
	}
}

func (s *ProgramState) clone() *ProgramState {
	c := *s
	return &c
}

// Stack.

// PushValue returns s with v on top of the stack.
func (s *ProgramState) PushValue(v Value) *ProgramState {
	n := s.clone()
	n.stack = &cell{value: v, next: s.stack}
	n.depth++
	return n
}

// PopValue returns s without its top value, and that value. It panics with
// ErrStackUnderflow if the stack is empty.
func (s *ProgramState) PopValue() (*ProgramState, Value) {
	if s.stack == nil {
		panic(ErrStackUnderflow)
	}
	n := s.clone()
	n.stack = s.stack.next
	n.depth--
	return n, s.stack.value
}

// PopValues pops count values and returns them in push order, so the last
// element was the top of the stack.
func (s *ProgramState) PopValues(count int) (*ProgramState, []Value) {
	values := make([]Value, count)
	for i := count - 1; i >= 0; i-- {
		s, values[i] = s.PopValue()
	}
	return s, values
}

// PeekValue returns the top value without popping it.
func (s *ProgramState) PeekValue() Value {
	return s.PeekValueAt(0)
}

// PeekValueAt returns the value depth cells below the top.
func (s *ProgramState) PeekValueAt(depth int) Value {
	c := s.stack
	for range depth {
		if c == nil {
			break
		}
		c = c.next
	}
	if c == nil {
		panic(ErrStackUnderflow)
	}
	return c.value
}

// StackDepth returns the number of values on the stack.
func (s *ProgramState) StackDepth() int {
	return s.depth
}

// Symbols.

// SetSymbolicValue binds sym to v.
func (s *ProgramState) SetSymbolicValue(sym syntax.Symbol, v Value) *ProgramState {
	n := s.clone()
	n.symbols = s.symbols.Set(sym, v)
	return n
}

// GetSymbolicValue returns the value bound to sym, if sym is tracked.
func (s *ProgramState) GetSymbolicValue(sym syntax.Symbol) (Value, bool) {
	return s.symbols.Get(sym)
}

// Symbols returns the tracked symbols.
func (s *ProgramState) Symbols() []syntax.Symbol {
	out := make([]syntax.Symbol, 0, s.symbols.Len())
	itr := s.symbols.Iterator()
	for !itr.Done() {
		k, _, _ := itr.Next()
		out = append(out, k)
	}
	return out
}

// Constraints.

// SetConstraint records c on v, replacing whatever v held in c's domain.
func (s *ProgramState) SetConstraint(v Value, c Constraint) *ProgramState {
	held, _ := s.constraints.Get(v)
	n := s.clone()
	n.constraints = s.constraints.Set(v, held.with(c))
	return n
}

// Constraint returns the constraint v holds in domain d.
func (s *ProgramState) Constraint(v Value, d Domain) (Constraint, bool) {
	held, _ := s.constraints.Get(v)
	c := held[d]
	return c, c != 0
}

// HasConstraint reports whether v holds c.
func (s *ProgramState) HasConstraint(v Value, c Constraint) bool {
	held, _ := s.constraints.Get(v)
	return held[c.Domain()] == c
}

func (s *ProgramState) held(v Value) constraints {
	held, _ := s.constraints.Get(v)
	return held
}

// Pruning.

// RemoveSymbols drops the locals keep rejects, then the member symbols and
// constraints of values no longer reachable from the stack or a symbol.
// Predefined values keep their constraints.
func (s *ProgramState) RemoveSymbols(keep func(syntax.Symbol) bool) *ProgramState {
	symbols := s.symbols
	itr := s.symbols.Iterator()
	for !itr.Done() {
		k, _, _ := itr.Next()
		if _, ok := k.(MemberSymbol); ok {
			continue
		}
		if !keep(k) {
			symbols = symbols.Delete(k)
		}
	}

	reachable := make(map[Value]bool)
	var mark func(Value)
	mark = func(v Value) {
		if reachable[v] {
			return
		}
		reachable[v] = true
		for _, o := range operands(v) {
			mark(o)
		}
	}
	for c := s.stack; c != nil; c = c.next {
		mark(c.value)
	}
	itr = symbols.Iterator()
	for !itr.Done() {
		k, v, _ := itr.Next()
		if _, ok := k.(MemberSymbol); !ok {
			mark(v)
		}
	}

	// Member symbols hang off reachable targets, possibly through other members.
	for changed := true; changed; {
		changed = false
		itr = symbols.Iterator()
		for !itr.Done() {
			k, v, _ := itr.Next()
			m, ok := k.(MemberSymbol)
			if ok && reachable[m.Target] && !reachable[v] {
				mark(v)
				changed = true
			}
		}
	}
	itr = symbols.Iterator()
	for !itr.Done() {
		k, _, _ := itr.Next()
		if m, ok := k.(MemberSymbol); ok && !reachable[m.Target] {
			symbols = symbols.Delete(k)
		}
	}

	cs := s.constraints
	citr := s.constraints.Iterator()
	for !citr.Done() {
		v, _, _ := citr.Next()
		if !IsPredefined(v) && !reachable[v] {
			cs = cs.Delete(v)
		}
	}

	n := s.clone()
	n.symbols = symbols
	n.constraints = cs
	return n
}

// RemoveMembers drops every member symbol, as after a call that may have
// written to any field.
func (s *ProgramState) RemoveMembers() *ProgramState {
	symbols := s.symbols
	itr := s.symbols.Iterator()
	for !itr.Done() {
		k, _, _ := itr.Next()
		if _, ok := k.(MemberSymbol); ok {
			symbols = symbols.Delete(k)
		}
	}
	if symbols == s.symbols {
		return s
	}
	n := s.clone()
	n.symbols = symbols
	return n
}

// Visits.

// Visits returns how many times the path leading to s entered block id.
func (s *ProgramState) Visits(block int) int {
	n, _ := s.visits.Get(block)
	return n
}

// WithVisit returns s with one more visit of block id.
func (s *ProgramState) WithVisit(block int) *ProgramState {
	n := s.clone()
	n.visits = s.visits.Set(block, s.Visits(block)+1)
	return n
}

// Equality.

// Equal reports whether s and o have the same stack, symbol bindings and
// constraints. Visit counts are ignored.
func (s *ProgramState) Equal(o *ProgramState) bool {
	if s == o {
		return true
	}
	if s.depth != o.depth || s.symbols.Len() != o.symbols.Len() || s.constraints.Len() != o.constraints.Len() {
		return false
	}
	for a, b := s.stack, o.stack; a != nil; a, b = a.next, b.next {
		if a == b {
			break
		}
		if a.value != b.value {
			return false
		}
	}

	itr := s.symbols.Iterator()
	for !itr.Done() {
		k, v, _ := itr.Next()
		if ov, ok := o.symbols.Get(k); !ok || ov != v {
			return false
		}
	}

	citr := s.constraints.Iterator()
	for !citr.Done() {
		v, cs, _ := citr.Next()
		if ocs, ok := o.constraints.Get(v); !ok || ocs != cs {
			return false
		}
	}
	return true
}

// Hash returns a fingerprint consistent with Equal. Map entries are combined
// by addition so the result does not depend on iteration order.
func (s *ProgramState) Hash() uint64 {
	d := xxhash.New()
	var buf [24]byte
	for c := s.stack; c != nil; c = c.next {
		binary.LittleEndian.PutUint64(buf[:8], c.value.ID())
		_, _ = d.Write(buf[:8])
	}
	h := d.Sum64()

	itr := s.symbols.Iterator()
	for !itr.Done() {
		k, v, _ := itr.Next()
		binary.LittleEndian.PutUint64(buf[:8], maphash.Comparable(symbolSeed, k))
		binary.LittleEndian.PutUint64(buf[8:16], v.ID())
		h += xxhash.Sum64(buf[:16])
	}

	citr := s.constraints.Iterator()
	for !citr.Done() {
		v, cs, _ := citr.Next()
		binary.LittleEndian.PutUint64(buf[:8], v.ID())
		binary.LittleEndian.PutUint64(buf[8:16], uint64(cs[Nullability]))
		binary.LittleEndian.PutUint64(buf[16:24], uint64(cs[Boolean]))
		h += xxhash.Sum64(buf[:24]) * 31
	}
	return h
}

// String renders s for debugging, with map entries sorted.
func (s *ProgramState) String() string {
	var stack []string
	for c := s.stack; c != nil; c = c.next {
		stack = append(stack, c.value.String())
	}

	var symbols []string
	itr := s.symbols.Iterator()
	for !itr.Done() {
		k, v, _ := itr.Next()
		symbols = append(symbols, k.Name()+"="+v.String())
	}
	slices.Sort(symbols)

	var cs []string
	citr := s.constraints.Iterator()
	for !citr.Done() {
		v, held, _ := citr.Next()
		if IsPredefined(v) || held.empty() {
			continue
		}
		var names []string
		for _, c := range held {
			if c != 0 {
				names = append(names, c.String())
			}
		}
		cs = append(cs, fmt.Sprintf("%s:%s", v, strings.Join(names, ",")))
	}
	slices.Sort(cs)

	return fmt.Sprintf("stack=[%s] symbols={%s} constraints={%s}",
		strings.Join(stack, " "), strings.Join(symbols, " "), strings.Join(cs, " "))
}
