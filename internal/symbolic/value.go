package symbolic

import (
	"fmt"

	"github.com/mpyw/pathcheck/internal/syntax"
)

// Value is a symbolic value. See the package documentation for the variants.
type Value interface {
	// ID identifies the value within one exploration run.
	ID() uint64
	String() string
	value()
}

// Plain is a value without structure.
type Plain struct {
	id   uint64
	name string
}

// Not is the logical negation of Operand.
type Not struct {
	id      uint64
	Operand Value
}

// And is the logical conjunction of two boolean values.
type And struct {
	id          uint64
	Left, Right Value
}

// Or is the logical disjunction of two boolean values.
type Or struct {
	id          uint64
	Left, Right Value
}

// Xor is the exclusive disjunction of two boolean values.
type Xor struct {
	id          uint64
	Left, Right Value
}

// ComparisonKind is < or <=.
type ComparisonKind int

const (
	LessThan ComparisonKind = iota
	LessOrEqual
)

// Comparison is Left < Right or Left <= Right.
type Comparison struct {
	id          uint64
	Kind        ComparisonKind
	Left, Right Value
}

// EqualityKind distinguishes identity from value equality.
type EqualityKind int

const (
	ReferenceEquality EqualityKind = iota
	ValueEquality
)

// Equality is Left == Right, or Left != Right when Negated.
type Equality struct {
	id          uint64
	Kind        EqualityKind
	Negated     bool
	Left, Right Value
}

// Member is the value of field or property Name read from Target.
type Member struct {
	id     uint64
	Target Value
	Name   string
}

func (v *Plain) ID() uint64      { return v.id }
func (v *Not) ID() uint64        { return v.id }
func (v *And) ID() uint64        { return v.id }
func (v *Or) ID() uint64         { return v.id }
func (v *Xor) ID() uint64        { return v.id }
func (v *Comparison) ID() uint64 { return v.id }
func (v *Equality) ID() uint64   { return v.id }
func (v *Member) ID() uint64     { return v.id }

func (*Plain) value()      {}
func (*Not) value()        {}
func (*And) value()        {}
func (*Or) value()         {}
func (*Xor) value()        {}
func (*Comparison) value() {}
func (*Equality) value()   {}
func (*Member) value()     {}

func (v *Plain) String() string {
	if v.name != "" {
		return v.name
	}
	return fmt.Sprintf("v%d", v.id)
}

func (v *Not) String() string { return fmt.Sprintf("!%s", v.Operand) }
func (v *And) String() string { return fmt.Sprintf("(%s & %s)", v.Left, v.Right) }
func (v *Or) String() string  { return fmt.Sprintf("(%s | %s)", v.Left, v.Right) }
func (v *Xor) String() string { return fmt.Sprintf("(%s ^ %s)", v.Left, v.Right) }

func (v *Comparison) String() string {
	op := "<"
	if v.Kind == LessOrEqual {
		op = "<="
	}
	return fmt.Sprintf("(%s %s %s)", v.Left, op, v.Right)
}

func (v *Equality) String() string {
	op := "=="
	if v.Negated {
		op = "!="
	}
	if v.Kind == ValueEquality {
		op = "." + op
	}
	return fmt.Sprintf("(%s %s %s)", v.Left, op, v.Right)
}

func (v *Member) String() string { return fmt.Sprintf("%s.%s", v.Target, v.Name) }

// Predefined values shared by every run. Their constraints are seeded by
// NewProgramState.
var (
	NullValue  Value = &Plain{id: 1, name: "null"}
	TrueValue  Value = &Plain{id: 2, name: "true"}
	FalseValue Value = &Plain{id: 3, name: "false"}
	ThisValue  Value = &Plain{id: 4, name: "this"}
)

const firstID = 5

// IsPredefined reports whether v is one of the shared predefined values.
func IsPredefined(v Value) bool {
	return v.ID() < firstID
}

// Factory creates the values of one exploration run. It is not safe for
// concurrent use.
type Factory struct {
	next uint64
}

// NewFactory returns a factory whose ids do not collide with the predefined
// values.
func NewFactory() *Factory {
	return &Factory{next: firstID}
}

func (f *Factory) id() uint64 {
	id := f.next
	f.next++
	return id
}

// Plain returns a fresh value.
func (f *Factory) Plain() *Plain {
	return &Plain{id: f.id()}
}

// Not returns !operand. Double negation is folded.
func (f *Factory) Not(operand Value) Value {
	if n, ok := operand.(*Not); ok {
		return n.Operand
	}
	return &Not{id: f.id(), Operand: operand}
}

// And returns left & right.
func (f *Factory) And(left, right Value) *And {
	return &And{id: f.id(), Left: left, Right: right}
}

// Or returns left | right.
func (f *Factory) Or(left, right Value) *Or {
	return &Or{id: f.id(), Left: left, Right: right}
}

// Xor returns left ^ right.
func (f *Factory) Xor(left, right Value) *Xor {
	return &Xor{id: f.id(), Left: left, Right: right}
}

// Comparison returns left < right or left <= right.
func (f *Factory) Comparison(kind ComparisonKind, left, right Value) *Comparison {
	return &Comparison{id: f.id(), Kind: kind, Left: left, Right: right}
}

// Equality returns left == right, or left != right when negated.
func (f *Factory) Equality(kind EqualityKind, negated bool, left, right Value) *Equality {
	return &Equality{id: f.id(), Kind: kind, Negated: negated, Left: left, Right: right}
}

// Member returns a fresh value for target.name.
func (f *Factory) Member(target Value, name string) *Member {
	return &Member{id: f.id(), Target: target, Name: name}
}

// isBoolean reports whether v can only be true or false.
func isBoolean(v Value) bool {
	switch v.(type) {
	case *Not, *And, *Or, *Xor, *Comparison, *Equality:
		return true
	}
	return v == TrueValue || v == FalseValue
}

// operands returns the values v is built from.
func operands(v Value) []Value {
	switch v := v.(type) {
	case *Not:
		return []Value{v.Operand}
	case *And:
		return []Value{v.Left, v.Right}
	case *Or:
		return []Value{v.Left, v.Right}
	case *Xor:
		return []Value{v.Left, v.Right}
	case *Comparison:
		return []Value{v.Left, v.Right}
	case *Equality:
		return []Value{v.Left, v.Right}
	case *Member:
		return []Value{v.Target}
	}
	return nil
}

// MemberSymbol keys the value of a field read from a target value, so that
// two reads of x.f on one path yield the same value until something may have
// changed it.
type MemberSymbol struct {
	Target Value
	Field  string
}

// Name implements syntax.Symbol.
func (m MemberSymbol) Name() string {
	return m.Target.String() + "." + m.Field
}

var _ syntax.Symbol = MemberSymbol{}
