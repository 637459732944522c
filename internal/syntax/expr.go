package syntax

import "go/token"

// LiteralKind classifies literal values.
type LiteralKind int

const (
	LitNull LiteralKind = iota
	LitTrue
	LitFalse
	LitNumber
	LitString
	LitChar
)

// UnaryOp is a prefix or postfix operator other than ++ and --.
type UnaryOp int

const (
	OpNot   UnaryOp = iota // !x
	OpNeg                  // -x
	OpDeref                // *x
	OpAddr                 // &x
	OpOther                // +x, ^x, <-x, ...
)

// BinaryOp is a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpShl
	OpShr
	OpAndNot
	OpAnd    // & (logical on booleans)
	OpOr     // | (logical on booleans)
	OpXor    // ^ (logical on booleans)
	OpEq     // ==
	OpNotEq  // !=
	OpLess   // <
	OpLessEq // <=
	OpGtr    // >
	OpGtrEq  // >=
	OpAndAlso
	OpOrElse
)

var binaryOpText = map[BinaryOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpRem: "%",
	OpShl: "<<", OpShr: ">>", OpAndNot: "&^",
	OpAnd: "&", OpOr: "|", OpXor: "^",
	OpEq: "==", OpNotEq: "!=", OpLess: "<", OpLessEq: "<=", OpGtr: ">", OpGtrEq: ">=",
	OpAndAlso: "&&", OpOrElse: "||",
}

func (op BinaryOp) String() string {
	if s, ok := binaryOpText[op]; ok {
		return s
	}
	return "?"
}

// IsShortCircuit reports whether op is && or ||.
func (op BinaryOp) IsShortCircuit() bool {
	return op == OpAndAlso || op == OpOrElse
}

type (
	// Ident is a name reference.
	Ident struct {
		Name string
		At   token.Pos
	}

	// Literal is a constant.
	Literal struct {
		Kind  LiteralKind
		Value string // source text for numbers, strings and chars; the host spelling of null
		At    token.Pos
	}

	// Paren is a parenthesized expression.
	Paren struct {
		X Expr
	}

	// Unary is a prefix operator application.
	Unary struct {
		Op UnaryOp
		X  Expr
		At token.Pos
	}

	// Binary is a binary operator application.
	Binary struct {
		Op    BinaryOp
		Left  Expr
		Right Expr
		At    token.Pos
	}

	// Assign is "Lhs = Rhs" or a compound assignment "Lhs op= Rhs" when
	// Compound is set.
	Assign struct {
		Lhs      Expr
		Rhs      Expr
		Op       BinaryOp
		Compound bool
		At       token.Pos
	}

	// TupleAssign assigns several targets at once. With a single Rhs and several
	// Lhs, the right side yields a tuple.
	TupleAssign struct {
		Lhs []Expr // nil entries are discarded targets
		Rhs []Expr
		At  token.Pos
	}

	// IncDec is "X++" or "X--".
	IncDec struct {
		X   Expr
		Inc bool
		At  token.Pos
	}

	// Conditional is "Cond ? Then : Else".
	Conditional struct {
		Cond Expr
		Then Expr
		Else Expr
		At   token.Pos
	}

	// Coalesce is "Left ?? Right".
	Coalesce struct {
		Left  Expr
		Right Expr
		At    token.Pos
	}

	// ConditionalAccess is "X?.Access", where Access is an expression rooted at
	// a Binding that stands for the non-null value of X.
	ConditionalAccess struct {
		X      Expr
		Access Expr
		At     token.Pos
	}

	// Binding is the receiver placeholder inside ConditionalAccess.Access.
	Binding struct {
		At token.Pos
	}

	// MemberAccess is "X.Name". NilSafe marks accesses that do not dereference
	// their target (static members, pointer-receiver methods).
	MemberAccess struct {
		X       Expr
		Name    string
		NilSafe bool
		At      token.Pos
	}

	// ElementAccess is "X[Index]".
	ElementAccess struct {
		X     Expr
		Index Expr
		At    token.Pos
	}

	// Invocation is "Fun(Args...)".
	Invocation struct {
		Fun  Expr
		Args []Expr
		At   token.Pos
	}

	// ObjectCreation allocates a new object. Its value is never null.
	ObjectCreation struct {
		Type string
		Args []Expr
		At   token.Pos
	}

	// Lambda is an anonymous function value. Captures lists the outer locals
	// its body refers to.
	Lambda struct {
		Captures []*Ident
		At       token.Pos
	}

	// Conversion changes the static type of X but keeps its value.
	Conversion struct {
		Type string
		X    Expr
		At   token.Pos
	}

	// Opaque is any host expression without special semantics. Its operands are
	// evaluated in order and it yields a fresh value.
	Opaque struct {
		Text     string
		Operands []Expr
		At       token.Pos
	}

	// ForEachBinding is the implicit per-iteration assignment of a foreach
	// loop's variables. The CFG builder emits it as the first instruction of the
	// loop body.
	ForEachBinding struct {
		Loop *ForEach
	}
)

func (e *Ident) Pos() token.Pos             { return e.At }
func (e *Literal) Pos() token.Pos           { return e.At }
func (e *Paren) Pos() token.Pos             { return e.X.Pos() }
func (e *Unary) Pos() token.Pos             { return e.At }
func (e *Binary) Pos() token.Pos            { return e.At }
func (e *Assign) Pos() token.Pos            { return e.At }
func (e *TupleAssign) Pos() token.Pos       { return e.At }
func (e *IncDec) Pos() token.Pos            { return e.At }
func (e *Conditional) Pos() token.Pos       { return e.At }
func (e *Coalesce) Pos() token.Pos          { return e.At }
func (e *ConditionalAccess) Pos() token.Pos { return e.At }
func (e *Binding) Pos() token.Pos           { return e.At }
func (e *MemberAccess) Pos() token.Pos      { return e.At }
func (e *ElementAccess) Pos() token.Pos     { return e.At }
func (e *Invocation) Pos() token.Pos        { return e.At }
func (e *ObjectCreation) Pos() token.Pos    { return e.At }
func (e *Lambda) Pos() token.Pos            { return e.At }
func (e *Conversion) Pos() token.Pos        { return e.At }
func (e *Opaque) Pos() token.Pos            { return e.At }
func (e *ForEachBinding) Pos() token.Pos    { return e.Loop.At }

func (*Ident) node()             {}
func (*Literal) node()           {}
func (*Paren) node()             {}
func (*Unary) node()             {}
func (*Binary) node()            {}
func (*Assign) node()            {}
func (*TupleAssign) node()       {}
func (*IncDec) node()            {}
func (*Conditional) node()       {}
func (*Coalesce) node()          {}
func (*ConditionalAccess) node() {}
func (*Binding) node()           {}
func (*MemberAccess) node()      {}
func (*ElementAccess) node()     {}
func (*Invocation) node()        {}
func (*ObjectCreation) node()    {}
func (*Lambda) node()            {}
func (*Conversion) node()        {}
func (*Opaque) node()            {}
func (*ForEachBinding) node()    {}

func (*Ident) expr()             {}
func (*Literal) expr()           {}
func (*Paren) expr()             {}
func (*Unary) expr()             {}
func (*Binary) expr()            {}
func (*Assign) expr()            {}
func (*TupleAssign) expr()       {}
func (*IncDec) expr()            {}
func (*Conditional) expr()       {}
func (*Coalesce) expr()          {}
func (*ConditionalAccess) expr() {}
func (*Binding) expr()           {}
func (*MemberAccess) expr()      {}
func (*ElementAccess) expr()     {}
func (*Invocation) expr()        {}
func (*ObjectCreation) expr()    {}
func (*Lambda) expr()            {}
func (*Conversion) expr()        {}
func (*Opaque) expr()            {}

// Constructors for literals, mostly used by front-ends and tests.

// Null returns a null literal.
func Null() *Literal { return &Literal{Kind: LitNull} }

// True returns a true literal.
func True() *Literal { return &Literal{Kind: LitTrue} }

// False returns a false literal.
func False() *Literal { return &Literal{Kind: LitFalse} }

// Number returns a numeric literal with the given source text.
func Number(text string) *Literal { return &Literal{Kind: LitNumber, Value: text} }

// StringLit returns a string literal with the given unquoted value.
func StringLit(value string) *Literal { return &Literal{Kind: LitString, Value: value} }

// Unparen strips any number of enclosing parentheses.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*Paren)
		if !ok {
			return e
		}
		e = p.X
	}
}

// TargetOperands returns the operands evaluated for the target of a store, in
// evaluation order. Identifiers need none; x.f needs x; x[i] needs x and i;
// *p needs p.
func TargetOperands(lhs Expr) []Expr {
	switch t := Unparen(lhs).(type) {
	case *MemberAccess:
		if _, ok := t.X.(*Binding); ok {
			return nil
		}
		return []Expr{t.X}
	case *ElementAccess:
		return []Expr{t.X, t.Index}
	case *Unary:
		if t.Op == OpDeref {
			return []Expr{t.X}
		}
	}
	return nil
}

// IsInstruction reports whether e is evaluated as a single instruction of its
// own. Parentheses and the operators that branch (&&, ||, ?:, ??, ?.) are not:
// their value is produced by the branches they split into.
func IsInstruction(e Expr) bool {
	switch e := e.(type) {
	case *Paren, *Conditional, *Coalesce, *ConditionalAccess, *Binding:
		return false
	case *Binary:
		return !e.Op.IsShortCircuit()
	}
	return true
}
