package syntax

import "go/token"

type (
	// Block is a brace-delimited statement list.
	Block struct {
		Stmts []Stmt
		At    token.Pos
	}

	// ExprStmt evaluates an expression and discards its value.
	ExprStmt struct {
		X Expr
	}

	// LocalDecl declares a local variable with an optional initializer.
	LocalDecl struct {
		Name *Ident
		Init Expr // nil: fresh unknown value
	}

	// Empty is the empty statement ";".
	Empty struct {
		At token.Pos
	}

	// If is "if (Cond) Then else Else".
	If struct {
		Cond Expr
		Then Stmt
		Else Stmt // optional
		At   token.Pos
	}

	// While is "while (Cond) Body".
	While struct {
		Cond Expr
		Body Stmt
		At   token.Pos
	}

	// Do is "do Body while (Cond)".
	Do struct {
		Body Stmt
		Cond Expr
		At   token.Pos
	}

	// For is "for (Init; Cond; Post) Body". A nil Cond loops forever.
	For struct {
		Init []Stmt
		Cond Expr
		Post []Expr
		Body Stmt
		At   token.Pos
	}

	// ForEach is "foreach (var Vars in Collection) Body".
	ForEach struct {
		Vars       []*Ident
		Collection Expr
		Body       Stmt
		At         token.Pos
	}

	// Switch dispatches to one of its sections.
	//
	// A tagged switch (Tag != nil or Conditional == false) is a multi-way branch
	// whose case labels are constants. A conditional switch (Conditional == true)
	// evaluates its labels in order as boolean conditions, the first one to hold
	// selects the section.
	Switch struct {
		Tag         Expr
		Conditional bool
		Sections    []*SwitchSection
		At          token.Pos
	}

	// SwitchSection is one group of case labels with its statements.
	// A nil entry in Labels is the default label.
	SwitchSection struct {
		Labels []Expr
		Body   []Stmt
		At     token.Pos
	}

	// Break leaves the innermost (or labeled) loop or switch.
	Break struct {
		Label string
		At    token.Pos
	}

	// Continue starts the next iteration of the innermost (or labeled) loop.
	Continue struct {
		Label string
		At    token.Pos
	}

	// Goto jumps to a labeled statement.
	Goto struct {
		Label string
		At    token.Pos
	}

	// GotoCase jumps to the section of the enclosing switch labeled Value.
	GotoCase struct {
		Value Expr
		At    token.Pos
	}

	// GotoDefault jumps to the default section of the enclosing switch.
	GotoDefault struct {
		At token.Pos
	}

	// Fallthrough transfers control to the next switch section.
	Fallthrough struct {
		At token.Pos
	}

	// Labeled attaches a label to a statement.
	Labeled struct {
		Label string
		Stmt  Stmt
		At    token.Pos
	}

	// Return leaves the body, optionally with a value.
	Return struct {
		Value Expr // optional
		At    token.Pos
	}

	// Throw leaves the body abnormally, optionally with a value.
	Throw struct {
		Value Expr // optional
		At    token.Pos
	}

	// YieldBreak ends an iterator body.
	YieldBreak struct {
		At token.Pos
	}

	// Using scopes a disposable resource. Exactly one of Decl or Resource is set.
	Using struct {
		Decl     *LocalDecl
		Resource Expr
		Body     Stmt
		At       token.Pos
	}

	// Lock runs Body while holding the monitor of X.
	Lock struct {
		X    Expr
		Body Stmt
		At   token.Pos
	}

	// Fixed pins the declared variables for the duration of Body.
	Fixed struct {
		Decls []*LocalDecl
		Body  Stmt
		At    token.Pos
	}
)

func (s *Block) Pos() token.Pos         { return s.At }
func (s *ExprStmt) Pos() token.Pos      { return s.X.Pos() }
func (s *LocalDecl) Pos() token.Pos     { return s.Name.Pos() }
func (s *Empty) Pos() token.Pos         { return s.At }
func (s *If) Pos() token.Pos            { return s.At }
func (s *While) Pos() token.Pos         { return s.At }
func (s *Do) Pos() token.Pos            { return s.At }
func (s *For) Pos() token.Pos           { return s.At }
func (s *ForEach) Pos() token.Pos       { return s.At }
func (s *Switch) Pos() token.Pos        { return s.At }
func (s *SwitchSection) Pos() token.Pos { return s.At }
func (s *Break) Pos() token.Pos         { return s.At }
func (s *Continue) Pos() token.Pos      { return s.At }
func (s *Goto) Pos() token.Pos          { return s.At }
func (s *GotoCase) Pos() token.Pos      { return s.At }
func (s *GotoDefault) Pos() token.Pos   { return s.At }
func (s *Fallthrough) Pos() token.Pos   { return s.At }
func (s *Labeled) Pos() token.Pos       { return s.At }
func (s *Return) Pos() token.Pos        { return s.At }
func (s *Throw) Pos() token.Pos         { return s.At }
func (s *YieldBreak) Pos() token.Pos    { return s.At }
func (s *Using) Pos() token.Pos         { return s.At }
func (s *Lock) Pos() token.Pos          { return s.At }
func (s *Fixed) Pos() token.Pos         { return s.At }

func (*Block) node()         {}
func (*ExprStmt) node()      {}
func (*LocalDecl) node()     {}
func (*Empty) node()         {}
func (*If) node()            {}
func (*While) node()         {}
func (*Do) node()            {}
func (*For) node()           {}
func (*ForEach) node()       {}
func (*Switch) node()        {}
func (*SwitchSection) node() {}
func (*Break) node()         {}
func (*Continue) node()      {}
func (*Goto) node()          {}
func (*GotoCase) node()      {}
func (*GotoDefault) node()   {}
func (*Fallthrough) node()   {}
func (*Labeled) node()       {}
func (*Return) node()        {}
func (*Throw) node()         {}
func (*YieldBreak) node()    {}
func (*Using) node()         {}
func (*Lock) node()          {}
func (*Fixed) node()         {}

func (*Block) stmt()       {}
func (*ExprStmt) stmt()    {}
func (*LocalDecl) stmt()   {}
func (*Empty) stmt()       {}
func (*If) stmt()          {}
func (*While) stmt()       {}
func (*Do) stmt()          {}
func (*For) stmt()         {}
func (*ForEach) stmt()     {}
func (*Switch) stmt()      {}
func (*Break) stmt()       {}
func (*Continue) stmt()    {}
func (*Goto) stmt()        {}
func (*GotoCase) stmt()    {}
func (*GotoDefault) stmt() {}
func (*Fallthrough) stmt() {}
func (*Labeled) stmt()     {}
func (*Return) stmt()      {}
func (*Throw) stmt()       {}
func (*YieldBreak) stmt()  {}
func (*Using) stmt()       {}
func (*Lock) stmt()        {}
func (*Fixed) stmt()       {}
