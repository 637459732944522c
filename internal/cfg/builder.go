package cfg

import (
	"github.com/pkg/errors"

	"github.com/mpyw/pathcheck/internal/syntax"
)

// ErrInvalidBody is returned when a body cannot be turned into a graph:
// undefined or duplicate labels, break or continue outside a loop, goto case
// without a matching section.
var ErrInvalidBody = errors.New("invalid body")

// ref addresses a block: non-negative values are arena ids, negative values
// are label indexes (-1 is label 0) resolved after construction.
type ref int

type pending struct {
	id           int
	kind         Kind
	instructions []syntax.Node // reversed while building
	successors   []ref
	branching    syntax.Node
	jump         syntax.Node
}

type label struct {
	name  string
	block int // -1 while unbound
}

// jumpScope is one enclosing loop or switch.
type jumpScope struct {
	label      string
	breakTo    ref
	continues  bool
	continueTo ref
}

type switchScope struct {
	sections []ref
	cases    map[string]ref
	def      ref
	hasDef   bool
	index    int
}

type builder struct {
	blocks     []*pending
	labels     []*label
	named      map[string]int // goto label name -> label index
	bound      map[string]bool
	current    *pending
	exit       *pending
	jumps      []*jumpScope
	switches   []*switchScope
	statements map[syntax.Node]struct{}
}

// Build returns the control flow graph of fn's body.
func Build(fn *syntax.Func) (g *Graph, err error) {
	if fn == nil || fn.Body == nil {
		return nil, errors.Wrap(ErrInvalidBody, "missing body")
	}

	b := &builder{
		named:      make(map[string]int),
		bound:      make(map[string]bool),
		statements: make(map[syntax.Node]struct{}),
	}

	defer func() {
		if r := recover(); r != nil {
			be, ok := r.(buildError)
			if !ok {
				panic(r)
			}
			g, err = nil, be.err
		}
	}()

	b.exit = b.newBlock(Exit)
	b.current = b.newSimple(b.refOf(b.exit))
	b.buildStmts(fn.Body.Stmts)

	return b.finish(b.current)
}

// buildError carries a construction failure out of the recursive descent.
type buildError struct{ err error }

func (b *builder) fail(format string, args ...any) {
	panic(buildError{errors.Wrapf(ErrInvalidBody, format, args...)})
}

// Blocks and labels.

func (b *builder) newBlock(kind Kind, successors ...ref) *pending {
	p := &pending{id: len(b.blocks), kind: kind, successors: successors}
	b.blocks = append(b.blocks, p)
	return p
}

func (b *builder) newSimple(next ref) *pending {
	return b.newBlock(Simple, next)
}

func (b *builder) newBinaryBranch(node syntax.Node, whenTrue, whenFalse ref) *pending {
	p := b.newBlock(BinaryBranch, whenTrue, whenFalse)
	p.branching = node
	return p
}

func (b *builder) newJump(node syntax.Node, target ref) *pending {
	p := b.newBlock(Jump, target)
	p.jump = node
	return p
}

func (b *builder) refOf(p *pending) ref {
	return ref(p.id)
}

func (b *builder) newLabel(name string) ref {
	b.labels = append(b.labels, &label{name: name, block: -1})
	return ref(-len(b.labels))
}

func (b *builder) bind(l ref, p *pending) {
	b.labels[-int(l)-1].block = p.id
}

func (b *builder) gotoLabel(name string) ref {
	if idx, ok := b.named[name]; ok {
		return ref(-idx - 1)
	}
	l := b.newLabel(name)
	b.named[name] = -int(l) - 1
	return l
}

// add prepends an instruction to the current block.
func (b *builder) add(n syntax.Node) {
	b.current.instructions = append(b.current.instructions, n)
}

// seal starts a fresh plain block flowing into the current one, so that code
// preceding a loop head or label does not end up inside it.
func (b *builder) seal() {
	b.current = b.newSimple(b.refOf(b.current))
}

// Statements.

func (b *builder) buildStmts(stmts []syntax.Stmt) {
	for i := len(stmts) - 1; i >= 0; i-- {
		b.buildStmt(stmts[i])
	}
}

func (b *builder) buildStmt(s syntax.Stmt) {
	b.buildLabeledStmt(s, "")
}

func (b *builder) buildLabeledStmt(s syntax.Stmt, name string) {
	switch s := s.(type) {
	case nil, *syntax.Empty:
	case *syntax.Block:
		b.buildStmts(s.Stmts)
	case *syntax.ExprStmt:
		b.buildExprStmt(s, s.X)
	case *syntax.LocalDecl:
		b.add(s)
		if s.Init != nil {
			b.buildExpr(s.Init)
		}
	case *syntax.If:
		b.buildIf(s)
	case *syntax.While:
		b.buildWhile(s, name)
	case *syntax.Do:
		b.buildDo(s, name)
	case *syntax.For:
		b.buildFor(s, name)
	case *syntax.ForEach:
		b.buildForEach(s, name)
	case *syntax.Switch:
		b.buildSwitch(s, name)
	case *syntax.Labeled:
		b.buildLabeled(s)
	case *syntax.Break:
		b.current = b.newJump(s, b.breakTarget(s.Label))
	case *syntax.Continue:
		b.current = b.newJump(s, b.continueTarget(s.Label))
	case *syntax.Goto:
		b.current = b.newJump(s, b.gotoLabel(s.Label))
	case *syntax.GotoCase:
		sw := b.innermostSwitch("goto case")
		target, ok := sw.cases[syntax.String(s.Value)]
		if !ok {
			b.fail("goto case %s: no such case", syntax.String(s.Value))
		}
		b.current = b.newJump(s, target)
	case *syntax.GotoDefault:
		sw := b.innermostSwitch("goto default")
		if !sw.hasDef {
			b.fail("goto default: switch has no default section")
		}
		b.current = b.newJump(s, sw.def)
	case *syntax.Fallthrough:
		sw := b.innermostSwitch("fallthrough")
		if sw.index+1 >= len(sw.sections) {
			b.fail("fallthrough: no next section")
		}
		b.current = b.newJump(s, sw.sections[sw.index+1])
	case *syntax.Return:
		b.current = b.newJump(s, b.refOf(b.exit))
		if s.Value != nil {
			b.buildExpr(s.Value)
		}
	case *syntax.Throw:
		b.current = b.newJump(s, b.refOf(b.exit))
		if s.Value != nil {
			b.buildExpr(s.Value)
		}
	case *syntax.YieldBreak:
		b.current = b.newJump(s, b.refOf(b.exit))
	case *syntax.Using:
		b.buildScoped(s, s.Body, func() {
			if s.Decl != nil {
				b.buildStmt(s.Decl)
				return
			}
			b.buildExpr(s.Resource)
		})
	case *syntax.Lock:
		b.buildScoped(s, s.Body, func() { b.buildExpr(s.X) })
	case *syntax.Fixed:
		b.buildScoped(s, s.Body, func() {
			for i := len(s.Decls) - 1; i >= 0; i-- {
				b.buildStmt(s.Decls[i])
			}
		})
	default:
		b.fail("unsupported statement %T", s)
	}
}

// buildExprStmt evaluates x and discards its value. When x is an instruction
// of its own it is marked as a statement, otherwise the statement node itself
// is emitted after x to drop the value its branches produced.
func (b *builder) buildExprStmt(stmt syntax.Node, x syntax.Expr) {
	x = syntax.Unparen(x)
	if syntax.IsInstruction(x) {
		b.statements[x] = struct{}{}
	} else {
		b.add(stmt)
	}
	b.buildExpr(x)
}

func (b *builder) buildIf(s *syntax.If) {
	after := b.refOf(b.current)

	b.current = b.newSimple(after)
	b.buildStmt(s.Then)
	thenStart := b.refOf(b.current)

	elseStart := after
	if s.Else != nil {
		b.current = b.newSimple(after)
		b.buildStmt(s.Else)
		elseStart = b.refOf(b.current)
	}

	b.current = b.newBinaryBranch(s, thenStart, elseStart)
	b.buildExpr(s.Cond)
}

func (b *builder) buildWhile(s *syntax.While, name string) {
	after := b.refOf(b.current)
	head := b.newLabel("")

	b.current = b.newSimple(head)
	b.withLoop(name, after, head, func() { b.buildStmt(s.Body) })
	bodyStart := b.refOf(b.current)

	b.current = b.newBinaryBranch(s, bodyStart, after)
	b.buildExpr(s.Cond)
	b.bind(head, b.current)
	b.seal()
}

func (b *builder) buildDo(s *syntax.Do, name string) {
	after := b.refOf(b.current)
	cond := b.newLabel("")
	body := b.newLabel("")

	b.current = b.newBinaryBranch(s, body, after)
	b.buildExpr(s.Cond)
	b.bind(cond, b.current)

	b.seal()
	b.withLoop(name, after, cond, func() { b.buildStmt(s.Body) })
	b.bind(body, b.current)
	b.seal()
}

func (b *builder) buildFor(s *syntax.For, name string) {
	after := b.refOf(b.current)
	cond := b.newLabel("")
	body := b.newLabel("")

	b.current = b.newSimple(cond)
	for i := len(s.Post) - 1; i >= 0; i-- {
		b.buildExprStmt(&syntax.ExprStmt{X: s.Post[i]}, s.Post[i])
	}
	incrementor := b.refOf(b.current)

	if s.Cond != nil {
		b.current = b.newBinaryBranch(s, body, after)
		b.buildExpr(s.Cond)
	} else {
		b.current = b.newSimple(body)
	}
	b.bind(cond, b.current)
	condStart := b.refOf(b.current)

	b.current = b.newSimple(incrementor)
	b.withLoop(name, after, incrementor, func() { b.buildStmt(s.Body) })
	b.bind(body, b.current)

	b.current = b.newSimple(condStart)
	b.buildStmts(s.Init)
}

func (b *builder) buildForEach(s *syntax.ForEach, name string) {
	after := b.refOf(b.current)
	head := b.newLabel("")

	b.current = b.newSimple(head)
	b.withLoop(name, after, head, func() { b.buildStmt(s.Body) })
	b.add(&syntax.ForEachBinding{Loop: s})
	bodyStart := b.refOf(b.current)

	branch := b.newBinaryBranch(s, bodyStart, after)
	b.bind(head, branch)

	b.current = b.newBlock(ForeachCollectionProducer, b.refOf(branch))
	b.buildExpr(s.Collection)
	b.seal()
}

func (b *builder) buildSwitch(s *syntax.Switch, name string) {
	after := b.refOf(b.current)

	sw := &switchScope{cases: make(map[string]ref)}
	for i, sec := range s.Sections {
		l := b.newLabel("")
		sw.sections = append(sw.sections, l)
		for _, lbl := range sec.Labels {
			if lbl == nil {
				if sw.hasDef {
					b.fail("switch: multiple default sections")
				}
				sw.def, sw.hasDef = l, true
				continue
			}
			if _, dup := sw.cases[syntax.String(lbl)]; !dup {
				sw.cases[syntax.String(lbl)] = sw.sections[i]
			}
		}
	}

	b.switches = append(b.switches, sw)
	b.jumps = append(b.jumps, &jumpScope{label: name, breakTo: after})
	for i := len(s.Sections) - 1; i >= 0; i-- {
		sw.index = i
		b.current = b.newSimple(after)
		b.buildStmts(s.Sections[i].Body)
		b.bind(sw.sections[i], b.current)
	}
	b.jumps = b.jumps[:len(b.jumps)-1]
	b.switches = b.switches[:len(b.switches)-1]

	noMatch := after
	if sw.hasDef {
		noMatch = sw.def
	}

	if s.Conditional {
		next := noMatch
		for i := len(s.Sections) - 1; i >= 0; i-- {
			labels := s.Sections[i].Labels
			for j := len(labels) - 1; j >= 0; j-- {
				if labels[j] == nil {
					continue
				}
				b.current = b.newBinaryBranch(labels[j], sw.sections[i], next)
				b.buildExpr(labels[j])
				next = b.refOf(b.current)
			}
		}
		b.current = b.newSimple(next)
		return
	}

	var successors []ref
	seen := make(map[ref]bool)
	for i, sec := range s.Sections {
		for _, lbl := range sec.Labels {
			if lbl != nil && !seen[sw.sections[i]] {
				seen[sw.sections[i]] = true
				successors = append(successors, sw.sections[i])
			}
		}
	}
	if !seen[noMatch] {
		successors = append(successors, noMatch)
	}

	b.current = b.newBlock(Branch, successors...)
	b.current.branching = s
	if s.Tag != nil {
		b.buildExpr(s.Tag)
	}
}

func (b *builder) buildLabeled(s *syntax.Labeled) {
	if b.bound[s.Label] {
		b.fail("label %s: defined more than once", s.Label)
	}
	b.bound[s.Label] = true

	l := b.gotoLabel(s.Label)
	b.buildLabeledStmt(s.Stmt, s.Label)
	b.bind(l, b.current)
	b.seal()
}

// buildScoped builds using, lock and fixed: the header evaluates the resource
// and the jump block enters the body.
func (b *builder) buildScoped(s syntax.Stmt, body syntax.Stmt, header func()) {
	b.current = b.newSimple(b.refOf(b.current))
	b.buildStmt(body)
	b.current = b.newJump(s, b.refOf(b.current))
	header()
}

func (b *builder) withLoop(name string, breakTo, continueTo ref, build func()) {
	b.jumps = append(b.jumps, &jumpScope{label: name, breakTo: breakTo, continues: true, continueTo: continueTo})
	build()
	b.jumps = b.jumps[:len(b.jumps)-1]
}

func (b *builder) breakTarget(name string) ref {
	for i := len(b.jumps) - 1; i >= 0; i-- {
		if name == "" || b.jumps[i].label == name {
			return b.jumps[i].breakTo
		}
	}
	if name != "" {
		b.fail("break %s: no enclosing statement with that label", name)
	}
	b.fail("break outside loop or switch")
	return 0
}

func (b *builder) continueTarget(name string) ref {
	for i := len(b.jumps) - 1; i >= 0; i-- {
		j := b.jumps[i]
		if !j.continues {
			continue
		}
		if name == "" || j.label == name {
			return j.continueTo
		}
	}
	if name != "" {
		b.fail("continue %s: no enclosing loop with that label", name)
	}
	b.fail("continue outside loop")
	return 0
}

func (b *builder) innermostSwitch(what string) *switchScope {
	if len(b.switches) == 0 {
		b.fail("%s outside switch", what)
	}
	return b.switches[len(b.switches)-1]
}

// Expressions.

func (b *builder) buildExpr(e syntax.Expr) {
	switch e := e.(type) {
	case nil, *syntax.Binding:
	case *syntax.Paren:
		b.buildExpr(e.X)
	case *syntax.Binary:
		if e.Op.IsShortCircuit() {
			b.buildShortCircuit(e)
			return
		}
		b.add(e)
		b.buildExpr(e.Right)
		b.buildExpr(e.Left)
	case *syntax.Conditional:
		after := b.refOf(b.current)
		b.current = b.newSimple(after)
		b.buildExpr(e.Else)
		elseStart := b.refOf(b.current)
		b.current = b.newSimple(after)
		b.buildExpr(e.Then)
		thenStart := b.refOf(b.current)
		b.current = b.newBinaryBranch(e, thenStart, elseStart)
		b.buildExpr(e.Cond)
	case *syntax.Coalesce:
		after := b.refOf(b.current)
		b.current = b.newSimple(after)
		b.buildExpr(e.Right)
		rightStart := b.refOf(b.current)
		b.current = b.newBinaryBranch(e, rightStart, after)
		b.buildExpr(e.Left)
	case *syntax.ConditionalAccess:
		after := b.refOf(b.current)
		b.current = b.newSimple(after)
		b.buildExpr(e.Access)
		accessStart := b.refOf(b.current)
		b.current = b.newBinaryBranch(e, after, accessStart)
		b.buildExpr(e.X)
	case *syntax.Unary:
		b.add(e)
		if _, ok := syntax.Unparen(e.X).(*syntax.Ident); ok && e.Op == syntax.OpAddr {
			return
		}
		b.buildExpr(e.X)
	case *syntax.Assign:
		b.add(e)
		b.buildExpr(e.Rhs)
		if e.Compound {
			b.buildExpr(e.Lhs)
			return
		}
		b.buildExprs(syntax.TargetOperands(e.Lhs))
	case *syntax.TupleAssign:
		b.add(e)
		b.buildExprs(e.Rhs)
		for i := len(e.Lhs) - 1; i >= 0; i-- {
			b.buildExprs(syntax.TargetOperands(e.Lhs[i]))
		}
	case *syntax.IncDec:
		b.add(e)
		b.buildExpr(e.X)
	case *syntax.MemberAccess:
		b.add(e)
		b.buildExpr(e.X)
	case *syntax.ElementAccess:
		b.add(e)
		b.buildExpr(e.Index)
		b.buildExpr(e.X)
	case *syntax.Invocation:
		b.add(e)
		b.buildExprs(e.Args)
		b.buildExpr(e.Fun)
	case *syntax.ObjectCreation:
		b.add(e)
		b.buildExprs(e.Args)
	case *syntax.Conversion:
		b.add(e)
		b.buildExpr(e.X)
	case *syntax.Opaque:
		b.add(e)
		b.buildExprs(e.Operands)
	default:
		b.add(e)
	}
}

// buildExprs builds list in evaluation order.
func (b *builder) buildExprs(list []syntax.Expr) {
	for i := len(list) - 1; i >= 0; i-- {
		b.buildExpr(list[i])
	}
}

// buildShortCircuit builds && and ||. The branch on the left operand either
// pushes the deciding constant and skips the right operand, or evaluates it.
func (b *builder) buildShortCircuit(e *syntax.Binary) {
	after := b.refOf(b.current)

	b.current = b.newSimple(after)
	b.buildExpr(e.Right)
	rightStart := b.refOf(b.current)

	if e.Op == syntax.OpAndAlso {
		b.current = b.newBinaryBranch(e, rightStart, after)
	} else {
		b.current = b.newBinaryBranch(e, after, rightStart)
	}
	b.buildExpr(e.Left)
}
