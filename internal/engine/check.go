package engine

import (
	"fmt"

	"github.com/mpyw/pathcheck/internal/cfg"
	"github.com/mpyw/pathcheck/internal/symbolic"
	"github.com/mpyw/pathcheck/internal/syntax"
)

// ProgramPoint is a position in the graph: the instruction at Offset in
// Block, or the block end when Offset equals the instruction count.
type ProgramPoint struct {
	Block  *cfg.Block
	Offset int
}

// Instruction returns the instruction at p, or nil at the block end.
func (p ProgramPoint) Instruction() syntax.Node {
	if p.Block != nil && p.Offset < len(p.Block.Instructions) {
		return p.Block.Instructions[p.Offset]
	}
	return nil
}

func (p ProgramPoint) next() ProgramPoint {
	return ProgramPoint{Block: p.Block, Offset: p.Offset + 1}
}

func (p ProgramPoint) String() string {
	if p.Block == nil {
		return "<none>"
	}
	return fmt.Sprintf("B%d:%d", p.Block.ID, p.Offset)
}

// Node is one vertex of the exploded graph.
type Node struct {
	Point ProgramPoint
	State *symbolic.ProgramState
}

// Check observes and steers exploration.
type Check interface {
	// PreProcessInstruction runs before the instruction at p is processed.
	// It returns the state to continue with, or nil to prune the path.
	PreProcessInstruction(p ProgramPoint, s *symbolic.ProgramState) *symbolic.ProgramState
}

// InstructionProcessor is implemented by checks that give some instructions
// their own semantics. When handled is true the returned state replaces the
// transfer function's result; a nil state prunes the path.
type InstructionProcessor interface {
	TryProcessInstruction(instr syntax.Node, s *symbolic.ProgramState) (next *symbolic.ProgramState, handled bool)
}

// InstructionObserver is notified after each processed instruction, with the
// state holding the instruction's value on top of the stack.
type InstructionObserver interface {
	InstructionProcessed(instr syntax.Node, p ProgramPoint, s *symbolic.ProgramState)
}

// ConditionObserver is notified each time a condition is found to be
// feasibly true or false on some path.
type ConditionObserver interface {
	ConditionEvaluated(cond syntax.Expr, value bool)
}

// EndObserver is notified once the worklist is exhausted with every path
// explored. It is not called when a cap stopped or cut the walk, on
// cancellation or on a fault.
type EndObserver interface {
	ExplorationEnded()
}

// Listener groups optional notification callbacks.
type Listener struct {
	InstructionProcessed func(instr syntax.Node, p ProgramPoint, s *symbolic.ProgramState)
	ConditionEvaluated   func(cond syntax.Expr, value bool)
	ExplorationEnded     func()
}
