package cfg

import (
	"fmt"

	"github.com/mpyw/pathcheck/internal/syntax"
)

// Kind tags the role of a block.
type Kind int

const (
	Simple Kind = iota
	BinaryBranch
	Jump
	Branch
	ForeachCollectionProducer
	Exit
)

var kindNames = map[Kind]string{
	Simple:                    "simple",
	BinaryBranch:              "binary-branch",
	Jump:                      "jump",
	Branch:                    "branch",
	ForeachCollectionProducer: "foreach-collection",
	Exit:                      "exit",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Block is a basic block. Blocks are immutable once the graph is built.
type Block struct {
	ID           int
	Kind         Kind
	Instructions []syntax.Node

	// BranchingNode is the construct deciding a BinaryBranch or Branch block.
	BranchingNode syntax.Node

	// JumpNode is the statement ending a Jump block: return, throw, break,
	// continue, goto, goto case, goto default, fallthrough, yield break, using,
	// lock or fixed.
	JumpNode syntax.Node

	successors []*Block
}

// Successors returns the ordered successors. Callers must not modify it.
func (b *Block) Successors() []*Block {
	return b.successors
}

// TrueSuccessor returns the first successor of a BinaryBranch block.
func (b *Block) TrueSuccessor() *Block {
	return b.successors[0]
}

// FalseSuccessor returns the second successor of a BinaryBranch block.
func (b *Block) FalseSuccessor() *Block {
	return b.successors[1]
}

func (b *Block) String() string {
	return fmt.Sprintf("B%d(%s)", b.ID, b.Kind)
}

// Graph is the control flow graph of one body.
type Graph struct {
	Entry *Block
	Exit  *Block

	// Blocks holds the blocks reachable from Entry, ordered by ID.
	Blocks []*Block

	all        []*Block
	statements map[syntax.Node]struct{}
}

// AllBlocks returns every block, including those only reachable through
// unreachable code (statements after an unconditional jump).
func (g *Graph) AllBlocks() []*Block {
	return g.all
}

// IsStatement reports whether the value of the instruction is discarded after
// it is evaluated (top level of an expression statement or a for incrementor).
func (g *Graph) IsStatement(n syntax.Node) bool {
	_, ok := g.statements[n]
	return ok
}
