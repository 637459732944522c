package cfg

import (
	"github.com/pkg/errors"

	"github.com/mpyw/pathcheck/internal/syntax"
)

// finish resolves label references, bypasses empty plain blocks and numbers
// the blocks reachable from entry before the unreachable ones.
func (b *builder) finish(entry *pending) (*Graph, error) {
	blocks := make([]*Block, len(b.blocks))
	for i, p := range b.blocks {
		instructions := make([]syntax.Node, len(p.instructions))
		for j, n := range p.instructions {
			instructions[len(instructions)-1-j] = n
		}
		blocks[i] = &Block{
			Kind:          p.kind,
			Instructions:  instructions,
			BranchingNode: p.branching,
			JumpNode:      p.jump,
		}
	}

	for i, p := range b.blocks {
		successors := make([]*Block, len(p.successors))
		for j, r := range p.successors {
			id, err := b.resolve(r)
			if err != nil {
				return nil, err
			}
			successors[j] = blocks[id]
		}
		blocks[i].successors = successors
	}

	for _, blk := range blocks {
		for j, s := range blk.successors {
			blk.successors[j] = bypass(s)
		}
	}

	g := &Graph{
		Entry:      bypass(blocks[entry.id]),
		Exit:       blocks[b.exit.id],
		statements: b.statements,
	}

	visited := make(map[*Block]bool, len(blocks))
	g.all = preorder(g.Entry, visited, nil)
	g.Blocks = g.all[:len(g.all):len(g.all)]
	for _, blk := range blocks {
		if !visited[blk] && !bypassable(blk) {
			g.all = preorder(blk, visited, g.all)
		}
	}
	for i, blk := range g.all {
		blk.ID = i
	}

	return g, nil
}

func (b *builder) resolve(r ref) (int, error) {
	if r >= 0 {
		return int(r), nil
	}
	l := b.labels[-int(r)-1]
	if l.block < 0 {
		return 0, errors.Wrapf(ErrInvalidBody, "goto %s: label not defined", l.name)
	}
	return l.block, nil
}

func bypassable(b *Block) bool {
	return b.Kind == Simple && len(b.Instructions) == 0 && len(b.successors) == 1
}

// bypass follows chains of empty plain blocks. A chain closing on itself
// (an empty infinite loop) keeps the block where the cycle is detected.
func bypass(b *Block) *Block {
	seen := make(map[*Block]bool)
	for bypassable(b) && !seen[b] {
		seen[b] = true
		b = b.successors[0]
	}
	return b
}

func preorder(root *Block, visited map[*Block]bool, out []*Block) []*Block {
	stack := []*Block{root}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[b] {
			continue
		}
		visited[b] = true
		out = append(out, b)
		for i := len(b.successors) - 1; i >= 0; i-- {
			if !visited[b.successors[i]] {
				stack = append(stack, b.successors[i])
			}
		}
	}
	return out
}
