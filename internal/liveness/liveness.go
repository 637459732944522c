// Package liveness computes the symbols live on entry to and exit from each
// block of a control flow graph.
//
// A symbol is live at a point if some path from there reads it before writing
// it. Symbols whose address is taken (&x) or that are captured by a lambda are
// treated as live everywhere: a write through the alias or from the closure is
// invisible to the graph.
//
// The analysis is the classic backward may-use dataflow, iterated to a fixed
// point in postorder so that most blocks see their successors' final sets on
// the first pass.
package liveness

import (
	"github.com/willf/bitset"

	"github.com/mpyw/pathcheck/internal/cfg"
	"github.com/mpyw/pathcheck/internal/syntax"
)

// Result holds the live sets of one graph.
type Result struct {
	index    map[syntax.Symbol]uint
	symbols  []syntax.Symbol
	in       []*bitset.BitSet
	out      []*bitset.BitSet
	captured *bitset.BitSet
	passes   int
}

type blockEffect struct {
	gen  *bitset.BitSet
	kill *bitset.BitSet
}

// Analyze computes liveness for the reachable blocks of g, resolving
// identifiers with r.
func Analyze(g *cfg.Graph, r syntax.Resolver) *Result {
	res := &Result{index: make(map[syntax.Symbol]uint)}
	n := len(g.Blocks)

	// Intern first so every set has its final length.
	for _, b := range g.Blocks {
		for _, instr := range b.Instructions {
			uses, defs, _ := access(instr, r)
			for _, s := range uses {
				res.intern(s)
			}
			for _, s := range defs {
				res.intern(s)
			}
		}
	}
	size := uint(len(res.symbols))

	res.captured = bitset.New(size)
	effects := make([]blockEffect, n)
	for _, b := range g.Blocks {
		e := blockEffect{gen: bitset.New(size), kill: bitset.New(size)}
		for i := len(b.Instructions) - 1; i >= 0; i-- {
			uses, defs, captured := access(b.Instructions[i], r)
			for _, s := range defs {
				e.kill.Set(res.index[s])
				e.gen.Clear(res.index[s])
			}
			for _, s := range uses {
				e.gen.Set(res.index[s])
			}
			for _, s := range captured {
				res.captured.Set(res.index[s])
			}
		}
		effects[b.ID] = e
	}

	res.in = make([]*bitset.BitSet, n)
	res.out = make([]*bitset.BitSet, n)
	for i := range n {
		res.in[i] = bitset.New(size)
		res.out[i] = bitset.New(size)
	}

	order := postorder(g)
	for changed := true; changed; {
		changed = false
		res.passes++
		for _, b := range order {
			out := bitset.New(size)
			for _, s := range b.Successors() {
				out.InPlaceUnion(res.in[s.ID])
			}
			e := effects[b.ID]
			in := out.Difference(e.kill)
			in.InPlaceUnion(e.gen)

			if !in.Equal(res.in[b.ID]) || !out.Equal(res.out[b.ID]) {
				changed = true
			}
			res.in[b.ID], res.out[b.ID] = in, out
		}
	}

	for i := range n {
		res.in[i].InPlaceUnion(res.captured)
		res.out[i].InPlaceUnion(res.captured)
	}

	return res
}

func (r *Result) intern(s syntax.Symbol) {
	if _, ok := r.index[s]; ok {
		return
	}
	r.index[s] = uint(len(r.symbols))
	r.symbols = append(r.symbols, s)
}

// LiveIn returns the symbols live on entry to b.
func (r *Result) LiveIn(b *cfg.Block) []syntax.Symbol {
	if !r.known(b) {
		return nil
	}
	return r.members(r.in[b.ID])
}

// LiveOut returns the symbols live on exit from b.
func (r *Result) LiveOut(b *cfg.Block) []syntax.Symbol {
	if !r.known(b) {
		return nil
	}
	return r.members(r.out[b.ID])
}

// IsLiveIn reports whether s is live on entry to b.
func (r *Result) IsLiveIn(b *cfg.Block, s syntax.Symbol) bool {
	idx, ok := r.index[s]
	return ok && r.known(b) && r.in[b.ID].Test(idx)
}

// IsLiveOut reports whether s is live on exit from b.
func (r *Result) IsLiveOut(b *cfg.Block, s syntax.Symbol) bool {
	idx, ok := r.index[s]
	return ok && r.known(b) && r.out[b.ID].Test(idx)
}

// Captured reports whether s is captured by a lambda or has its address taken.
func (r *Result) Captured(s syntax.Symbol) bool {
	idx, ok := r.index[s]
	return ok && r.captured.Test(idx)
}

// CapturedSymbols returns every captured symbol.
func (r *Result) CapturedSymbols() []syntax.Symbol {
	return r.members(r.captured)
}

// Passes returns the number of passes the fixed point took.
func (r *Result) Passes() int {
	return r.passes
}

func (r *Result) known(b *cfg.Block) bool {
	return b != nil && b.ID < len(r.in) && r.in[b.ID] != nil
}

func (r *Result) members(set *bitset.BitSet) []syntax.Symbol {
	var out []syntax.Symbol
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, r.symbols[i])
	}
	return out
}

// postorder orders the reachable blocks so that successors come before their
// predecessors, back edges aside.
func postorder(g *cfg.Graph) []*cfg.Block {
	visited := make(map[*cfg.Block]bool, len(g.Blocks))
	order := make([]*cfg.Block, 0, len(g.Blocks))

	type frame struct {
		block *cfg.Block
		next  int
	}
	stack := []frame{{block: g.Entry}}
	visited[g.Entry] = true
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succ := top.block.Successors()
		if top.next < len(succ) {
			s := succ[top.next]
			top.next++
			if !visited[s] {
				visited[s] = true
				stack = append(stack, frame{block: s})
			}
			continue
		}
		order = append(order, top.block)
		stack = stack[:len(stack)-1]
	}
	return order
}
