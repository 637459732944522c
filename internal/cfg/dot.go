package cfg

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mpyw/pathcheck/internal/syntax"
)

// WriteDOT writes g in Graphviz DOT format. Only reachable blocks are drawn.
// Edges of binary branches are labeled with the outcome they stand for.
func WriteDOT(out io.Writer, g *Graph, title string) error {
	w := bufio.NewWriter(out)
	fmt.Fprintln(w, "digraph CFG {")
	fmt.Fprintln(w, "  node [shape=box, fontname=\"monospace\"];")
	if title != "" {
		fmt.Fprintf(w, "  labelloc=\"t\";\n  label=\"%s\";\n", escapeDOT(title))
	}

	for _, b := range g.Blocks {
		lines := []string{b.String()}
		for _, n := range b.Instructions {
			lines = append(lines, syntax.String(n))
		}
		if b.JumpNode != nil {
			lines = append(lines, "-> "+syntax.String(b.JumpNode))
		}
		fmt.Fprintf(w, "  n%d [label=\"%s\"];\n", b.ID, escapeDOT(strings.Join(lines, "\n")))
	}

	for _, b := range g.Blocks {
		for i, s := range b.Successors() {
			if label := edgeLabel(b, i); label != "" {
				fmt.Fprintf(w, "  n%d -> n%d [label=\"%s\"];\n", b.ID, s.ID, label)
				continue
			}
			fmt.Fprintf(w, "  n%d -> n%d;\n", b.ID, s.ID)
		}
	}
	fmt.Fprintln(w, "}")

	return w.Flush()
}

func edgeLabel(b *Block, i int) string {
	if b.Kind != BinaryBranch {
		return ""
	}
	switch b.BranchingNode.(type) {
	case *syntax.Coalesce, *syntax.ConditionalAccess:
		return [...]string{"null", "not null"}[i]
	case *syntax.ForEach:
		return [...]string{"next", "done"}[i]
	}
	return [...]string{"true", "false"}[i]
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
