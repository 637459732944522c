package nilderef

type Node struct {
	Val  int
	Next *Node
}

func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return 1 + n.Next.Len()
}

func (n Node) Value() int {
	return n.Val
}

type Shape interface {
	Area() float64
}

// ===== SHOULD REPORT =====

func zeroValue() int {
	var n *Node
	return n.Val // want "nil dereference of n"
}

func wrongGuard(n *Node) int {
	if n == nil {
		return n.Val // want "nil dereference of n"
	}
	return n.Val
}

func pointer(p *int) int {
	if p == nil {
		return *p // want "nil dereference of p"
	}
	return *p
}

func store() {
	var n *Node
	n.Val = 1 // want "nil dereference of n"
}

func valueMethod() int {
	var n *Node
	return n.Value() // want "nil dereference of n"
}

func nilInterface() float64 {
	var s Shape
	return s.Area() // want "nil dereference of s"
}

func shortCircuit(n *Node) bool {
	return n == nil && n.Val > 0 // want "nil dereference of n"
}

func closure() func() int {
	return func() int {
		var n *Node
		return n.Val // want "nil dereference of n"
	}
}

func assignedNil(n *Node) int {
	n = nil
	return n.Next.Val // want "nil dereference of n"
}

// ===== SHOULD NOT REPORT =====

func guarded(n *Node) int {
	if n != nil {
		return n.Val
	}
	return 0
}

func earlyReturn(n *Node) int {
	if n == nil {
		return 0
	}
	return n.Val
}

func pointerReceiver() int {
	var n *Node
	return n.Len()
}

func reassigned() int {
	var n *Node
	n = &Node{}
	return n.Val
}

func allocated() int {
	n := new(Node)
	return n.Val
}

func guardedOr(n *Node) bool {
	return n == nil || n.Val > 0
}

func walk(n *Node) int {
	total := 0
	for n != nil {
		total += n.Val
		n = n.Next
	}
	return total
}

func lookup(m map[string]*Node, k string) int {
	n, ok := m[k]
	if !ok || n == nil {
		return 0
	}
	return n.Val
}

func unknown(n *Node) int {
	return n.Val
}
