package constcond

type Node struct {
	Val int
}

const verbose = false

// ===== SHOULD REPORT =====

func redundant(n *Node) int {
	v := n.Val
	if n == nil { // want "condition n == nil is always false"
		return 0
	}
	return v
}

func alwaysTrue() int {
	n := &Node{}
	if n != nil { // want "condition n != nil is always true"
		return n.Val
	}
	return 0
}

// ===== SHOULD NOT REPORT =====

func literal() int {
	if verbose {
		return 1
	}
	return 0
}

func both(n *Node) int {
	if n == nil {
		return 0
	}
	return n.Val
}
