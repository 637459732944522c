package nilcheckfunc

import "nilcheckfunc/util"

type Node struct {
	Val int
}

//pathcheck:nilcheck
func missing(n *Node) bool {
	return n == nil
}

// ===== SHOULD REPORT =====

func helperGuard(n *Node) int {
	if util.IsNil(n) {
		return n.Val // want "nil dereference of n"
	}
	return n.Val
}

func directiveGuard(n *Node) int {
	if missing(n) {
		return n.Val // want "nil dereference of n"
	}
	return n.Val
}

// ===== SHOULD NOT REPORT =====

func helperNegated(n *Node) int {
	if !util.IsNil(n) {
		return n.Val
	}
	return 0
}

func helperEarlyReturn(n *Node) int {
	if util.IsNil(n) {
		return 0
	}
	return n.Val
}
