package ignore

type Node struct {
	Val int
}

func sameLine() int {
	var n *Node
	return n.Val //pathcheck:ignore nilderef
}

func previousLine() int {
	var n *Node
	//pathcheck:ignore
	return n.Val
}

func withReason() int {
	var n *Node
	//pathcheck:ignore nilderef - known to be set by init
	return n.Val
}

func otherChecker() int {
	var n *Node
	//pathcheck:ignore constcond // want "unused pathcheck:ignore directive for checker\\(s\\): constcond"
	return n.Val // want "nil dereference of n"
}

//pathcheck:ignore // want "unused pathcheck:ignore directive"
func unused() {}

//pathcheck:ignore nilderef // want "unused pathcheck:ignore directive for checker\\(s\\): nilderef"
func unusedSpecific(n *Node) int {
	return n.Val
}

func unknownChecker() int {
	var n *Node
	//pathcheck:ignore nilderf // want "unknown checker\\(s\\) in pathcheck:ignore directive: nilderf"
	return n.Val // want "nil dereference of n"
}
