package configfile

type Node struct {
	Val int
}

// nilderef is disabled by the configuration file.
func zeroValue() int {
	var n *Node
	return n.Val
}
