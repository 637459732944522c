// Code generated by hand for testing. DO NOT EDIT.

package generated

type Node struct {
	Val int
}

func zeroValue() int {
	var n *Node
	return n.Val
}
