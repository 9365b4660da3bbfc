package ast

import "tinyscript/token"

// Walk visits n and its descendants in pre-order, left to right. Returning
// false from fn skips the children of the node just visited.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, fn)
	}
}

// CollectAllNodes returns every node of the tree in pre-order.
func CollectAllNodes(root *Node) []*Node {
	var nodes []*Node
	Walk(root, func(n *Node, _ int) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}

// CollectByKind returns the nodes of the given kind in pre-order.
func CollectByKind(root *Node, kind Kind) []*Node {
	var nodes []*Node
	Walk(root, func(n *Node, _ int) bool {
		if n.Kind == kind {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// Equal compares two trees by kind, operator, text and child order.
// Positions are ignored.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Op != b.Op || a.Text != b.Text {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// FindTerminalAt returns the terminal whose text covers the offset, or nil.
func FindTerminalAt(root *Node, offset int) *Node {
	var found *Node
	Walk(root, func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.Kind.IsTerminal() && covers(n.Pos, len(n.Text), offset) {
			found = n
		}
		return true
	})
	return found
}

func covers(pos token.Position, length, offset int) bool {
	return offset >= pos.Offset && offset < pos.Offset+length
}
