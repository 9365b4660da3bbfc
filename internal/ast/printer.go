package ast

import "strings"

// String renders the tree with box-drawing guides, one node per line.
func (n *Node) String() string {
	var b strings.Builder
	n.print(&b, "", true)
	return b.String()
}

func (n *Node) print(b *strings.Builder, prefix string, last bool) {
	b.WriteString(prefix)
	if last {
		b.WriteString("└── ")
	} else {
		b.WriteString("├── ")
	}
	b.WriteString(n.Tag())
	b.WriteString("\n")

	childPrefix := prefix + "│   "
	if last {
		childPrefix = prefix + "    "
	}
	for i, child := range n.Children {
		child.print(b, childPrefix, i == len(n.Children)-1)
	}
}

// Sexpr renders the tree on one line, e.g.
// (Assignment(=) Identifier(x) (BinaryOp(+) Identifier(x) Number(1))).
func (n *Node) Sexpr() string {
	if len(n.Children) == 0 {
		if n.Kind.IsTerminal() {
			return n.Tag()
		}
		return "(" + n.Tag() + ")"
	}

	parts := make([]string, 0, len(n.Children)+1)
	parts = append(parts, n.Tag())
	for _, child := range n.Children {
		parts = append(parts, child.Sexpr())
	}
	return "(" + strings.Join(parts, " ") + ")"
}
