package ast

import (
	"fmt"

	"tinyscript/token"
)

type Kind int

const (
	PROGRAM Kind = iota

	// Statements
	DECLARATION
	ASSIGNMENT
	CONDITIONAL
	WHILE
	FOR
	PRINT
	PASS
	RETURN
	BREAK
	CONTINUE

	// Statement parts
	CONDITION
	IF_BRANCH
	ELIF_BRANCHES
	ELIF_BRANCH
	ELSE_BRANCH
	BODY

	// Expressions
	BINARY_OP
	LOGICAL
	LIST
	RANGE

	// Terminals
	IDENTIFIER
	NUMBER
	FLOAT
	STRING
	CHAR
	BOOL
)

var kindNames = [...]string{
	PROGRAM:       "Program",
	DECLARATION:   "Declaration",
	ASSIGNMENT:    "Assignment",
	CONDITIONAL:   "Conditional",
	WHILE:         "While",
	FOR:           "For",
	PRINT:         "Print",
	PASS:          "Pass",
	RETURN:        "Return",
	BREAK:         "Break",
	CONTINUE:      "Continue",
	CONDITION:     "Condition",
	IF_BRANCH:     "IfBranch",
	ELIF_BRANCHES: "ElifBranches",
	ELIF_BRANCH:   "ElifBranch",
	ELSE_BRANCH:   "ElseBranch",
	BODY:          "Body",
	BINARY_OP:     "BinaryOp",
	LOGICAL:       "Logical",
	LIST:          "List",
	RANGE:         "Range",
	IDENTIFIER:    "Identifier",
	NUMBER:        "Number",
	FLOAT:         "Float",
	STRING:        "String",
	CHAR:          "Char",
	BOOL:          "Bool",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTerminal reports whether nodes of this kind stand for a single token.
func (k Kind) IsTerminal() bool {
	return k >= IDENTIFIER && k <= BOOL
}

// Node is one parse tree node. Trees handed out by the parser are never
// modified afterwards, and a node is attached to at most one parent.
type Node struct {
	Kind Kind
	// Op is set for BINARY_OP, LOGICAL and ASSIGNMENT nodes.
	Op Operator
	// Text holds the lexeme of terminals, the type of a DECLARATION and the
	// spelling (pass or noop) of a PASS.
	Text     string
	Pos      token.Position
	Children []*Node
}

// New builds an interior node.
func New(kind Kind, pos token.Position, children ...*Node) *Node {
	return &Node{Kind: kind, Pos: pos, Children: children}
}

// NewOp builds an operator node over its operands.
func NewOp(kind Kind, op Operator, pos token.Position, operands ...*Node) *Node {
	return &Node{Kind: kind, Op: op, Pos: pos, Children: operands}
}

// NewLeaf builds a terminal node from the token it stands for.
func NewLeaf(kind Kind, tok token.Token) *Node {
	return &Node{Kind: kind, Text: tok.Lexeme, Pos: tok.Pos}
}

// Tag is the self-describing label of the node, e.g. "BinaryOp(+)" or
// "Identifier(x)". It is never empty.
func (n *Node) Tag() string {
	switch {
	case n.Op != NoOp:
		return fmt.Sprintf("%s(%s)", n.Kind, n.Op)
	case n.Text != "" && n.Kind != PASS:
		return fmt.Sprintf("%s(%s)", n.Kind, n.Text)
	default:
		return n.Kind.String()
	}
}

// Child returns the i-th child, or nil when there is none.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}
