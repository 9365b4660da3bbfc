package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"tinyscript/token"
)

func ident(name string) *Node {
	return NewLeaf(IDENTIFIER, token.Token{Kind: token.IDENTIFIER, Lexeme: name})
}

func number(lexeme string) *Node {
	return NewLeaf(NUMBER, token.Token{Kind: token.NUMBER, Lexeme: lexeme})
}

func TestTags(t *testing.T) {
	assert.Equal(t, "Program", New(PROGRAM, token.Position{}).Tag())
	assert.Equal(t, "Identifier(x)", ident("x").Tag())
	assert.Equal(t, "Number(42)", number("42").Tag())
	assert.Equal(t, "BinaryOp(<=)", NewOp(BINARY_OP, LE, token.Position{}, ident("a"), ident("b")).Tag())
	assert.Equal(t, "Logical(or)", NewOp(LOGICAL, OR, token.Position{}).Tag())
	assert.Equal(t, "Assignment(=)", NewOp(ASSIGNMENT, ASSIGN, token.Position{}).Tag())
	assert.Equal(t, "Declaration(float)", (&Node{Kind: DECLARATION, Text: "float"}).Tag())
	assert.Equal(t, "Pass", (&Node{Kind: PASS, Text: "noop"}).Tag())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestProgramString(t *testing.T) {
	program := New(PROGRAM, token.Position{},
		New(PRINT, token.Position{}, NewLeaf(STRING, token.Token{Lexeme: `"hi"`})),
		New(BREAK, token.Position{}),
	)

	expected := "└── Program\n" +
		"    ├── Print\n" +
		"    │   └── String(\"hi\")\n" +
		"    └── Break\n"
	assert.Equal(t, expected, program.String())
}

func TestSexpr(t *testing.T) {
	assign := NewOp(ASSIGNMENT, ASSIGN, token.Position{},
		ident("x"),
		NewOp(BINARY_OP, ADD, token.Position{}, ident("x"), number("1")),
	)
	assert.Equal(t, "(Assignment(=) Identifier(x) (BinaryOp(+) Identifier(x) Number(1)))", assign.Sexpr())
	assert.Equal(t, "(Pass)", (&Node{Kind: PASS, Text: "pass"}).Sexpr())
}

func TestEqualIgnoresPositions(t *testing.T) {
	a := NewOp(BINARY_OP, ADD, token.Position{Line: 1}, ident("x"), number("1"))
	b := NewOp(BINARY_OP, ADD, token.Position{Line: 7, Column: 3}, ident("x"), number("1"))
	assert.True(t, Equal(a, b))

	c := NewOp(BINARY_OP, SUB, token.Position{}, ident("x"), number("1"))
	assert.False(t, Equal(a, c))

	d := NewOp(BINARY_OP, ADD, token.Position{}, ident("x"))
	assert.False(t, Equal(a, d))

	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(a, nil))
}

func TestWalkOrder(t *testing.T) {
	tree := New(PROGRAM, token.Position{},
		NewOp(ASSIGNMENT, ASSIGN, token.Position{}, ident("x"), number("1")),
		New(RETURN, token.Position{}, ident("x")),
	)

	var tags []string
	var depths []int
	Walk(tree, func(n *Node, depth int) bool {
		tags = append(tags, n.Tag())
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{"Program", "Assignment(=)", "Identifier(x)", "Number(1)", "Return", "Identifier(x)"}, tags)
	assert.Equal(t, []int{0, 1, 2, 2, 1, 2}, depths)

	var pruned []string
	Walk(tree, func(n *Node, _ int) bool {
		pruned = append(pruned, n.Tag())
		return n.Kind != ASSIGNMENT
	})
	assert.Equal(t, []string{"Program", "Assignment(=)", "Return", "Identifier(x)"}, pruned)

	assert.Len(t, CollectByKind(tree, IDENTIFIER), 2)
	assert.Len(t, CollectAllNodes(tree), 6)
}

func TestFindTerminalAt(t *testing.T) {
	x := NewLeaf(IDENTIFIER, token.Token{Lexeme: "count", Pos: token.Position{Offset: 10}})
	one := NewLeaf(NUMBER, token.Token{Lexeme: "1", Pos: token.Position{Offset: 18}})
	tree := New(PROGRAM, token.Position{}, NewOp(ASSIGNMENT, ASSIGN, token.Position{Offset: 10}, x, one))

	assert.Same(t, x, FindTerminalAt(tree, 12))
	assert.Same(t, one, FindTerminalAt(tree, 18))
	assert.Nil(t, FindTerminalAt(tree, 16))
}

func TestOperators(t *testing.T) {
	op, ok := BinaryOperator("!=")
	assert.True(t, ok)
	assert.Equal(t, NE, op)
	assert.True(t, op.IsComparison())

	op, ok = BinaryOperator("and")
	assert.True(t, ok)
	assert.Equal(t, AND, op)
	assert.False(t, op.IsComparison())

	_, ok = BinaryOperator("=")
	assert.False(t, ok, "assignment is not a binary operator")

	for spelling, want := range map[string]Operator{"+=": ADD, "-=": SUB, "*=": MUL, "/=": DIV} {
		op, ok := CompoundBase(spelling)
		assert.True(t, ok)
		assert.Equal(t, want, op)
	}
	_, ok = CompoundBase("%=")
	assert.False(t, ok)
}

func TestToYAML(t *testing.T) {
	tree := NewOp(ASSIGNMENT, ASSIGN, token.Position{Line: 2}, ident("x"), number("1"))

	out, err := ToYAML(tree)
	require.NoError(t, err)
	assert.Contains(t, out, "tag: Assignment(=)")

	var decoded struct {
		Tag      string `yaml:"tag"`
		Line     int    `yaml:"line"`
		Children []struct {
			Tag string `yaml:"tag"`
		} `yaml:"children"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Assignment(=)", decoded.Tag)
	assert.Equal(t, 2, decoded.Line)
	require.Len(t, decoded.Children, 2)
	assert.Equal(t, "Identifier(x)", decoded.Children[0].Tag)
	assert.Equal(t, "Number(1)", decoded.Children[1].Tag)
}
