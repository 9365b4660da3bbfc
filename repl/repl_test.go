package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyscript/internal/config"
)

func newREPL() *REPL {
	return New(config.REPL{}, &bytes.Buffer{})
}

func TestDefaultPrompt(t *testing.T) {
	r := newREPL()
	assert.Equal(t, "tiny> ", r.cfg.Prompt)

	r = New(config.REPL{Prompt: ">> "}, &bytes.Buffer{})
	assert.Equal(t, ">> ", r.cfg.Prompt)
}

func TestEvalStatement(t *testing.T) {
	out, result := newREPL().Eval("x += 1;")
	require.NotNil(t, result)
	require.False(t, result.Failed())

	expected := "└── Assignment(=)\n" +
		"    ├── Identifier(x)\n" +
		"    └── BinaryOp(+)\n" +
		"        ├── Identifier(x)\n" +
		"        └── Number(1)\n"
	assert.Equal(t, expected, out)
}

func TestEvalProgram(t *testing.T) {
	out, result := newREPL().Eval("  begin { pass; } end  ")
	require.False(t, result.Failed())
	assert.Equal(t, "└── Program\n    └── Pass\n", out)
}

func TestEvalErrors(t *testing.T) {
	r := newREPL()

	out, result := r.Eval("x = ;")
	assert.Empty(t, out)
	require.NotNil(t, result.SyntaxError())
	assert.Equal(t, "expression", result.SyntaxError().Expected)

	_, result = r.Eval("x = 1 $")
	require.NotNil(t, result.LexError())
	assert.Equal(t, '$', result.LexError().Char)

	// A statement is not a program.
	_, result = r.Eval("pass; pass;")
	require.NotNil(t, result.SyntaxError())
	assert.Equal(t, "end of stream", result.SyntaxError().Expected)
}

func TestEvalBlank(t *testing.T) {
	out, result := newREPL().Eval("   ")
	assert.Empty(t, out)
	assert.Nil(t, result)
}

func TestEvalTokens(t *testing.T) {
	out, result := newREPL().Eval(":tokens x<=1")
	require.False(t, result.Failed())
	assert.Equal(t, "1:2 IDENTIFIER(x)\n1:3 COMPARISON_OPERATOR(<=)\n1:5 NUMBER(1)\n", out)
}

func TestEvalTokensNeedsWholeCommand(t *testing.T) {
	out, result := newREPL().Eval(":tokens")
	require.False(t, result.Failed())
	assert.Empty(t, out)

	out, result = newREPL().Eval(":tokens\tx")
	require.False(t, result.Failed())
	assert.Equal(t, "1:2 IDENTIFIER(x)\n", out)

	// Not the tokens command, so it is parsed as a statement and rejected.
	out, result = newREPL().Eval(":tokensfoo")
	assert.Empty(t, out)
	require.NotNil(t, result)
	assert.NotNil(t, result.SyntaxError())
}

func TestIsProgram(t *testing.T) {
	assert.True(t, isProgram("begin { } end"))
	assert.True(t, isProgram("begin{"))
	assert.True(t, isProgram("begin\n{"))
	assert.True(t, isProgram("begin"))
	assert.False(t, isProgram("beginning = 1;"))
	assert.False(t, isProgram("x = 1;"))
}

func TestIncompleteProgram(t *testing.T) {
	r := newREPL()

	input := "begin {\n  int x = 1;"
	_, result := r.Eval(input)
	assert.True(t, incomplete(input, result))

	input += "\n} end"
	_, result = r.Eval(input)
	assert.False(t, result.Failed())
	assert.False(t, incomplete(input, result))

	// Statements never wait for more input.
	_, result = r.Eval("x =")
	assert.False(t, incomplete("x =", result))

	// Neither does a program with a real error.
	_, result = r.Eval("begin { x = = }")
	assert.False(t, incomplete("begin { x = = }", result))
}

func TestComplete(t *testing.T) {
	assert.Equal(t, []string{"while"}, complete("whi"))
	assert.Equal(t, []string{"begin { pass", "begin { print"}, complete("begin { p"))
	assert.ElementsMatch(t, []string{"if (x) { elif", "if (x) { else", "if (x) { end"}, complete("if (x) { e"))
	assert.Nil(t, complete("x = "))
}
