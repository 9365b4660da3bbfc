package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinyscript/internal/ast"
	"tinyscript/token"
)

func mustParse(t *testing.T, source string) *ast.Node {
	t.Helper()
	program, err := ParseSource(source)
	require.NoError(t, err, "source:\n%s", source)
	require.NotNil(t, program)
	return program
}

func mustParseStatement(t *testing.T, source string) *ast.Node {
	t.Helper()
	stmt, err := ParseStatementSource(source)
	require.NoError(t, err, "source: %s", source)
	return stmt
}

func syntaxError(t *testing.T, err error) *SyntaxError {
	t.Helper()
	require.Error(t, err)
	var synErr *SyntaxError
	require.True(t, errors.As(err, &synErr), "expected *SyntaxError, got %T: %v", err, err)
	return synErr
}

func TestParseEmptyProgram(t *testing.T) {
	program := mustParse(t, "begin { } end")
	assert.Equal(t, ast.PROGRAM, program.Kind)
	assert.Equal(t, "Program", program.Tag())
	assert.Empty(t, program.Children)
}

func TestCompoundAssignmentDesugaring(t *testing.T) {
	cases := map[string]string{
		"x += 1;":       "x = x + 1;",
		"x -= y;":       "x = x - y;",
		"total *= 2.5;": "total = total * 2.5;",
		"x /= (a + b);": "x = x / (a + b);",
	}

	for compound, plain := range cases {
		got := mustParseStatement(t, compound)
		want := mustParseStatement(t, plain)
		assert.True(t, ast.Equal(want, got), "%s\nwant %s\ngot  %s", compound, want.Sexpr(), got.Sexpr())
		assert.Equal(t, want.Sexpr(), got.Sexpr())
	}

	stmt := mustParseStatement(t, "x += 1;")
	assert.Equal(t, "(Assignment(=) Identifier(x) (BinaryOp(+) Identifier(x) Number(1)))", stmt.Sexpr())
	assert.NotSame(t, stmt.Child(0), stmt.Child(1).Child(0), "the target must not be shared with the operand")
	for _, n := range ast.CollectAllNodes(stmt) {
		assert.Contains(t, []ast.Operator{ast.NoOp, ast.ASSIGN, ast.ADD}, n.Op)
	}
}

func TestMalformedBlock(t *testing.T) {
	_, err := ParseSource("begin { int x = 5; print(x); end }")
	synErr := syntaxError(t, err)

	assert.Equal(t, "CURLY_BRACKET", synErr.Expected)
	assert.Equal(t, "}", synErr.Want)
	require.NotNil(t, synErr.Found)
	assert.Equal(t, token.KEYWORD, synErr.Found.Kind)
	assert.Equal(t, "end", synErr.Found.Lexeme)
	assert.Equal(t, 12, synErr.Index)
	assert.Contains(t, synErr.Error(), "KEYWORD(end)")
}

func TestWellFormedConditional(t *testing.T) {
	program := mustParse(t, `begin { if (x == 1) { print("yes"); } else { print("no"); } } end`)
	require.Len(t, program.Children, 1)

	cond := program.Children[0]
	assert.Equal(t, ast.CONDITIONAL, cond.Kind)
	require.Len(t, cond.Children, 4)

	condition, ifBranch, elifs, elseBranch := cond.Children[0], cond.Children[1], cond.Children[2], cond.Children[3]
	assert.Equal(t, ast.CONDITION, condition.Kind)
	assert.Equal(t, "(Condition (BinaryOp(==) Identifier(x) Number(1)))", condition.Sexpr())

	assert.Equal(t, ast.IF_BRANCH, ifBranch.Kind)
	require.Len(t, ifBranch.Children, 1)
	assert.Equal(t, `(Print String("yes"))`, ifBranch.Children[0].Sexpr())

	assert.Equal(t, ast.ELIF_BRANCHES, elifs.Kind)
	assert.Empty(t, elifs.Children)

	assert.Equal(t, ast.ELSE_BRANCH, elseBranch.Kind)
	require.Len(t, elseBranch.Children, 1)
	assert.Equal(t, `(Print String("no"))`, elseBranch.Children[0].Sexpr())
}

func TestConditionalWithElif(t *testing.T) {
	stmt := mustParseStatement(t, `if (x < 0) { y = 1; } elif (x == 0) { y = 2; } elif (x > 100) { pass; }`)
	require.Len(t, stmt.Children, 4)

	elifs := stmt.Children[2]
	require.Len(t, elifs.Children, 2)
	assert.Equal(t, "(ElifBranch (Condition (BinaryOp(==) Identifier(x) Number(0))) (Body (Assignment(=) Identifier(y) Number(2))))",
		elifs.Children[0].Sexpr())
	assert.Equal(t, "(ElifBranch (Condition (BinaryOp(>) Identifier(x) Number(100))) (Body (Pass)))",
		elifs.Children[1].Sexpr())
	assert.Empty(t, stmt.Children[3].Children, "no else branch")
}

func TestParseDeclaration(t *testing.T) {
	stmt := mustParseStatement(t, "int x = 5;")
	assert.Equal(t, "Declaration(int)", stmt.Tag())
	assert.Equal(t, "(Declaration(int) Identifier(x) Number(5))", stmt.Sexpr())

	stmt = mustParseStatement(t, "float ratio;")
	assert.Equal(t, "(Declaration(float) Identifier(ratio))", stmt.Sexpr())

	stmt = mustParseStatement(t, `string s = "hi";`)
	assert.Equal(t, `(Declaration(string) Identifier(s) String("hi"))`, stmt.Sexpr())

	stmt = mustParseStatement(t, "char c = 'z';")
	assert.Equal(t, "(Declaration(char) Identifier(c) Char('z'))", stmt.Sexpr())
}

func TestExpressionIsLeftAssociativeSingleLevel(t *testing.T) {
	stmt := mustParseStatement(t, "x = a + b * c;")
	assert.Equal(t, "(Assignment(=) Identifier(x) (BinaryOp(*) (BinaryOp(+) Identifier(a) Identifier(b)) Identifier(c)))", stmt.Sexpr())

	stmt = mustParseStatement(t, "x = a + (b * c);")
	assert.Equal(t, "(Assignment(=) Identifier(x) (BinaryOp(+) Identifier(a) (BinaryOp(*) Identifier(b) Identifier(c))))", stmt.Sexpr())

	stmt = mustParseStatement(t, "x = a - 1 < b;")
	assert.Equal(t, "(Assignment(=) Identifier(x) (BinaryOp(<) (BinaryOp(-) Identifier(a) Number(1)) Identifier(b)))", stmt.Sexpr())
}

func TestBoolExpr(t *testing.T) {
	stmt := mustParseStatement(t, "while (x < 10 and y >= 2 or done) { x += 1; }")
	assert.Equal(t, ast.WHILE, stmt.Kind)
	require.Len(t, stmt.Children, 2)
	assert.Equal(t,
		"(Condition (Logical(and) (BinaryOp(<) Identifier(x) Number(10)) (Logical(or) (BinaryOp(>=) Identifier(y) Number(2)) Identifier(done))))",
		stmt.Children[0].Sexpr())
	assert.Equal(t, "(Body (Assignment(=) Identifier(x) (BinaryOp(+) Identifier(x) Number(1))))", stmt.Children[1].Sexpr())
}

func TestParseFor(t *testing.T) {
	stmt := mustParseStatement(t, "for i in range(5) { print(i); }")
	assert.Equal(t, "(For Identifier(i) (Range Number(5)) (Body (Print Identifier(i))))", stmt.Sexpr())

	stmt = mustParseStatement(t, `for v in [1, 2.5, "sx", True] { continue; }`)
	assert.Equal(t, `(For Identifier(v) (List Number(1) Float(2.5) String("sx") Bool(True)) (Body (Continue)))`, stmt.Sexpr())

	stmt = mustParseStatement(t, "for v in items { break; }")
	assert.Equal(t, "(For Identifier(v) Identifier(items) (Body (Break)))", stmt.Sexpr())
}

func TestParseSimpleStatements(t *testing.T) {
	cases := map[string]string{
		"pass;":         "(Pass)",
		"noop;":         "(Pass)",
		"break;":        "(Break)",
		"continue;":     "(Continue)",
		"return;":       "(Return)",
		"return x * 2;": "(Return (BinaryOp(*) Identifier(x) Number(2)))",
		"print(x);":     "(Print Identifier(x))",
		`print("hi");`:  `(Print String("hi"))`,
		"xs = [];":      "(Assignment(=) Identifier(xs) (List))",
		"b = False;":    "(Assignment(=) Identifier(b) Bool(False))",
	}

	for source, want := range cases {
		stmt := mustParseStatement(t, source)
		assert.Equal(t, want, stmt.Sexpr(), source)
	}

	assert.Equal(t, "noop", mustParseStatement(t, "noop;").Text)
}

func TestParseNestedProgram(t *testing.T) {
	source := `
# counts to ten
begin {
    int count = 0;
    float avg;
    while (count < 10) {
        if (count == 5) {
            continue;
        } elif (count > 8) {
            break;
        } else {
            count += 1;
        }
    }
    for i in [1, 2, 3] {
        print(i);
    }
    return count;
}
end`

	program := mustParse(t, source)
	require.Len(t, program.Children, 5)

	kinds := []ast.Kind{ast.DECLARATION, ast.DECLARATION, ast.WHILE, ast.FOR, ast.RETURN}
	for i, kind := range kinds {
		assert.Equal(t, kind, program.Children[i].Kind, "statement %d", i)
	}

	for _, n := range ast.CollectAllNodes(program) {
		assert.NotEmpty(t, n.Tag())
	}

	assert.Len(t, ast.CollectByKind(program, ast.CONDITIONAL), 1)
	assert.Equal(t, 3, program.Pos.Line, "Program starts at 'begin'")
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		name     string
		source   string
		expected string
		want     string
		found    string // "" means end of stream
	}{
		{"empty input", "", "KEYWORD", "begin", ""},
		{"missing begin", "{ } end", "KEYWORD", "begin", "CURLY_BRACKET({)"},
		{"missing end", "begin { }", "KEYWORD", "end", ""},
		{"trailing input", "begin { } end end", "end of stream", "", "KEYWORD(end)"},
		{"missing semicolon", "begin { x = 1 } end", "SEMICOLON", "", "CURLY_BRACKET(})"},
		{"bad print argument", "begin { print(5); } end", "IDENTIFIER or STRING", "", "NUMBER(5)"},
		{"missing expression", "begin { x = ; } end", "expression", "", "SEMICOLON(;)"},
		{"chained assignment", "begin { x = a = b; } end", "SEMICOLON", "", "OPERATOR(=)"},
		{"missing assignment operator", "begin { x 1; } end", "assignment operator", "", "NUMBER(1)"},
		{"unclosed list", "begin { x = [1, 2; } end", "SQUARE_BRACKET", "]", "SEMICOLON(;)"},
		{"if without parens", "begin { if x { pass; } } end", "PAREN", "(", "IDENTIFIER(x)"},
		{"for without in", "begin { for i range(3) { } } end", "KEYWORD", "in", "KEYWORD(range)"},
		{"declaration without name", "begin { int = 3; } end", "IDENTIFIER", "", "OPERATOR(=)"},
		{"unclosed program", "begin { pass;", "CURLY_BRACKET", "}", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSource(tc.source)
			synErr := syntaxError(t, err)
			assert.Equal(t, tc.expected, synErr.Expected)
			assert.Equal(t, tc.want, synErr.Want)
			if tc.found == "" {
				assert.True(t, synErr.AtEnd())
				assert.Contains(t, synErr.Error(), "end of stream")
			} else {
				require.NotNil(t, synErr.Found)
				assert.Equal(t, tc.found, synErr.Found.String())
			}
		})
	}
}

func TestStatementDispatchError(t *testing.T) {
	for _, source := range []string{"else;", "end;", "5;", "; ", "{ }"} {
		_, err := ParseStatementSource(source)
		synErr := syntaxError(t, err)
		assert.Equal(t, "statement", synErr.Expected, source)
		assert.Equal(t, 0, synErr.Index)
	}
}

func TestLexErrorPropagates(t *testing.T) {
	_, err := ParseSource("begin { x = 1 ? 2; } end")
	require.Error(t, err)

	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, '?', lexErr.Char)
	assert.Equal(t, 14, lexErr.Offset)
}

func TestParserIsSingleUse(t *testing.T) {
	tokens, err := Tokenize("begin { pass; } end")
	require.NoError(t, err)

	p := NewParser(tokens)
	program, err := p.Parse()
	require.NoError(t, err)
	assert.Len(t, program.Children, 1)

	// The cursor has reached the end; a second parse sees an empty stream.
	_, err = p.Parse()
	assert.True(t, syntaxError(t, err).AtEnd())
}

func TestParseSourceWithTokens(t *testing.T) {
	result := ParseSourceWithTokens("begin { x = 1; } end")
	assert.False(t, result.Failed())
	assert.Len(t, result.Tokens, 8)
	assert.NotNil(t, result.Program)
	assert.Nil(t, result.LexError())
	assert.Nil(t, result.SyntaxError())

	result = ParseSourceWithTokens("begin {\n  x = 1\n}")
	assert.True(t, result.Failed())
	require.NotNil(t, result.SyntaxError())
	pos, length := result.ErrorPosition()
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 1, pos.Column)
	assert.Equal(t, 1, length)

	result = ParseSourceWithTokens("begin { }")
	pos, _ = result.ErrorPosition()
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 10, pos.Column, "points just past the closing brace")

	// Columns count runes, offsets count bytes.
	result = ParseSourceWithTokens("begin { x = café")
	pos, _ = result.ErrorPosition()
	assert.Equal(t, token.Position{Line: 1, Column: 17, Offset: 17}, pos)

	// An unclosed literal spanning lines ends on its last line.
	result = ParseSourceWithTokens("begin { print(\"a\nbc")
	pos, _ = result.ErrorPosition()
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 19}, pos)

	result = ParseSourceWithTokens("begin { @ } end")
	require.NotNil(t, result.LexError())
	assert.Empty(t, result.Tokens)
	pos, _ = result.ErrorPosition()
	assert.Equal(t, 9, pos.Column)
}
