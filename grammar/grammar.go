package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type Program struct {
	Pos        lexer.Position
	Statements []*Statement `"begin" "{" @@* "}" "end"`
}

type Statement struct {
	Pos         lexer.Position
	Declaration *Declaration `  @@`
	Conditional *Conditional `| @@`
	While       *While       `| @@`
	For         *For         `| @@`
	Print       *Print       `| @@`
	Pass        string       `| @( "pass" | "noop" ) ";"`
	Return      *Return      `| @@`
	Break       bool         `| @"break" ";"`
	Continue    bool         `| @"continue" ";"`
	Assignment  *Assignment  `| @@`
}

type Declaration struct {
	Pos   lexer.Position
	Type  string      `@( "int" | "float" | "string" | "char" )`
	Name  string      `@Ident`
	Value *Expression `( "=" @@ )? ";"`
}

type Assignment struct {
	Pos   lexer.Position
	Name  string      `@Ident`
	Op    string      `@( "=" | "+=" | "-=" | "*=" | "/=" )`
	Value *Expression `@@ ";"`
}

type Conditional struct {
	Pos       lexer.Position
	Condition *BoolExpr     `"if" "(" @@ ")"`
	Then      *Block        `@@`
	Elifs     []*ElifBranch `@@*`
	Else      *Block        `( "else" @@ )?`
}

type ElifBranch struct {
	Pos       lexer.Position
	Condition *BoolExpr `"elif" "(" @@ ")"`
	Body      *Block    `@@`
}

type While struct {
	Pos       lexer.Position
	Condition *BoolExpr `"while" "(" @@ ")"`
	Body      *Block    `@@`
}

type For struct {
	Pos      lexer.Position
	Iterator string      `"for" @Ident "in"`
	Iterable *Expression `@@`
	Body     *Block      `@@`
}

type Print struct {
	Pos   lexer.Position
	Ident *string `"print" "(" ( @Ident`
	Str   *string `| @String ) ")" ";"`
}

type Return struct {
	Pos     lexer.Position
	Keyword string      `@"return"`
	Value   *Expression `@@? ";"`
}

type Block struct {
	Pos        lexer.Position
	Open       string       `@"{"`
	Statements []*Statement `@@* "}"`
}

// BoolExpr recurses on its right operand, so connectives group to the right.
type BoolExpr struct {
	Pos   lexer.Position
	Left  *Expression `@@`
	Op    string      `( @( "and" | "or" )`
	Right *BoolExpr   `@@ )?`
}

type Expression struct {
	Pos  lexer.Position
	Left *Term    `@@`
	Ops  []*BinOp `@@*`
}

type BinOp struct {
	Operator string `@( "+" | "-" | "*" | "/" | "==" | "!=" | "<=" | ">=" | "<" | ">" )`
	Right    *Term  `@@`
}

type Term struct {
	Pos    lexer.Position
	Ident  *string     `  @Ident`
	Number *string     `| @Number`
	Float  *string     `| @Float`
	Str    *string     `| @String`
	Char   *string     `| @Char`
	Bool   *string     `| @( "True" | "False" )`
	Range  *Expression `| "range" "(" @@ ")"`
	List   *List       `| @@`
	Paren  *Expression `| "(" @@ ")"`
}

type List struct {
	Pos      lexer.Position
	Open     string        `@"["`
	Elements []*Expression `( @@ ( "," @@ )* )? "]"`
}
