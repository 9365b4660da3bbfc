package parser

import (
	"errors"
	"strings"
	"unicode/utf8"

	"tinyscript/internal/ast"
	"tinyscript/token"
)

// ParseResult keeps the token stream next to the tree so tooling can use
// both. Tokens is empty when lexing failed; Program is nil when either
// stage failed.
type ParseResult struct {
	Tokens  []token.Token
	Program *ast.Node
	Err     error
}

// ParseSourceWithTokens lexes and parses source, keeping every stage's
// output.
func ParseSourceWithTokens(source string) *ParseResult {
	tokens, err := Tokenize(source)
	if err != nil {
		return &ParseResult{Err: err}
	}
	program, err := NewParser(tokens).Parse()
	return &ParseResult{Tokens: tokens, Program: program, Err: err}
}

func (pr *ParseResult) Failed() bool {
	return pr.Err != nil
}

// LexError returns the scanning failure, if that is what stopped the parse.
func (pr *ParseResult) LexError() *LexError {
	var lexErr *LexError
	if errors.As(pr.Err, &lexErr) {
		return lexErr
	}
	return nil
}

// SyntaxError returns the parsing failure, if that is what stopped the parse.
func (pr *ParseResult) SyntaxError() *SyntaxError {
	var synErr *SyntaxError
	if errors.As(pr.Err, &synErr) {
		return synErr
	}
	return nil
}

// ErrorPosition locates the failure in the source. At end of stream it
// points just past the last token.
func (pr *ParseResult) ErrorPosition() (token.Position, int) {
	if lexErr := pr.LexError(); lexErr != nil {
		return lexErr.Pos, 1
	}
	synErr := pr.SyntaxError()
	if synErr == nil {
		return token.Position{}, 0
	}
	if synErr.Found != nil {
		return synErr.Found.Pos, len(synErr.Found.Lexeme)
	}
	if len(pr.Tokens) == 0 {
		return token.Position{Line: 1, Column: 1}, 1
	}
	return endOf(pr.Tokens[len(pr.Tokens)-1]), 1
}

// endOf is the position just past tok. Columns count runes, and a literal
// spanning lines ends on its last line.
func endOf(tok token.Token) token.Position {
	end := token.Position{
		Line:   tok.Pos.Line,
		Column: tok.Pos.Column + utf8.RuneCountInString(tok.Lexeme),
		Offset: tok.Pos.Offset + len(tok.Lexeme),
	}
	if i := strings.LastIndexByte(tok.Lexeme, '\n'); i >= 0 {
		end.Line += strings.Count(tok.Lexeme, "\n")
		end.Column = 1 + utf8.RuneCountInString(tok.Lexeme[i+1:])
	}
	return end
}
