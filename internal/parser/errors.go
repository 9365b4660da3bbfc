package parser

import (
	"fmt"

	"tinyscript/token"
)

// LexError reports a character no scanning rule accepts.
type LexError struct {
	Char   rune
	Offset int // byte offset of Char
	Pos    token.Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at offset %d", e.Char, e.Offset)
}

// SyntaxError reports the token the grammar required and the one it got.
type SyntaxError struct {
	// Expected is a token kind name, or a description of the acceptable set
	// such as "statement" or "expression".
	Expected string
	// Want is the exact lexeme required, if any.
	Want string
	// Found is nil at end of stream.
	Found *token.Token
	// Index is the cursor position in the token stream.
	Index int
}

func (e *SyntaxError) Error() string {
	expected := e.Expected
	if e.Want != "" {
		expected = fmt.Sprintf("%s %q", e.Expected, e.Want)
	}
	return fmt.Sprintf("expected %s, found %s at token %d", expected, e.found(), e.Index)
}

func (e *SyntaxError) found() string {
	if e.Found == nil {
		return "end of stream"
	}
	return e.Found.String()
}

// AtEnd reports whether the parser ran out of tokens.
func (e *SyntaxError) AtEnd() bool {
	return e.Found == nil
}
