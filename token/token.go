// SPDX-License-Identifier: Apache-2.0

// Package token defines the lexical contract shared by the scanner, the
// parser and the tooling built on top of them.
package token

import (
	"fmt"
	"sort"
)

type Kind int

const (
	KEYWORD Kind = iota
	IDENTIFIER
	NUMBER
	FLOAT
	STRING
	CHAR
	OPERATOR
	COMPARISON_OPERATOR
	COMPOUND_OPERATOR
	PAREN
	SQUARE_BRACKET
	CURLY_BRACKET
	COMMA
	SEMICOLON
	COLON
)

var kindNames = [...]string{
	KEYWORD:             "KEYWORD",
	IDENTIFIER:          "IDENTIFIER",
	NUMBER:              "NUMBER",
	FLOAT:               "FLOAT",
	STRING:              "STRING",
	CHAR:                "CHAR",
	OPERATOR:            "OPERATOR",
	COMPARISON_OPERATOR: "COMPARISON_OPERATOR",
	COMPOUND_OPERATOR:   "COMPOUND_OPERATOR",
	PAREN:               "PAREN",
	SQUARE_BRACKET:      "SQUARE_BRACKET",
	CURLY_BRACKET:       "CURLY_BRACKET",
	COMMA:               "COMMA",
	SEMICOLON:           "SEMICOLON",
	COLON:               "COLON",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keyword is the decoded form of a KEYWORD lexeme.
type Keyword int

const (
	NotKeyword Keyword = iota

	// Program delimiters
	Begin
	End

	// Statements
	If
	Elif
	Else
	While
	For
	In
	Range
	Print
	Pass
	Noop
	Return
	Break
	Continue

	// Type names
	Int
	Float
	String
	Char

	// Literals and connectives
	True
	False
	And
	Or
	Not
)

var keywords = map[string]Keyword{
	"begin":    Begin,
	"end":      End,
	"if":       If,
	"elif":     Elif,
	"else":     Else,
	"while":    While,
	"for":      For,
	"in":       In,
	"range":    Range,
	"print":    Print,
	"pass":     Pass,
	"noop":     Noop,
	"return":   Return,
	"break":    Break,
	"continue": Continue,
	"int":      Int,
	"float":    Float,
	"string":   String,
	"char":     Char,
	"True":     True,
	"False":    False,
	"and":      And,
	"or":       Or,
	"not":      Not,
}

// LookupKeyword reports the keyword spelled by ident, or NotKeyword.
func LookupKeyword(ident string) Keyword {
	if kw, ok := keywords[ident]; ok {
		return kw
	}
	return NotKeyword
}

// Keywords returns every reserved word in sorted order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

func (k Keyword) String() string {
	for w, kw := range keywords {
		if kw == k {
			return w
		}
	}
	return "<not a keyword>"
}

// IsType reports whether the keyword names a declarable type.
func (k Keyword) IsType() bool {
	switch k {
	case Int, Float, String, Char:
		return true
	}
	return false
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset in input
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Kind    Kind
	Lexeme  string
	Keyword Keyword
	Pos     Position
}

// Is reports whether the token has the given kind and lexeme.
func (t Token) Is(kind Kind, lexeme string) bool {
	return t.Kind == kind && t.Lexeme == lexeme
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Lexeme)
}
