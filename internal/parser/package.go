package parser

import (
	"fmt"
	"os"

	"tinyscript/internal/ast"
	"tinyscript/token"
)

// Tokenize scans source with a fresh Scanner.
func Tokenize(source string) ([]token.Token, error) {
	return NewScanner(source).ScanTokens()
}

// ParseSource lexes and parses a whole program.
func ParseSource(source string) (*ast.Node, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// ParseStatementSource lexes and parses a single statement.
func ParseStatementSource(source string) (*ast.Node, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseStatement()
}

func ParseFile(path string) (*ast.Node, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(string(source))
}
