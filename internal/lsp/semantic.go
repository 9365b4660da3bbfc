package lsp

import (
	"strings"

	"tinyscript/internal/ast"
	"tinyscript/internal/parser"
	"tinyscript/token"
)

// SemanticToken is one entry before delta encoding. Line and StartChar are
// 0-based, StartChar and Length in UTF-16 code units.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask over SemanticTokenModifiers
}

// collectSemanticTokens classifies the token stream. Names introduced by a
// declaration or a for loop carry the declaration modifier when the parse
// succeeded. Brackets and punctuation are left to the editor.
func collectSemanticTokens(source string, result *parser.ParseResult) []SemanticToken {
	if result == nil {
		return nil
	}

	declared := declarationOffsets(result.Program)
	starts := lineStarts(source)

	var tokens []SemanticToken
	for _, tok := range result.Tokens {
		typ, ok := semanticType(tok)
		if !ok {
			continue
		}
		modifiers := 0
		if tok.Kind == token.IDENTIFIER && declared[tok.Pos.Offset] {
			modifiers = 1 << indexOf("declaration", SemanticTokenModifiers)
		}

		// Editors expect single-line entries, so a literal spanning lines
		// is split at each newline.
		line, offset := tok.Pos.Line, tok.Pos.Offset
		for i, segment := range strings.Split(tok.Lexeme, "\n") {
			if i > 0 {
				line++
			}
			if text := strings.TrimSuffix(segment, "\r"); text != "" {
				pos := lspPosition(source, starts, line, offset)
				tokens = append(tokens, SemanticToken{
					Line:           pos.Line,
					StartChar:      pos.Character,
					Length:         utf16Len(text),
					TokenType:      indexOf(typ, SemanticTokenTypes),
					TokenModifiers: modifiers,
				})
			}
			offset += len(segment) + 1
		}
	}
	return tokens
}

func semanticType(tok token.Token) (string, bool) {
	switch tok.Kind {
	case token.KEYWORD:
		if tok.Keyword.IsType() {
			return "type", true
		}
		return "keyword", true
	case token.IDENTIFIER:
		return "variable", true
	case token.NUMBER, token.FLOAT:
		return "number", true
	case token.STRING, token.CHAR:
		return "string", true
	case token.OPERATOR, token.COMPOUND_OPERATOR, token.COMPARISON_OPERATOR:
		return "operator", true
	}
	return "", false
}

// declarationOffsets finds the byte offsets of identifiers that introduce
// a name.
func declarationOffsets(program *ast.Node) map[int]bool {
	declared := make(map[int]bool)
	ast.Walk(program, func(n *ast.Node, _ int) bool {
		switch n.Kind {
		case ast.DECLARATION, ast.FOR:
			if name := n.Child(0); name != nil && name.Kind == ast.IDENTIFIER {
				declared[name.Pos.Offset] = true
			}
		}
		return true
	})
	return declared
}

// indexOf returns the index of target in list, or 0 if absent.
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
