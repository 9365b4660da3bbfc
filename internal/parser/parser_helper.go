package parser

import (
	"tinyscript/internal/ast"
	"tinyscript/token"
)

// peek returns the token under the cursor, or nil past the last token.
func (p *Parser) peek() *token.Token {
	if p.isAtEnd() {
		return nil
	}
	return &p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.current]
	p.current++
	return tok
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens)
}

func (p *Parser) check(kind token.Kind) bool {
	tok := p.peek()
	return tok != nil && tok.Kind == kind
}

func (p *Parser) checkLexeme(kind token.Kind, lexeme string) bool {
	tok := p.peek()
	return tok != nil && tok.Is(kind, lexeme)
}

func (p *Parser) checkKeyword(kw token.Keyword) bool {
	tok := p.peek()
	return tok != nil && tok.Kind == token.KEYWORD && tok.Keyword == kw
}

// match consumes a token of the given kind or fails.
func (p *Parser) match(kind token.Kind) (token.Token, error) {
	if !p.check(kind) {
		return token.Token{}, p.errorAtCurrent(kind.String(), "")
	}
	return p.advance(), nil
}

// matchLexeme consumes a token of the given kind and spelling, such as the
// closing '}' of a block, or fails.
func (p *Parser) matchLexeme(kind token.Kind, lexeme string) (token.Token, error) {
	if !p.checkLexeme(kind, lexeme) {
		return token.Token{}, p.errorAtCurrent(kind.String(), lexeme)
	}
	return p.advance(), nil
}

func (p *Parser) matchKeyword(kw token.Keyword) (token.Token, error) {
	if !p.checkKeyword(kw) {
		return token.Token{}, p.errorAtCurrent(token.KEYWORD.String(), kw.String())
	}
	return p.advance(), nil
}

func (p *Parser) errorAtCurrent(expected, want string) error {
	err := &SyntaxError{
		Expected: expected,
		Want:     want,
		Found:    p.peek(),
		Index:    p.current,
	}
	parseLog.Debugf("syntax error: %s", err)
	return err
}

// parseBlock parses '{' StatementList '}' into a node of the given kind.
func (p *Parser) parseBlock(kind ast.Kind) (*ast.Node, error) {
	open, err := p.matchLexeme(token.CURLY_BRACKET, "{")
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	if _, err := p.matchLexeme(token.CURLY_BRACKET, "}"); err != nil {
		return nil, err
	}
	return ast.New(kind, open.Pos, stmts...), nil
}

// parseCondition parses '(' BoolExpr ')'.
func (p *Parser) parseCondition() (*ast.Node, error) {
	open, err := p.matchLexeme(token.PAREN, "(")
	if err != nil {
		return nil, err
	}
	expr, err := p.parseBoolExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.matchLexeme(token.PAREN, ")"); err != nil {
		return nil, err
	}
	return ast.New(ast.CONDITION, open.Pos, expr), nil
}

func (p *Parser) consumeSemicolon() error {
	_, err := p.match(token.SEMICOLON)
	return err
}
