package parser

import (
	"tinyscript/internal/ast"
	"tinyscript/token"
)

// parseBoolExpr parses Expression (('and' | 'or') BoolExpr)*. The right
// operand is itself a BoolExpr, so connectives group to the right.
func (p *Parser) parseBoolExpr() (*ast.Node, error) {
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	for p.checkKeyword(token.And) || p.checkKeyword(token.Or) {
		opTok := p.advance()
		right, err := p.parseBoolExpr()
		if err != nil {
			return nil, err
		}
		op := ast.AND
		if opTok.Keyword == token.Or {
			op = ast.OR
		}
		left = ast.NewOp(ast.LOGICAL, op, left.Pos, left, right)
	}
	return left, nil
}

// parseExpression folds arithmetic and comparison operators into a single
// left-associative level: a + b * c < d is ((a + b) * c) < d.
func (p *Parser) parseExpression() (*ast.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.binaryOperator()
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.NewOp(ast.BINARY_OP, op, left.Pos, left, right)
	}
}

// binaryOperator reports the operator under the cursor. '=' only ever
// appears in assignments and declarations, so it ends an expression.
func (p *Parser) binaryOperator() (ast.Operator, bool) {
	tok := p.peek()
	if tok == nil {
		return ast.NoOp, false
	}
	switch {
	case tok.Kind == token.COMPARISON_OPERATOR,
		tok.Kind == token.OPERATOR && tok.Lexeme != "=":
		return ast.BinaryOperator(tok.Lexeme)
	}
	return ast.NoOp, false
}

func (p *Parser) parseTerm() (*ast.Node, error) {
	tok := p.peek()
	if tok == nil {
		return nil, p.errorAtCurrent("expression", "")
	}

	switch tok.Kind {
	case token.IDENTIFIER:
		return ast.NewLeaf(ast.IDENTIFIER, p.advance()), nil
	case token.NUMBER:
		return ast.NewLeaf(ast.NUMBER, p.advance()), nil
	case token.FLOAT:
		return ast.NewLeaf(ast.FLOAT, p.advance()), nil
	case token.STRING:
		return ast.NewLeaf(ast.STRING, p.advance()), nil
	case token.CHAR:
		return ast.NewLeaf(ast.CHAR, p.advance()), nil
	case token.KEYWORD:
		switch tok.Keyword {
		case token.True, token.False:
			return ast.NewLeaf(ast.BOOL, p.advance()), nil
		case token.Range:
			return p.parseRange()
		}
	case token.PAREN:
		if tok.Lexeme == "(" {
			return p.parseParenExpr()
		}
	case token.SQUARE_BRACKET:
		if tok.Lexeme == "[" {
			return p.parseList()
		}
	}
	return nil, p.errorAtCurrent("expression", "")
}

// parseParenExpr parses '(' Expression ')'. Grouping leaves no node of its
// own; the tree shape already records it.
func (p *Parser) parseParenExpr() (*ast.Node, error) {
	p.advance()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.matchLexeme(token.PAREN, ")"); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseRange parses 'range' '(' Expression ')'.
func (p *Parser) parseRange() (*ast.Node, error) {
	rangeTok := p.advance()
	if _, err := p.matchLexeme(token.PAREN, "("); err != nil {
		return nil, err
	}
	bound, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.matchLexeme(token.PAREN, ")"); err != nil {
		return nil, err
	}
	return ast.New(ast.RANGE, rangeTok.Pos, bound), nil
}

// parseList parses '[' (Expression (',' Expression)*)? ']'.
func (p *Parser) parseList() (*ast.Node, error) {
	open := p.advance()
	list := ast.New(ast.LIST, open.Pos)

	if !p.checkLexeme(token.SQUARE_BRACKET, "]") {
		for {
			elem, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			list.Children = append(list.Children, elem)
			if !p.check(token.COMMA) {
				break
			}
			p.advance()
		}
	}

	if _, err := p.matchLexeme(token.SQUARE_BRACKET, "]"); err != nil {
		return nil, err
	}
	return list, nil
}
