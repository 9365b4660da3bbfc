package parser

import (
	"tinyscript/internal/ast"
	"tinyscript/token"
)

// parseDeclaration parses TypeKeyword IDENTIFIER ('=' Expression)? ';'.
func (p *Parser) parseDeclaration() (*ast.Node, error) {
	typ := p.advance()
	name, err := p.match(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}

	children := []*ast.Node{ast.NewLeaf(ast.IDENTIFIER, name)}
	if p.checkLexeme(token.OPERATOR, "=") {
		p.advance()
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		children = append(children, init)
	}

	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.DECLARATION, Text: typ.Lexeme, Pos: typ.Pos, Children: children}, nil
}

// parseAssignment parses IDENTIFIER ('=' | CompoundOp) Expression ';'.
// A compound assignment x op= e comes out as x = x op e.
func (p *Parser) parseAssignment() (*ast.Node, error) {
	name, err := p.match(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	var value *ast.Node
	switch {
	case tok != nil && tok.Is(token.OPERATOR, "="):
		p.advance()
		if value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	case tok != nil && tok.Kind == token.COMPOUND_OPERATOR:
		op, ok := ast.CompoundBase(tok.Lexeme)
		if !ok {
			return nil, p.errorAtCurrent("assignment operator", "")
		}
		p.advance()
		rhs, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = ast.NewOp(ast.BINARY_OP, op, name.Pos, ast.NewLeaf(ast.IDENTIFIER, name), rhs)
	default:
		return nil, p.errorAtCurrent("assignment operator", "")
	}

	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return ast.NewOp(ast.ASSIGNMENT, ast.ASSIGN, name.Pos, ast.NewLeaf(ast.IDENTIFIER, name), value), nil
}

// parseConditional parses an if statement with its elif and else branches.
// The node always has four children: Condition, IfBranch, ElifBranches and
// ElseBranch, the last two possibly empty.
func (p *Parser) parseConditional() (*ast.Node, error) {
	ifTok := p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock(ast.IF_BRANCH)
	if err != nil {
		return nil, err
	}

	elifs := ast.New(ast.ELIF_BRANCHES, ifTok.Pos)
	for p.checkKeyword(token.Elif) {
		elifTok := p.advance()
		elifCond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock(ast.BODY)
		if err != nil {
			return nil, err
		}
		elifs.Children = append(elifs.Children, ast.New(ast.ELIF_BRANCH, elifTok.Pos, elifCond, body))
	}

	elseBranch := ast.New(ast.ELSE_BRANCH, ifTok.Pos)
	if p.checkKeyword(token.Else) {
		p.advance()
		if elseBranch, err = p.parseBlock(ast.ELSE_BRANCH); err != nil {
			return nil, err
		}
	}

	return ast.New(ast.CONDITIONAL, ifTok.Pos, cond, then, elifs, elseBranch), nil
}

func (p *Parser) parseWhile() (*ast.Node, error) {
	whileTok := p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(ast.BODY)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.WHILE, whileTok.Pos, cond, body), nil
}

// parseFor parses 'for' IDENTIFIER 'in' Expression Block.
func (p *Parser) parseFor() (*ast.Node, error) {
	forTok := p.advance()
	iterator, err := p.match(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.matchKeyword(token.In); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(ast.BODY)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.FOR, forTok.Pos, ast.NewLeaf(ast.IDENTIFIER, iterator), iterable, body), nil
}

// parsePrint parses 'print' '(' (IDENTIFIER | STRING) ')' ';'.
func (p *Parser) parsePrint() (*ast.Node, error) {
	printTok := p.advance()
	if _, err := p.matchLexeme(token.PAREN, "("); err != nil {
		return nil, err
	}

	var arg *ast.Node
	switch {
	case p.check(token.IDENTIFIER):
		arg = ast.NewLeaf(ast.IDENTIFIER, p.advance())
	case p.check(token.STRING):
		arg = ast.NewLeaf(ast.STRING, p.advance())
	default:
		return nil, p.errorAtCurrent("IDENTIFIER or STRING", "")
	}

	if _, err := p.matchLexeme(token.PAREN, ")"); err != nil {
		return nil, err
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return ast.New(ast.PRINT, printTok.Pos, arg), nil
}

func (p *Parser) parsePass() (*ast.Node, error) {
	tok := p.advance()
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.PASS, Text: tok.Lexeme, Pos: tok.Pos}, nil
}

// parseReturn parses 'return' Expression? ';'.
func (p *Parser) parseReturn() (*ast.Node, error) {
	retTok := p.advance()
	node := ast.New(ast.RETURN, retTok.Pos)
	if !p.check(token.SEMICOLON) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, value)
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseLoopControl(kind ast.Kind) (*ast.Node, error) {
	tok := p.advance()
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return ast.New(kind, tok.Pos), nil
}
