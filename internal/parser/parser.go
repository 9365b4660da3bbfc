package parser

import (
	"github.com/tliron/commonlog"
	"tinyscript/internal/ast"
	"tinyscript/token"
)

var parseLog = commonlog.GetLogger("tiny.parser")

// Parser is a predictive recursive-descent parser with one token of
// lookahead. It owns its cursor and is meant for a single top-level parse.
type Parser struct {
	tokens  []token.Token
	current int
}

func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a whole program:
//
//	Program := 'begin' '{' StatementList '}' 'end'
//
// Any token left after 'end' is an error.
func (p *Parser) Parse() (*ast.Node, error) {
	program, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		return nil, p.errorAtCurrent("end of stream", "")
	}
	return program, nil
}

// ParseStatement parses exactly one statement and requires the stream to
// end right after it.
func (p *Parser) ParseStatement() (*ast.Node, error) {
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		return nil, p.errorAtCurrent("end of stream", "")
	}
	return stmt, nil
}

func (p *Parser) parseProgram() (*ast.Node, error) {
	begin, err := p.matchKeyword(token.Begin)
	if err != nil {
		return nil, err
	}
	if _, err := p.matchLexeme(token.CURLY_BRACKET, "{"); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	if _, err := p.matchLexeme(token.CURLY_BRACKET, "}"); err != nil {
		return nil, err
	}
	if _, err := p.matchKeyword(token.End); err != nil {
		return nil, err
	}

	parseLog.Debugf("parsed program with %d statements", len(stmts))
	return ast.New(ast.PROGRAM, begin.Pos, stmts...), nil
}

// parseStatementList parses statements for as long as the lookahead can
// start one. The caller matches whatever closes the list.
func (p *Parser) parseStatementList() ([]*ast.Node, error) {
	var stmts []*ast.Node
	for p.startsStatement() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) startsStatement() bool {
	tok := p.peek()
	if tok == nil {
		return false
	}
	switch tok.Kind {
	case token.IDENTIFIER:
		return true
	case token.KEYWORD:
		return statementKeyword(tok.Keyword)
	}
	return false
}

func statementKeyword(kw token.Keyword) bool {
	switch kw {
	case token.Int, token.Float, token.String, token.Char,
		token.If, token.Print, token.Pass, token.Noop, token.Return,
		token.Break, token.Continue, token.While, token.For:
		return true
	case token.NotKeyword, token.Begin, token.End, token.Elif, token.Else,
		token.In, token.Range, token.True, token.False,
		token.And, token.Or, token.Not:
		return false
	}
	return false
}

func (p *Parser) parseStatement() (*ast.Node, error) {
	tok := p.peek()
	if tok == nil {
		return nil, p.errorAtCurrent("statement", "")
	}
	parseLog.Debugf("statement at token %d: %s", p.current, tok)

	switch tok.Kind {
	case token.IDENTIFIER:
		return p.parseAssignment()
	case token.KEYWORD:
		switch tok.Keyword {
		case token.Int, token.Float, token.String, token.Char:
			return p.parseDeclaration()
		case token.If:
			return p.parseConditional()
		case token.Print:
			return p.parsePrint()
		case token.Pass, token.Noop:
			return p.parsePass()
		case token.Return:
			return p.parseReturn()
		case token.Break:
			return p.parseLoopControl(ast.BREAK)
		case token.Continue:
			return p.parseLoopControl(ast.CONTINUE)
		case token.While:
			return p.parseWhile()
		case token.For:
			return p.parseFor()
		case token.NotKeyword, token.Begin, token.End, token.Elif, token.Else,
			token.In, token.Range, token.True, token.False,
			token.And, token.Or, token.Not:
		}
	}
	return nil, p.errorAtCurrent("statement", "")
}
