package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"tinyscript/token"
)

var scanLog = commonlog.GetLogger("tiny.scanner")

// Scanner turns source text into tokens in a single left-to-right pass.
// A Scanner is good for one call to ScanTokens.
type Scanner struct {
	source      string
	tokens      []token.Token
	start       int
	current     int
	line        int
	column      int
	startLine   int
	startColumn int
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// ScanTokens scans the whole source. On failure it returns a *LexError and
// no tokens.
func (s *Scanner) ScanTokens() ([]token.Token, error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column
		if err := s.scanToken(); err != nil {
			scanLog.Debugf("scan aborted: %s", err)
			return nil, err
		}
	}
	scanLog.Debugf("scanned %d tokens", len(s.tokens))
	return s.tokens, nil
}

func (s *Scanner) scanToken() error {
	c := s.peek()

	switch {
	case isWhitespace(c):
		s.advance()
		return nil
	case isDigit(c), c == '.' && isDigit(s.peekNext()):
		s.scanNumber()
		return nil
	}

	switch c {
	case '[', ']':
		s.advance()
		s.addToken(token.SQUARE_BRACKET)
		return nil
	case '{', '}':
		s.advance()
		s.addToken(token.CURLY_BRACKET)
		return nil
	case '(', ')':
		s.advance()
		s.addToken(token.PAREN)
		return nil
	}

	if s.scanComparison() || s.scanArithmetic() {
		return nil
	}

	switch c {
	case ',':
		s.advance()
		s.addToken(token.COMMA)
		return nil
	case ';':
		s.advance()
		s.addToken(token.SEMICOLON)
		return nil
	case ':':
		s.advance()
		s.addToken(token.COLON)
		return nil
	case '"', '\'':
		s.scanQuoted()
		return nil
	case '#':
		s.scanComment()
		return nil
	}

	r, _ := utf8.DecodeRuneInString(s.source[s.current:])
	if unicode.IsLetter(r) {
		s.scanIdentifier()
		return nil
	}

	return &LexError{
		Char:   r,
		Offset: s.current,
		Pos:    s.startPos(),
	}
}

// scanComparison matches ==, !=, <= and >= before falling back to < and >.
func (s *Scanner) scanComparison() bool {
	c, next := s.peek(), s.peekNext()
	if next == '=' && (c == '=' || c == '!' || c == '<' || c == '>') {
		s.advance()
		s.advance()
		s.addToken(token.COMPARISON_OPERATOR)
		return true
	}
	if c == '<' || c == '>' {
		s.advance()
		s.addToken(token.COMPARISON_OPERATOR)
		return true
	}
	return false
}

// scanArithmetic matches +=, -=, *= and /= before falling back to the single
// character operators + - * / =.
func (s *Scanner) scanArithmetic() bool {
	c := s.peek()
	if !isOperator(c) {
		return false
	}
	s.advance()
	if c != '=' && s.peek() == '=' {
		s.advance()
		s.addToken(token.COMPOUND_OPERATOR)
		return true
	}
	s.addToken(token.OPERATOR)
	return true
}

func (s *Scanner) scanNumber() {
	seenPoint := false
	for !s.isAtEnd() {
		c := s.peek()
		if c == '.' && !seenPoint {
			seenPoint = true
		} else if !isDigit(c) {
			break
		}
		s.advance()
	}

	if seenPoint {
		s.addToken(token.FLOAT)
	} else {
		s.addToken(token.NUMBER)
	}
}

// scanQuoted reads up to the next quote character of either kind. The
// closing quote need not match the opening one, and the CHAR/STRING split is
// decided by the lexeme length alone. A literal with no closing quote runs to
// the end of the input and is classified the same way.
func (s *Scanner) scanQuoted() {
	s.advance()
	for !s.isAtEnd() && !isQuote(s.peek()) {
		s.advance()
	}
	if !s.isAtEnd() {
		s.advance()
	}

	if utf8.RuneCountInString(s.source[s.start:s.current]) == 3 {
		s.addToken(token.CHAR)
	} else {
		s.addToken(token.STRING)
	}
}

func (s *Scanner) scanIdentifier() {
	for !s.isAtEnd() {
		r, _ := utf8.DecodeRuneInString(s.source[s.current:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		s.advance()
	}

	text := s.source[s.start:s.current]
	if kw := token.LookupKeyword(text); kw != token.NotKeyword {
		s.tokens = append(s.tokens, token.Token{
			Kind:    token.KEYWORD,
			Lexeme:  text,
			Keyword: kw,
			Pos:     s.startPos(),
		})
		return
	}
	s.addToken(token.IDENTIFIER)
}

func (s *Scanner) scanComment() {
	for !s.isAtEnd() && s.peek() != '\n' {
		s.advance()
	}
}

// advance consumes one rune and keeps line and column in step.
func (s *Scanner) advance() {
	r, width := utf8.DecodeRuneInString(s.source[s.current:])
	s.current += width
	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) addToken(kind token.Kind) {
	tok := token.Token{
		Kind:   kind,
		Lexeme: s.source[s.start:s.current],
		Pos:    s.startPos(),
	}
	scanLog.Debugf("%s at %s", tok, tok.Pos)
	s.tokens = append(s.tokens, tok)
}

func (s *Scanner) startPos() token.Position {
	return token.Position{Line: s.startLine, Column: s.startColumn, Offset: s.start}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/' || c == '='
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}
