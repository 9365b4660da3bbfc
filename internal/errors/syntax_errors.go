package errors

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tinyscript/internal/parser"
	"tinyscript/token"
)

// FromLexError converts a scanner failure into a diagnostic.
func FromLexError(e *parser.LexError) CompilerError {
	err := CompilerError{
		Level:    Error,
		Code:     ErrorUnexpectedCharacter,
		Message:  fmt.Sprintf("unexpected character %q", e.Char),
		Position: e.Pos,
		Length:   1,
	}
	switch e.Char {
	case '_':
		err.Notes = append(err.Notes, "identifiers may only contain letters and digits")
	case '!':
		err.Suggestions = append(err.Suggestions,
			Suggestion{Message: "use '!=' to compare, or 'not' to negate a condition"})
	case '.':
		err.Notes = append(err.Notes, "a float needs at least one digit next to the point")
	}
	return err
}

// FromSyntaxError converts a parser failure into a diagnostic. pos and
// length locate the span to underline, which the caller knows even when the
// parser ran out of tokens.
func FromSyntaxError(e *parser.SyntaxError, pos token.Position, length int) CompilerError {
	err := CompilerError{
		Level:    Error,
		Code:     ErrorUnexpectedToken,
		Position: pos,
		Length:   length,
	}

	switch {
	case e.AtEnd():
		err.Code = ErrorUnexpectedEOF
		err.Message = fmt.Sprintf("expected %s, found end of input", expectation(e))
		if e.Want == "end" || e.Expected == token.CURLY_BRACKET.String() {
			err.Suggestions = append(err.Suggestions, Suggestion{Message: "check that every '{' has a matching '}' and the program ends with 'end'"})
		}
	case e.Expected == "end of stream":
		err.Code = ErrorTrailingInput
		err.Message = fmt.Sprintf("unexpected %s after the end of the program", e.Found)
		err.Notes = append(err.Notes, "nothing may follow the closing 'end'")
	default:
		err.Message = fmt.Sprintf("expected %s, found %s", expectation(e), e.Found)
		if e.Found.Kind == token.IDENTIFIER && (e.Expected == "statement" || e.Expected == token.KEYWORD.String()) {
			err.Suggestions = append(err.Suggestions, keywordSuggestions(e.Found.Lexeme)...)
		}
		if e.Found.Kind == token.KEYWORD && e.Found.Keyword == token.End && e.Expected == token.CURLY_BRACKET.String() {
			err.Notes = append(err.Notes, "'end' closes the program, not a block; close the block with '}' first")
		}
	}
	return err
}

// FromParseResult returns the diagnostics for a parse, empty on success.
func FromParseResult(pr *parser.ParseResult) []CompilerError {
	if lexErr := pr.LexError(); lexErr != nil {
		return []CompilerError{FromLexError(lexErr)}
	}
	if synErr := pr.SyntaxError(); synErr != nil {
		pos, length := pr.ErrorPosition()
		if synErr.Found != nil {
			length = firstLineLength(synErr.Found.Lexeme)
		}
		err := FromSyntaxError(synErr, pos, length)
		if n := len(pr.Tokens); n > 0 && unclosedLiteral(pr.Tokens[n-1]) && (synErr.AtEnd() || synErr.Index == n-1) {
			last := pr.Tokens[n-1]
			err.Notes = append(err.Notes, fmt.Sprintf(
				"the literal at %d:%d has no closing quote and runs to the end of the input; either quote character ends a literal",
				last.Pos.Line, last.Pos.Column))
		}
		// A misspelled statement keyword scans as an identifier and is
		// taken for the start of an assignment.
		if synErr.Expected == "assignment operator" && synErr.Index > 0 {
			if prev := pr.Tokens[synErr.Index-1]; prev.Kind == token.IDENTIFIER {
				err.Suggestions = append(err.Suggestions, keywordSuggestions(prev.Lexeme)...)
			}
		}
		return []CompilerError{err}
	}
	return nil
}

// unclosedLiteral reports whether a quoted literal ran off the end of the
// input instead of stopping at a quote.
func unclosedLiteral(tok token.Token) bool {
	if tok.Kind != token.STRING && tok.Kind != token.CHAR {
		return false
	}
	n := len(tok.Lexeme)
	return n < 2 || (tok.Lexeme[n-1] != '"' && tok.Lexeme[n-1] != '\'')
}

// firstLineLength counts the runes of s up to its first newline, so a
// literal spanning lines is underlined on its first line only.
func firstLineLength(s string) int {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return max(utf8.RuneCountInString(s), 1)
}

func keywordSuggestions(word string) []Suggestion {
	var suggestions []Suggestion
	for _, kw := range findSimilarNames(word, token.Keywords()) {
		suggestions = append(suggestions, Suggestion{
			Message:     fmt.Sprintf("did you mean '%s'?", kw),
			Replacement: kw,
		})
	}
	return suggestions
}

func expectation(e *parser.SyntaxError) string {
	if e.Want != "" {
		return fmt.Sprintf("%s '%s'", e.Expected, e.Want)
	}
	return e.Expected
}

// findSimilarNames returns candidates within edit distance 2 of target.
func findSimilarNames(target string, candidates []string) []string {
	var similar []string
	for _, candidate := range candidates {
		if candidate != target && len(candidate) > 2 && levenshteinDistance(target, candidate) <= 2 {
			similar = append(similar, candidate)
		}
	}
	return similar
}

func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
