package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"

	"tinyscript/token"
)

var TinyLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	// Float before Number so the point is not left behind
	{Name: "Float", Pattern: `[0-9]+\.[0-9]*|\.[0-9]+`},
	{Name: "Number", Pattern: `[0-9]+`},

	// Either quote closes a literal; three runes make a Char. A literal with
	// no closing quote runs to the end of the input.
	{Name: "Char", Pattern: `["'][^"']["']|["'][^"']{2}$`},
	{Name: "String", Pattern: `["'][^"']*["']?`},

	{Name: "Ident", Pattern: `\p{L}[\p{L}\p{Nd}]*`},
	// Keyword is never produced by the lexer itself; reserved words are
	// re-typed from Ident by classifyKeywords.
	{Name: "Keyword", Pattern: `\p{L}[\p{L}\p{Nd}]*`},

	{Name: "Comparison", Pattern: `==|!=|<=|>=|<|>`},
	{Name: "Compound", Pattern: `\+=|-=|\*=|/=`},
	{Name: "Operator", Pattern: `[-+*/=]`},
	{Name: "Punct", Pattern: `[(){}\[\],;:]`},
})

var keywordType = TinyLexer.Symbols()["Keyword"]

// classifyKeywords keeps reserved words out of @Ident captures.
func classifyKeywords(t lexer.Token) (lexer.Token, error) {
	if token.LookupKeyword(t.Value) != token.NotKeyword {
		t.Type = keywordType
	}
	return t, nil
}
