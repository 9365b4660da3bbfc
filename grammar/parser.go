package grammar

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("tiny.grammar")

var tinyParser = participle.MustBuild[Program](
	participle.Lexer(TinyLexer),
	participle.Map(classifyKeywords, "Ident"),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// Parse parses source with the reference grammar. filename only labels
// positions in errors.
func Parse(filename, source string) (*Program, error) {
	program, err := tinyParser.ParseString(filename, source)
	if err != nil {
		log.Debugf("reference grammar rejected %s: %s", filename, err)
		return nil, err
	}
	return program, nil
}

func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(path, string(source))
}

// Check reports whether the reference grammar accepts source.
func Check(source string) error {
	_, err := Parse("", source)
	return err
}

// EBNF renders the grammar in the notation participle derives from the
// struct tags.
func EBNF() string {
	return tinyParser.String()
}

// ReportParseError writes a caret-style rendering of err to w.
func ReportParseError(w io.Writer, src string, err error) {
	red := color.New(color.FgRed)
	pe, ok := err.(participle.Error)
	if !ok {
		red.Fprintf(w, "Unexpected error: %s\n", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		red.Fprintf(w, "Syntax error at unknown location: %s\n", err)
		return
	}

	caret := strings.Repeat(" ", max(0, pos.Column-1)) + "^"
	where := pos.Filename
	if where == "" {
		where = "input"
	}

	red.Fprintf(w, "Syntax error in %s at line %d, column %d:\n", where, pos.Line, pos.Column)
	fmt.Fprintln(w, lines[pos.Line-1])
	color.New(color.FgHiRed).Fprintln(w, caret)
	fmt.Fprintf(w, "→ %s\n", pe.Message())
}
