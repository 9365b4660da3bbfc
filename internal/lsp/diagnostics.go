package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	tinyerrors "tinyscript/internal/errors"
	"tinyscript/internal/parser"
)

// ConvertParseResult turns the failure of a parse, if any, into LSP
// diagnostics. Lexing and parsing stop at the first error, so there is at
// most one.
func ConvertParseResult(text string, result *parser.ParseResult) []protocol.Diagnostic {
	source := "tiny-parser"
	if result.LexError() != nil {
		source = "tiny-scanner"
	}

	starts := lineStarts(text)
	var diagnostics []protocol.Diagnostic
	for _, err := range tinyerrors.FromParseResult(result) {
		start := lspPosition(text, starts, err.Position.Line, err.Position.Offset)
		end := lspPosition(text, starts, err.Position.Line, err.Position.Offset+spanBytes(text, err.Position.Offset, err.Length))

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Code:     &protocol.IntegerOrString{Value: err.Code},
			Source:   &source,
			Message:  diagnosticMessage(err),
		})
	}
	return diagnostics
}

// spanBytes measures length runes starting at offset, in bytes. At the end
// of the text the span is empty.
func spanBytes(text string, offset, length int) int {
	if offset >= len(text) {
		return 0
	}
	for i := range text[offset:] {
		if length == 0 {
			return i
		}
		length--
	}
	return len(text) - offset
}

func diagnosticMessage(err tinyerrors.CompilerError) string {
	var b strings.Builder
	b.WriteString(err.Message)
	for _, s := range err.Suggestions {
		b.WriteString("\nhelp: ")
		b.WriteString(s.Message)
	}
	for _, note := range err.Notes {
		b.WriteString("\nnote: ")
		b.WriteString(note)
	}
	return b.String()
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}
