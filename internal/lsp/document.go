package lsp

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// applyChange applies one content change event to text. A change without a
// range replaces the whole document.
func applyChange(text string, change any) (string, error) {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return c.Text, nil
	case *protocol.TextDocumentContentChangeEventWhole:
		return c.Text, nil
	case protocol.TextDocumentContentChangeEvent:
		return applyRangeChange(text, c)
	case *protocol.TextDocumentContentChangeEvent:
		return applyRangeChange(text, *c)
	}
	return "", fmt.Errorf("unsupported content change %T", change)
}

func applyRangeChange(text string, c protocol.TextDocumentContentChangeEvent) (string, error) {
	if c.Range == nil {
		return c.Text, nil
	}
	start, err := offsetOf(text, c.Range.Start)
	if err != nil {
		return "", err
	}
	end, err := offsetOf(text, c.Range.End)
	if err != nil {
		return "", err
	}
	if end < start {
		return "", fmt.Errorf("range end %d:%d precedes start", c.Range.End.Line, c.Range.End.Character)
	}
	return text[:start] + c.Text + text[end:], nil
}

// offsetOf converts an LSP position, counted in UTF-16 code units, to a
// byte offset in text. A character past the end of a line clamps to it.
func offsetOf(text string, pos protocol.Position) (int, error) {
	offset := 0
	for line := uint32(0); line < pos.Line; line++ {
		next := strings.IndexByte(text[offset:], '\n')
		if next < 0 {
			return 0, fmt.Errorf("line %d is past the end of the document", pos.Line)
		}
		offset += next + 1
	}

	units := uint32(0)
	for offset < len(text) && text[offset] != '\n' && units < pos.Character {
		r, size := utf8.DecodeRuneInString(text[offset:])
		units += uint32(utf16.RuneLen(r))
		offset += size
	}
	return offset, nil
}

// utf16Len counts s in UTF-16 code units.
func utf16Len(s string) uint32 {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return uint32(n)
}

// lineStarts returns the byte offset at which each line begins.
func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lspPosition converts a 1-based line and a byte offset into an LSP
// position.
func lspPosition(text string, starts []int, line, offset int) protocol.Position {
	if line < 1 || line > len(starts) {
		return protocol.Position{}
	}
	start := starts[line-1]
	if offset < start {
		offset = start
	}
	if offset > len(text) {
		offset = len(text)
	}
	return protocol.Position{
		Line:      uint32(line - 1),
		Character: utf16Len(text[start:offset]),
	}
}
