package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"tinyscript/token"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
)

// CompilerError is a coded diagnostic tied to a source span.
type CompilerError struct {
	Level       ErrorLevel
	Code        string
	Message     string
	Position    token.Position
	Length      int // width of the underlined span
	Suggestions []Suggestion
	Notes       []string
}

func (e CompilerError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s at %s", e.Level, e.Message, e.Position)
	}
	return fmt.Sprintf("%s[%s]: %s at %s", e.Level, e.Code, e.Message, e.Position)
}

// Suggestion is a possible fix. Replacement is optional.
type Suggestion struct {
	Message     string
	Replacement string
}

// ErrorReporter renders diagnostics against one source file.
type ErrorReporter struct {
	filename string
	lines    []string
}

func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders err with a location header, the offending line with
// one line of context on each side, and a caret marker.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := levelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		fmt.Fprintf(&result, "%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&result, "%s: %s\n", levelColor(string(err.Level)), err.Message)
	}

	line := err.Position.Line
	width := lineNumberWidth(line + 1)
	indent := strings.Repeat(" ", width)

	fmt.Fprintf(&result, "%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, line, err.Position.Column)
	fmt.Fprintf(&result, "%s %s\n", indent, dim("│"))

	if line > 1 && line-1 <= len(er.lines) {
		fmt.Fprintf(&result, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, line-1)), dim("│"), er.lines[line-2])
	}

	if line > 0 && line <= len(er.lines) {
		fmt.Fprintf(&result, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, line)), dim("│"), er.lines[line-1])
		fmt.Fprintf(&result, "%s %s %s\n", indent, dim("│"), er.createMarker(err.Position.Column, err.Length, err.Level))
	}

	if line > 0 && line < len(er.lines) {
		fmt.Fprintf(&result, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, line+1)), dim("│"), er.lines[line])
	}

	if len(err.Suggestions) > 0 {
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(&result, "%s %s\n", indent, dim("│"))
		for i, suggestion := range err.Suggestions {
			if i == 0 {
				fmt.Fprintf(&result, "%s %s: %s\n", indent, cyan("help"), suggestion.Message)
			} else {
				fmt.Fprintf(&result, "%s       %s\n", indent, suggestion.Message)
			}
			if suggestion.Replacement != "" {
				fmt.Fprintf(&result, "%s %s %s\n", indent, cyan("│"), cyan(suggestion.Replacement))
			}
		}
	}

	blue := color.New(color.FgBlue).SprintFunc()
	for _, note := range err.Notes {
		fmt.Fprintf(&result, "%s %s %s %s\n", indent, dim("│"), blue("note:"), note)
	}

	result.WriteString("\n")
	return result.String()
}

// FormatAll renders every diagnostic in order.
func (er *ErrorReporter) FormatAll(errs []CompilerError) string {
	var result strings.Builder
	for _, err := range errs {
		result.WriteString(er.FormatError(err))
	}
	return result.String()
}

func levelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker underlines length columns starting at column.
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	return spaces + levelColor(level)(strings.Repeat("^", length))
}

func lineNumberWidth(line int) int {
	return max(3, len(fmt.Sprintf("%d", line)))
}
