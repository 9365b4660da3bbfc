// SPDX-License-Identifier: Apache-2.0

// Package repl reads Tiny source a line at a time and prints its parse tree.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/peterh/liner"
	"github.com/tliron/commonlog"

	"tinyscript/internal/config"
	tinyerrors "tinyscript/internal/errors"
	"tinyscript/internal/parser"
	"tinyscript/token"
)

const continuationPrompt = "... "

var log = commonlog.GetLogger("tiny.repl")

type REPL struct {
	cfg config.REPL
	out io.Writer
}

func New(cfg config.REPL, out io.Writer) *REPL {
	if cfg.Prompt == "" {
		cfg.Prompt = config.Default().REPL.Prompt
	}
	return &REPL{cfg: cfg, out: out}
}

// Eval parses one input. Input beginning with 'begin' is a whole program,
// anything else a single statement. ":tokens SRC" lists the tokens of SRC
// instead.
func (r *REPL) Eval(input string) (string, *parser.ParseResult) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	if rest, ok := cutCommand(input, ":tokens"); ok {
		tokens, err := parser.Tokenize(rest)
		if err != nil {
			return "", &parser.ParseResult{Err: err}
		}
		var b strings.Builder
		for _, tok := range tokens {
			fmt.Fprintf(&b, "%s %s\n", tok.Pos, tok)
		}
		return b.String(), &parser.ParseResult{Tokens: tokens}
	}

	result := parseInput(input)
	if result.Failed() {
		return "", result
	}
	return result.Program.String(), result
}

// cutCommand matches name as a whole word at the start of input.
func cutCommand(input, name string) (string, bool) {
	rest, ok := strings.CutPrefix(input, name)
	if !ok {
		return "", false
	}
	if r, _ := utf8.DecodeRuneInString(rest); rest != "" && !unicode.IsSpace(r) {
		return "", false
	}
	return rest, true
}

func parseInput(input string) *parser.ParseResult {
	if isProgram(input) {
		return parser.ParseSourceWithTokens(input)
	}
	tokens, err := parser.Tokenize(input)
	if err != nil {
		return &parser.ParseResult{Err: err}
	}
	stmt, err := parser.NewParser(tokens).ParseStatement()
	return &parser.ParseResult{Tokens: tokens, Program: stmt, Err: err}
}

func isProgram(input string) bool {
	rest, ok := strings.CutPrefix(strings.TrimSpace(input), "begin")
	if !ok {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return rest == "" || !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// incomplete reports whether a program ran out of input, so more lines
// should be read before giving up.
func incomplete(input string, result *parser.ParseResult) bool {
	if result == nil || !isProgram(input) {
		return false
	}
	synErr := result.SyntaxError()
	return synErr != nil && synErr.AtEnd()
}

// Run reads lines until EOF or ":quit". Programs may span several lines.
func (r *REPL) Run() error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)
	r.loadHistory(line)
	defer r.saveHistory(line)

	var pending []string
	for {
		prompt := r.cfg.Prompt
		if len(pending) > 0 {
			prompt = continuationPrompt
		}

		text, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			pending = nil
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if strings.TrimSpace(text) == ":quit" {
			return nil
		}
		if strings.TrimSpace(text) != "" {
			line.AppendHistory(text)
		}

		pending = append(pending, text)
		input := strings.Join(pending, "\n")
		out, result := r.Eval(input)
		if incomplete(input, result) {
			continue
		}
		pending = nil

		if result != nil && result.Failed() {
			reporter := tinyerrors.NewErrorReporter("<repl>", input)
			fmt.Fprint(r.out, reporter.FormatAll(tinyerrors.FromParseResult(result)))
			continue
		}
		fmt.Fprint(r.out, out)
	}
}

func (r *REPL) loadHistory(line *liner.State) {
	if r.cfg.History == "" {
		return
	}
	f, err := os.Open(r.cfg.History)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warningf("failed to open history %s: %s", r.cfg.History, err)
		}
		return
	}
	defer f.Close()
	if _, err := line.ReadHistory(f); err != nil {
		log.Warningf("failed to read history %s: %s", r.cfg.History, err)
	}
}

func (r *REPL) saveHistory(line *liner.State) {
	if r.cfg.History == "" {
		return
	}
	f, err := os.Create(r.cfg.History)
	if err != nil {
		log.Warningf("failed to write history %s: %s", r.cfg.History, err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		log.Warningf("failed to write history %s: %s", r.cfg.History, err)
	}
}

// complete finishes the last word on the line from the keyword list.
func complete(line string) []string {
	cut := strings.LastIndexAny(line, " \t({[;") + 1
	head, word := line[:cut], line[cut:]
	if word == "" {
		return nil
	}

	var candidates []string
	for _, kw := range token.Keywords() {
		if strings.HasPrefix(kw, word) {
			candidates = append(candidates, head+kw)
		}
	}
	return candidates
}
