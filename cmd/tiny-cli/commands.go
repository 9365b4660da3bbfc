package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tinyscript/grammar"
	"tinyscript/internal/ast"
	"tinyscript/internal/config"
	tinyerrors "tinyscript/internal/errors"
	"tinyscript/internal/parser"
	"tinyscript/repl"
)

func newLexCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lex FILE",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}
			result := parser.ParseSourceWithTokens(source)
			if result.LexError() != nil {
				return opts.report(args[0], source, result)
			}
			for _, tok := range result.Tokens {
				fmt.Fprintf(opts.stdout, "%-6s %s\n", tok.Pos, tok)
			}
			return nil
		},
	}
}

func newParseCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a file and print its tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = opts.cfg.Format
			}
			if format != config.FormatTree && format != config.FormatYAML {
				return fmt.Errorf("unknown format %q", format)
			}

			start := time.Now()
			source, err := readSource(args[0])
			if err != nil {
				return err
			}
			result := parser.ParseSourceWithTokens(source)
			if result.Failed() {
				return opts.report(args[0], source, result)
			}

			if format == config.FormatYAML {
				out, err := ast.ToYAML(result.Program)
				if err != nil {
					return fmt.Errorf("failed to render YAML: %w", err)
				}
				fmt.Fprint(opts.stdout, out)
			} else {
				fmt.Fprint(opts.stdout, result.Program.String())
			}

			color.New(color.FgGreen).Fprintf(opts.stderr, "Successfully parsed %s in %s\n", args[0], formatDuration(time.Since(start)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", config.FormatTree, "output format: tree or yaml")
	return cmd
}

// newCheckCommand runs both the hand-written parser and the reference
// grammar and fails if either rejects the file or they disagree.
func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Check a file against both parsers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}
			result := parser.ParseSourceWithTokens(source)
			_, refErr := grammar.Parse(args[0], source)

			switch {
			case result.Failed() && refErr != nil:
				return opts.report(args[0], source, result)
			case result.Failed():
				opts.report(args[0], source, result)
				return fmt.Errorf("parsers disagree: the reference grammar accepts %s", args[0])
			case refErr != nil:
				grammar.ReportParseError(opts.stderr, source, refErr)
				return fmt.Errorf("parsers disagree: the reference grammar rejects %s", args[0])
			}

			color.New(color.FgGreen).Fprintf(opts.stdout, "%s: ok\n", args[0])
			return nil
		},
	}
}

func newFmtCommand(opts *options) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print a file in canonical layout (comments are dropped)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}
			formatted, err := grammar.Format(args[0], source)
			if err != nil {
				grammar.ReportParseError(opts.stderr, source, err)
				return errReported
			}
			if !write {
				fmt.Fprint(opts.stdout, formatted)
				return nil
			}
			if err := os.WriteFile(args[0], []byte(formatted), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to FILE")
	return cmd
}

func newGrammarCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "Print the reference grammar in EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(opts.stdout, grammar.EBNF())
			return nil
		},
	}
}

func newReplCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl.New(opts.cfg.REPL, opts.stdout).Run()
		},
	}
}

func readSource(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(source), nil
}

// report prints the diagnostics of a failed parse to stderr.
func (o *options) report(path, source string, result *parser.ParseResult) error {
	reporter := tinyerrors.NewErrorReporter(path, source)
	fmt.Fprint(o.stderr, reporter.FormatAll(tinyerrors.FromParseResult(result)))
	return errReported
}
