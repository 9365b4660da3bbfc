// SPDX-License-Identifier: Apache-2.0
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"tinyscript/internal/config"
)

// errReported marks a failure whose diagnostics were already printed.
var errReported = errors.New("failed")

type options struct {
	configPath string
	noColor    bool
	verbose    int

	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

func main() {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			color.New(color.FgRed).Fprintf(os.Stderr, "error: %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "tiny-cli",
		Short:         "Lex, parse and check Tiny programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity (repeatable)")

	root.AddCommand(
		newLexCommand(opts),
		newParseCommand(opts),
		newCheckCommand(opts),
		newFmtCommand(opts),
		newGrammarCommand(opts),
		newReplCommand(opts),
	)
	return root
}

func (o *options) setup() error {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg

	if o.noColor || !cfg.Color {
		color.NoColor = true
	}

	verbosity := cfg.Verbosity
	if o.verbose > 0 {
		verbosity = o.verbose
	}
	commonlog.Configure(verbosity, nil)
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
