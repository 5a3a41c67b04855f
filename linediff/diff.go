package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/znkr/linediff/linediff/config"
	"github.com/znkr/linediff/linediff/diff"
	"github.com/znkr/linediff/linediff/document"
	"github.com/znkr/linediff/linediff/highlight"
	"github.com/znkr/linediff/linediff/logging"
	"github.com/znkr/linediff/linediff/report"
	"github.com/znkr/linediff/linediff/unified"
)

func newDiffCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "diff <fileA> <fileB>",
		Short: "Prints the differences between two files in unified format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			log := logging.New(cmd.ErrOrStderr(), f.verbose)

			stdout := cmd.OutOrStdout()
			out, identical, err := compare(args[0], args[1], cfg, useColor(cfg, stdout), log)
			if err != nil {
				return err
			}
			if len(out) > 0 {
				if _, err := stdout.Write(out); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			}
			if !identical {
				return errDifferent
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

// flags holds the command line flags shared by all commands.
type flags struct {
	configPath        string
	context           int
	ignoreWhitespace  bool
	ignoreLineEndings bool
	maxCells          int64
	color             string
	format            string
	verbose           bool
}

func (f *flags) register(cmd *cobra.Command) {
	def := config.Default()
	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "configuration file (default $"+config.EnvVar+")")
	fl.IntVarP(&f.context, "context", "U", def.Context, "number of unchanged lines around every change")
	fl.BoolVarP(&f.ignoreWhitespace, "ignore-whitespace", "w", def.IgnoreWhitespace, "ignore changes in whitespace")
	fl.BoolVar(&f.ignoreLineEndings, "ignore-line-endings", def.IgnoreLineEndings, "treat CRLF and LF line endings as equal")
	fl.Int64Var(&f.maxCells, "max-cells", def.MaxCells, "maximum size of the comparison table")
	fl.StringVar(&f.color, "color", def.Color, "colorize the output: auto, always, or never")
	fl.StringVar(&f.format, "format", def.Format, "output format: unified or html")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log details to stderr")
}

// config loads the configuration file and applies all flags that were set explicitly.
func (f *flags) config(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(config.Path(f.configPath))
	if err != nil {
		return config.Config{}, err
	}

	fl := cmd.Flags()
	if fl.Changed("context") {
		cfg.Context = f.context
	}
	if fl.Changed("ignore-whitespace") {
		cfg.IgnoreWhitespace = f.ignoreWhitespace
	}
	if fl.Changed("ignore-line-endings") {
		cfg.IgnoreLineEndings = f.ignoreLineEndings
	}
	if fl.Changed("max-cells") {
		cfg.MaxCells = f.maxCells
	}
	if fl.Changed("color") {
		cfg.Color = f.color
	}
	if fl.Changed("format") {
		cfg.Format = f.format
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func useColor(cfg config.Config, w io.Writer) bool {
	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// compare loads and compares two files and renders the result in the configured format. Nothing is
// rendered in unified format if both files are identical.
func compare(pathA, pathB string, cfg config.Config, color bool, log zerolog.Logger) (out []byte, identical bool, err error) {
	start := time.Now()
	a, err := document.Load(pathA)
	if err != nil {
		return nil, false, err
	}
	b, err := document.Load(pathB)
	if err != nil {
		return nil, false, err
	}
	log.Debug().
		Str("a", pathA).Int("a_lines", a.Len()).
		Str("b", pathB).Int("b_lines", b.Len()).
		Int64("cells", (int64(a.Len())+1)*(int64(b.Len())+1)).
		Dur("elapsed", time.Since(start)).
		Msg("loaded documents")

	start = time.Now()
	s, err := diff.Diff(a, b, cfg.DiffOptions()...)
	if err != nil {
		return nil, false, fmt.Errorf("comparing %s and %s: %w", pathA, pathB, err)
	}
	st := s.Stats()
	log.Debug().
		Int("matches", st.Matches).
		Int("deletions", st.Deletions).
		Int("insertions", st.Insertions).
		Int("hunks", len(s.Hunks)).
		Dur("elapsed", time.Since(start)).
		Msg("compared documents")

	switch cfg.Format {
	case "html":
		out, err = report.Render(s)
		if err != nil {
			return nil, false, err
		}
	default:
		out = unified.Render(s)
		if color && len(out) > 0 {
			var buf bytes.Buffer
			if err := highlight.Terminal(&buf, out, highlight.DefaultStyle); err != nil {
				return nil, false, err
			}
			out = buf.Bytes()
		}
	}
	return out, s.Identical(), nil
}
