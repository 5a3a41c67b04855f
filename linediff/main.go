package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/znkr/linediff/linediff/config"
	"github.com/znkr/linediff/linediff/diff"
	"github.com/znkr/linediff/linediff/document"
)

// errDifferent is returned by commands that found differences. It's not an error from the user's
// point of view, but it determines the exit code.
var errDifferent = errors.New("documents differ")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line in args and returns the exit code: 0 if the documents are
// identical, 1 if they differ, and 2 for all errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := &cobra.Command{
		Use:           "linediff [command]",
		Short:         "Compares text files line by line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newWatchCmd())

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDifferent):
		return 1
	default:
		fmt.Fprintf(stderr, "linediff: %s\n", describe(err))
		return 2
	}
}

// describe prefixes err with the kind of error.
func describe(err error) string {
	var (
		encErr  *document.EncodingError
		ioErr   *document.IOError
		pathErr *fs.PathError
	)
	switch {
	case errors.As(err, &encErr):
		return "encoding error: " + err.Error()
	case errors.As(err, &ioErr), errors.As(err, &pathErr):
		return "I/O error: " + err.Error()
	case errors.Is(err, diff.ErrResourceExceeded):
		return "resource limit exceeded: " + err.Error()
	case errors.Is(err, config.ErrInvalid), errors.Is(err, diff.ErrInvalidConfiguration):
		return err.Error()
	default:
		return "usage error: " + err.Error()
	}
}
