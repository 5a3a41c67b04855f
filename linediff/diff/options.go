package diff

import (
	"fmt"
	"strings"
)

// Comparison selects how lines are compared.
type Comparison int

const (
	// Exact compares lines byte by byte.
	Exact Comparison = iota
	// IgnoreLineEndings ignores a trailing '\r' so that CRLF and LF lines compare equal.
	IgnoreLineEndings
	// IgnoreWhitespace ignores leading and trailing whitespace and treats every run of inner
	// whitespace as a single space. It implies IgnoreLineEndings.
	IgnoreWhitespace
)

// DefaultContext is the default number of context lines around a change.
const DefaultContext = 3

// DefaultMaxCells is the default limit on the number of LCS table cells.
const DefaultMaxCells = 1 << 26

// Option configures a diff.
type Option func(*options)

type options struct {
	context    int
	maxCells   int64
	comparison Comparison
}

// Context sets the number of unchanged lines shown around every change.
func Context(n int) Option {
	return func(o *options) { o.context = n }
}

// MaxCells limits the size of the LCS table to n cells.
func MaxCells(n int64) Option {
	return func(o *options) { o.maxCells = n }
}

// Compare sets how lines are compared.
func Compare(c Comparison) Option {
	return func(o *options) { o.comparison = c }
}

func fromOptions(opts []Option) (options, error) {
	o := options{
		context:  DefaultContext,
		maxCells: DefaultMaxCells,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	switch {
	case o.context < 0:
		return o, fmt.Errorf("%w: negative context size %d", ErrInvalidConfiguration, o.context)
	case o.maxCells <= 0:
		return o, fmt.Errorf("%w: table limit must be positive, got %d", ErrInvalidConfiguration, o.maxCells)
	case o.comparison < Exact || o.comparison > IgnoreWhitespace:
		return o, fmt.Errorf("%w: unknown comparison %d", ErrInvalidConfiguration, o.comparison)
	}
	return o, nil
}

// key returns the string that's used to compare line with other lines.
func (c Comparison) key(line string) string {
	switch c {
	case IgnoreLineEndings:
		return strings.TrimSuffix(line, "\r")
	case IgnoreWhitespace:
		return strings.Join(strings.Fields(line), " ")
	default:
		return line
	}
}
