// Package unified renders edit scripts in unified diff format.
package unified

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/znkr/linediff/linediff/diff"
	"github.com/znkr/linediff/linediff/document"
)

const (
	prefixMatch  = " "
	prefixDelete = "-"
	prefixInsert = "+"
)

const missingNewline = "\\ No newline at end of file\n"

// Option configures the output format.
type Option func(*format)

type format struct {
	fileHeaders bool
}

// FileHeaders enables or disables the "---" and "+++" lines naming both documents. They are
// enabled by default.
func FileHeaders(enabled bool) Option {
	return func(f *format) { f.fileHeaders = enabled }
}

// Render formats s in unified format. A script without hunks renders as empty output.
func Render(s *diff.Script, opts ...Option) []byte {
	f := format{fileHeaders: true}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&f)
	}

	if s.Identical() {
		return nil
	}

	var b bytes.Buffer
	if f.fileHeaders {
		fmt.Fprintf(&b, "--- %s\n", s.A.Source())
		fmt.Fprintf(&b, "+++ %s\n", s.B.Source())
	}
	for _, h := range s.Hunks {
		fmt.Fprintf(&b, "@@ -%s +%s @@\n", Range(h.PosX, h.EndX), Range(h.PosY, h.EndY))
		for _, e := range h.Edits {
			switch e.Op {
			case diff.Match:
				writeLine(&b, prefixMatch, s.A, e.I)
			case diff.Delete:
				writeLine(&b, prefixDelete, s.A, e.I)
			case diff.Insert:
				writeLine(&b, prefixInsert, s.B, e.J)
			}
		}
	}
	return b.Bytes()
}

// Range formats the zero-based, half-open line range pos..end for a hunk header. A range of one
// line is abbreviated to its line number. An empty range is given by the line before it.
func Range(pos, end int) string {
	switch n := end - pos; n {
	case 0:
		return fmt.Sprintf("%d,0", pos)
	case 1:
		return strconv.Itoa(pos + 1)
	default:
		return fmt.Sprintf("%d,%d", pos+1, n)
	}
}

func writeLine(b *bytes.Buffer, prefix string, d *document.Document, i int) {
	b.WriteString(prefix)
	b.WriteString(d.Text(i))
	b.WriteByte('\n')
	if i == d.Len() && d.MissingNewline() {
		b.WriteString(missingNewline)
	}
}
