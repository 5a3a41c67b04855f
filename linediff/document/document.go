// Package document loads text documents as immutable sequences of lines.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Line is a single line of a document. Text doesn't include the terminating newline, but
// everything else, e.g., the '\r' of a CRLF line ending.
type Line struct {
	No   int // 1-based line number
	Text string
}

// Document is an ordered sequence of lines read from a source. A Document is never modified after
// it was created.
type Document struct {
	source         string
	lines          []Line
	missingNewline bool
}

// IOError reports that a source could not be read.
type IOError struct {
	Source string
	Err    error
}

func (err *IOError) Error() string { return fmt.Sprintf("reading %s: %v", err.Source, err.Err) }
func (err *IOError) Unwrap() error { return err.Err }

// EncodingError reports that the content of a source is not text.
type EncodingError struct {
	Source string
	Offset int // byte offset of the first offending byte, -1 if unknown
	Msg    string
}

func (err *EncodingError) Error() string {
	if err.Offset < 0 {
		return fmt.Sprintf("decoding %s: %s", err.Source, err.Msg)
	}
	return fmt.Sprintf("decoding %s: %s at byte %d", err.Source, err.Msg, err.Offset)
}

// Load reads and decodes the file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Source: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes data and splits it into lines. Input with a UTF-16 byte order mark is decoded from
// UTF-16, a UTF-8 byte order mark is dropped. Everything else must be valid UTF-8 without NUL
// bytes.
func Parse(source string, data []byte) (*Document, error) {
	offset := 0
	if bytes.HasPrefix(data, utf8BOM) {
		data = data[len(utf8BOM):]
		offset = len(utf8BOM)
	}

	// Without a BOM, BOMOverride falls back to validating UTF-8.
	text, _, err := transform.Bytes(unicode.BOMOverride(encoding.UTF8Validator), data)
	if err != nil {
		if errors.Is(err, encoding.ErrInvalidUTF8) {
			return nil, &EncodingError{Source: source, Offset: offset + invalidOffset(data), Msg: "invalid UTF-8"}
		}
		return nil, &EncodingError{Source: source, Offset: -1, Msg: err.Error()}
	}
	if i := bytes.IndexByte(text, 0); i >= 0 {
		if hasUTF16BOM(data) {
			return nil, &EncodingError{Source: source, Offset: -1, Msg: "binary content (NUL character)"}
		}
		return nil, &EncodingError{Source: source, Offset: offset + i, Msg: "binary content (NUL byte)"}
	}

	d := &Document{source: source}
	for len(text) > 0 {
		eol := bytes.IndexByte(text, '\n')
		if eol < 0 {
			d.lines = append(d.lines, Line{len(d.lines) + 1, string(text)})
			d.missingNewline = true
			break
		}
		d.lines = append(d.lines, Line{len(d.lines) + 1, string(text[:eol])})
		text = text[eol+1:]
	}
	return d, nil
}

// FromLines creates a document from lines. Every line is considered to be terminated by a
// newline.
func FromLines(source string, lines ...string) *Document {
	d := &Document{
		source: source,
		lines:  make([]Line, 0, len(lines)),
	}
	for i, l := range lines {
		d.lines = append(d.lines, Line{i + 1, l})
	}
	return d
}

var utf8BOM = []byte("\xef\xbb\xbf")

func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 && (data[0] == 0xfe && data[1] == 0xff || data[0] == 0xff && data[1] == 0xfe)
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, w := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && w <= 1 {
			return i
		}
		i += w
	}
	return -1
}

// Source returns the identifier of the document's source, usually a file path.
func (d *Document) Source() string { return d.source }

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// Line returns the line with the 1-based number i.
func (d *Document) Line(i int) Line { return d.lines[i-1] }

// Text returns the content of the line with the 1-based number i.
func (d *Document) Text(i int) string { return d.lines[i-1].Text }

// MissingNewline reports whether the last line of the document isn't terminated by a newline.
func (d *Document) MissingNewline() bool { return d.missingNewline }

// All iterates over all lines in order.
func (d *Document) All() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, l := range d.lines {
			if !yield(l) {
				return
			}
		}
	}
}
