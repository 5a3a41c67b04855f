// Package highlight colors diffs for terminals and highlights source lines for HTML output.
package highlight

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used for terminal output.
const DefaultStyle = "vim"

// Terminal writes the unified diff in to w, colored with ANSI escape codes for 16 color terminals.
func Terminal(w io.Writer, in []byte, style string) error {
	lexer := chroma.Coalesce(lexers.Get("diff"))
	it, err := lexer.Tokenise(nil, string(in))
	if err != nil {
		return fmt.Errorf("creating iterator: %v", err)
	}
	if err := formatters.TTY16.Format(w, styles.Get(style), it); err != nil {
		return fmt.Errorf("formatting diff: %v", err)
	}
	return nil
}

var classes = map[chroma.TokenType]string{
	chroma.Keyword:           "hl-b",
	chroma.KeywordPseudo:     "",
	chroma.KeywordType:       "",
	chroma.NameClass:         "hl-b",
	chroma.NameEntity:        "hl-b",
	chroma.NameException:     "hl-b",
	chroma.NameNamespace:     "hl-b",
	chroma.NameTag:           "hl-b",
	chroma.NameBuiltin:       "hl-bl",
	chroma.LiteralString:     "hl-i",
	chroma.OperatorWord:      "hl-b",
	chroma.Comment:           "hl-ii",
	chroma.CommentPreproc:    "",
	chroma.GenericEmph:       "hl-i",
	chroma.GenericHeading:    "hl-b",
	chroma.GenericStrong:     "hl-b",
	chroma.GenericSubheading: "hl-b",
}

// Option configures how lines are highlighted.
type Option func(*Highlighter)

// Lang selects the lexer by language name.
func Lang(lang string) Option {
	return func(hl *Highlighter) {
		hl.lexer = lexers.Get(lang)
	}
}

// LangFromFilename selects the lexer matching filename, e.g., by extension.
func LangFromFilename(filename string) Option {
	return func(hl *Highlighter) {
		hl.lexer = lexers.Match(filename)
	}
}

// Highlighter highlights single lines of source code as HTML.
type Highlighter struct {
	lexer chroma.Lexer
}

// New creates a highlighter. Without options, or if no lexer matches, lines are escaped but not
// highlighted.
func New(opts ...Option) *Highlighter {
	hl := &Highlighter{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(hl)
	}

	if hl.lexer == nil {
		hl.lexer = lexers.Fallback
	}
	hl.lexer = chroma.Coalesce(hl.lexer)
	return hl
}

// Line returns line as HTML with spans for highlighted tokens.
//
// Lines are highlighted in isolation, a construct spanning multiple lines (e.g., a block comment)
// is only partially recognized.
func (hl *Highlighter) Line(line string) (template.HTML, error) {
	it, err := hl.lexer.Tokenise(nil, line)
	if err != nil {
		return "", fmt.Errorf("creating iterator: %v", err)
	}

	var sb strings.Builder
	for _, token := range it.Tokens() {
		class := class(token.Type)
		if class != "" {
			fmt.Fprintf(&sb, "<span class=\"%s\">", class)
		}
		sb.WriteString(html.EscapeString(strings.TrimSuffix(token.Value, "\n")))
		if class != "" {
			sb.WriteString("</span>")
		}
	}
	return template.HTML(sb.String()), nil
}

func class(t chroma.TokenType) string {
	s, ok := classes[t]
	if ok {
		return s
	}
	s, ok = classes[t.SubCategory()]
	if ok {
		return s
	}
	s, ok = classes[t.Category()]
	if ok {
		return s
	}
	return ""
}
