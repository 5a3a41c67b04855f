// Package report renders edit scripts as self-contained HTML pages.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"

	"github.com/znkr/linediff/linediff/diff"
	"github.com/znkr/linediff/linediff/document"
	"github.com/znkr/linediff/linediff/highlight"
	"github.com/znkr/linediff/linediff/unified"
)

//go:embed report.html.tmpl
var pageTemplate string

var page = template.Must(template.New("report").Parse(pageTemplate))

type pageData struct {
	A, B      string
	Identical bool
	Stats     diff.Stats
	Hunks     []hunkData
}

type hunkData struct {
	Header string
	Rows   []rowData
}

type rowData struct {
	Class     string
	Old, New  string // line numbers, empty if the line doesn't exist on that side
	Marker    string
	Content   template.HTML
	NoNewline bool
}

// Render renders s as a minified HTML page. Line content is highlighted based on the file name of
// the right document.
func Render(s *diff.Script) ([]byte, error) {
	hl := highlight.New(highlight.LangFromFilename(s.B.Source()))

	data := pageData{
		A:         s.A.Source(),
		B:         s.B.Source(),
		Identical: s.Identical(),
		Stats:     s.Stats(),
	}
	for _, h := range s.Hunks {
		hd := hunkData{
			Header: fmt.Sprintf("@@ -%s +%s @@", unified.Range(h.PosX, h.EndX), unified.Range(h.PosY, h.EndY)),
		}
		for _, e := range h.Edits {
			var r rowData
			var d *document.Document
			var i int
			switch e.Op {
			case diff.Match:
				r = rowData{Class: "match", Old: strconv.Itoa(e.I), New: strconv.Itoa(e.J), Marker: " "}
				d, i = s.A, e.I
			case diff.Delete:
				r = rowData{Class: "delete", Old: strconv.Itoa(e.I), Marker: "-"}
				d, i = s.A, e.I
			case diff.Insert:
				r = rowData{Class: "insert", New: strconv.Itoa(e.J), Marker: "+"}
				d, i = s.B, e.J
			}
			content, err := hl.Line(d.Text(i))
			if err != nil {
				return nil, fmt.Errorf("highlighting %s:%d: %v", d.Source(), i, err)
			}
			r.Content = content
			r.NoNewline = i == d.Len() && d.MissingNewline()
			hd.Rows = append(hd.Rows, r)
		}
		data.Hunks = append(data.Hunks, hd)
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering template: %v", err)
	}

	minifier := minify.New()
	minifier.AddFunc("text/css", css.Minify)
	minifier.AddFunc("text/html", html.Minify)
	b, err := minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minifying report: %v", err)
	}
	return b, nil
}
