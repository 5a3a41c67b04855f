package document

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name               string
		in                 string
		want               []Line
		wantMissingNewline bool
	}{
		{
			name: "empty",
		},
		{
			name: "single_line",
			in:   "foo\n",
			want: []Line{{1, "foo"}},
		},
		{
			name:               "missing_newline",
			in:                 "foo\nbar",
			want:               []Line{{1, "foo"}, {2, "bar"}},
			wantMissingNewline: true,
		},
		{
			name: "empty_lines",
			in:   "\n\nfoo\n\n",
			want: []Line{{1, ""}, {2, ""}, {3, "foo"}, {4, ""}},
		},
		{
			name: "crlf_is_preserved",
			in:   "foo\r\nbar\r\n",
			want: []Line{{1, "foo\r"}, {2, "bar\r"}},
		},
		{
			name: "whitespace_is_preserved",
			in:   "  foo \t\n",
			want: []Line{{1, "  foo \t"}},
		},
		{
			name: "utf8_bom",
			in:   "\xef\xbb\xbfhällo\n",
			want: []Line{{1, "hällo"}},
		},
		{
			name: "utf16le_bom",
			in:   "\xff\xfeh\x00i\x00\n\x00",
			want: []Line{{1, "hi"}},
		},
		{
			name: "utf16be_bom",
			in:   "\xfe\xff\x00h\x00i\x00\n",
			want: []Line{{1, "hi"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse("test.txt", []byte(tt.in))
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			got := slices.Collect(d.All())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lines are different (-want, +got):\n%s", diff)
			}
			if d.MissingNewline() != tt.wantMissingNewline {
				t.Errorf("MissingNewline() = %v, want %v", d.MissingNewline(), tt.wantMissingNewline)
			}
			if d.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", d.Len(), len(tt.want))
			}
			if d.Source() != "test.txt" {
				t.Errorf("Source() = %q, want %q", d.Source(), "test.txt")
			}
		})
	}
}

func TestParseEncodingErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *EncodingError
	}{
		{
			name: "invalid_utf8",
			in:   "foo\nb\xffr\n",
			want: &EncodingError{Source: "test.txt", Offset: 5, Msg: "invalid UTF-8"},
		},
		{
			name: "invalid_utf8_after_bom",
			in:   "\xef\xbb\xbf\xc3",
			want: &EncodingError{Source: "test.txt", Offset: 3, Msg: "invalid UTF-8"},
		},
		{
			name: "nul_byte",
			in:   "foo\x00bar\n",
			want: &EncodingError{Source: "test.txt", Offset: 3, Msg: "binary content (NUL byte)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.txt", []byte(tt.in))
			var got *EncodingError
			if !errors.As(err, &got) {
				t.Fatalf("Parse() error = %v, want *EncodingError", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("error is different (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("a\nb\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got, want := d.Text(2), "b"; got != want {
		t.Errorf("Text(2) = %q, want %q", got, want)
	}
	if got, want := d.Line(1), (Line{1, "a"}); got != want {
		t.Errorf("Line(1) = %v, want %v", got, want)
	}

	_, err = Load(filepath.Join(dir, "missing.txt"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Load() error = %v, want *IOError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
	}
}

func TestFromLines(t *testing.T) {
	d := FromLines("a", "x", "y")
	want := []Line{{1, "x"}, {2, "y"}}
	if diff := cmp.Diff(want, slices.Collect(d.All())); diff != "" {
		t.Errorf("lines are different (-want, +got):\n%s", diff)
	}
	if d.MissingNewline() {
		t.Errorf("MissingNewline() = true, want false")
	}
}
