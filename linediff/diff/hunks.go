package diff

import (
	"fmt"
	"slices"

	"github.com/znkr/linediff/linediff/document"
)

// Hunk describes a sequence of consecutive edits with surrounding context.
type Hunk struct {
	PosX, EndX int    // Covered lines in x, zero-based and half-open
	PosY, EndY int    // Covered lines in y, zero-based and half-open
	Edits      []Edit // Edits to transform x lines PosX..EndX to y lines PosY..EndY
}

// Hunks groups the changes in edits into hunks with up to context matching lines before and after
// every change. Two changes are merged into one hunk if they are separated by at most 2·context
// matches.
func Hunks(edits []Edit, context int) ([]Hunk, error) {
	if context < 0 {
		return nil, fmt.Errorf("%w: negative context size %d", ErrInvalidConfiguration, context)
	}

	var hunks []Hunk
	pos, s, t := 0, 0, 0 // s and t are the number of lines in x and y before edits[pos]
	advance := func(to int) {
		for ; pos < to; pos++ {
			if edits[pos].Op != Insert {
				s++
			}
			if edits[pos].Op != Delete {
				t++
			}
		}
	}

	n := len(edits)
	for k := 0; k < n; {
		first := k
		for first < n && edits[first].Op == Match {
			first++
		}
		if first == n {
			break
		}

		// Extend the hunk over all changes that are close enough to share context.
		end := first
		for {
			for end < n && edits[end].Op != Match {
				end++
			}
			next := end
			for next < n && edits[next].Op == Match {
				next++
			}
			if next == n || next-end > 2*context {
				break
			}
			end = next
		}

		start := max(k, first-context)
		stop := min(n, end+context)

		h := Hunk{Edits: slices.Clone(edits[start:stop])}
		advance(start)
		h.PosX, h.PosY = s, t
		advance(stop)
		h.EndX, h.EndY = s, t
		hunks = append(hunks, h)

		k = stop
	}
	return hunks, nil
}

// Script is the result of comparing two documents.
type Script struct {
	A, B  *document.Document
	Edits []Edit // The complete alignment of A and B
	Hunks []Hunk // Changes with context, empty iff A and B are identical
}

// Stats summarizes an edit script.
type Stats struct {
	Matches    int
	Deletions  int
	Insertions int
}

// Identical reports whether both documents are identical, i.e., the script has no hunks.
func (s *Script) Identical() bool { return len(s.Hunks) == 0 }

// Stats counts the edits of the script by operation.
func (s *Script) Stats() Stats {
	var st Stats
	for _, e := range s.Edits {
		switch e.Op {
		case Match:
			st.Matches++
		case Delete:
			st.Deletions++
		case Insert:
			st.Insertions++
		}
	}
	return st
}

// Diff compares a and b line by line and returns the edit script that transforms a into b.
func Diff(a, b *document.Document, opts ...Option) (*Script, error) {
	o, err := fromOptions(opts)
	if err != nil {
		return nil, err
	}

	t, err := newTable(a, b, o)
	if err != nil {
		return nil, err
	}
	edits := Align(t)
	hunks, err := Hunks(edits, o.context)
	if err != nil {
		return nil, err
	}
	return &Script{A: a, B: b, Edits: edits, Hunks: hunks}, nil
}
