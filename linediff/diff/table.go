package diff

import (
	"errors"
	"fmt"
	"math"

	"github.com/znkr/linediff/linediff/document"
)

var (
	// ErrResourceExceeded is returned when the LCS table would be larger than the configured limit.
	ErrResourceExceeded = errors.New("resource limit exceeded")

	// ErrInvalidConfiguration is returned for options that can't be used.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ResourceError describes a table that's too large to compute.
type ResourceError struct {
	N, M  int   // Number of lines in both documents
	Limit int64 // Maximum number of cells
}

func (err *ResourceError) Error() string {
	return fmt.Sprintf("LCS table for %d×%d lines exceeds the limit of %d cells", err.N, err.M, err.Limit)
}

func (err *ResourceError) Is(target error) bool { return target == ErrResourceExceeded }

// Table is the dynamic programming table of longest common subsequence lengths between two
// documents x and y. The table has N+1 rows and M+1 columns; the cell (i, j) holds the length of the
// LCS of the first i lines of x and the first j lines of y.
//
// The table is stored in a flat slice, row by row.
type Table struct {
	n, m  int
	cells []int32
	x, y  []int // line ids, equal ids mean equal lines
}

// NewTable computes the LCS table for a and b. Only the Compare and MaxCells options are used.
func NewTable(a, b *document.Document, opts ...Option) (*Table, error) {
	o, err := fromOptions(opts)
	if err != nil {
		return nil, err
	}
	return newTable(a, b, o)
}

func newTable(a, b *document.Document, o options) (*Table, error) {
	n, m := a.Len(), b.Len()
	size, ok := tableSize(n, m)
	if !ok || size > o.maxCells {
		return nil, &ResourceError{N: n, M: m, Limit: o.maxCells}
	}

	x, y := intern(a, b, o.comparison)
	t := &Table{
		n:     n,
		m:     m,
		cells: make([]int32, size),
		x:     x,
		y:     y,
	}

	w := m + 1
	for i := 1; i <= n; i++ {
		prev := t.cells[(i-1)*w : i*w]
		row := t.cells[i*w : (i+1)*w]
		xi := x[i-1]
		for j := 1; j <= m; j++ {
			if xi == y[j-1] {
				row[j] = prev[j-1] + 1
			} else {
				row[j] = max(prev[j], row[j-1])
			}
		}
	}
	return t, nil
}

// tableSize returns the number of cells for a table comparing n and m lines, or false if that
// number doesn't fit into an int.
func tableSize(n, m int) (int64, bool) {
	rows, cols := int64(n)+1, int64(m)+1
	if rows > math.MaxInt64/cols {
		return 0, false
	}
	size := rows * cols
	if size > math.MaxInt {
		return 0, false
	}
	return size, true
}

type lineKey struct {
	s       string
	eofNoNL bool // last line of a document without a trailing newline
}

// intern maps every line of a and b to an integer id such that two lines have the same id iff they
// are equal under c.
func intern(a, b *document.Document, c Comparison) (x, y []int) {
	ids := make(map[lineKey]int)
	ident := func(d *document.Document) []int {
		ret := make([]int, 0, d.Len())
		for l := range d.All() {
			k := lineKey{c.key(l.Text), l.No == d.Len() && d.MissingNewline()}
			id, ok := ids[k]
			if !ok {
				id = len(ids)
				ids[k] = id
			}
			ret = append(ret, id)
		}
		return ret
	}
	return ident(a), ident(b)
}

// N returns the number of lines in the left document.
func (t *Table) N() int { return t.n }

// M returns the number of lines in the right document.
func (t *Table) M() int { return t.m }

// At returns the LCS length of the first i lines of x and the first j lines of y.
func (t *Table) At(i, j int) int { return int(t.cells[i*(t.m+1)+j]) }

// LCS returns the length of the longest common subsequence of both documents.
func (t *Table) LCS() int { return t.At(t.n, t.m) }

func (t *Table) equal(i, j int) bool { return t.x[i-1] == t.y[j-1] }
