package diff

import (
	"cmp"
	"slices"
)

// Align backtracks t into an alignment, a sequence of edits that transforms the left document into
// the right one. Line positions referenced by the edits are strictly increasing in both documents.
//
// When deleting and inserting lead to an LCS of the same length, deleting is preferred. Within a
// run of consecutive changes, all deletions are ordered before all insertions.
func Align(t *Table) []Edit {
	edits := make([]Edit, 0, t.n+t.m-t.LCS())

	// Appends edits in reverse order by walking back from (n, m) to (0, 0) and reverses them
	// afterwards.
	i, j := t.n, t.m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && t.equal(i, j) && t.At(i, j) == t.At(i-1, j-1)+1:
			edits = append(edits, Edit{Match, i, j})
			i--
			j--
		case i > 0 && (j == 0 || t.At(i-1, j) >= t.At(i, j-1)):
			edits = append(edits, Edit{Delete, i, 0})
			i--
		default:
			edits = append(edits, Edit{Insert, 0, j})
			j--
		}
	}
	slices.Reverse(edits)

	for start, end := 0, 0; start < len(edits); start = end {
		for ; start < len(edits) && edits[start].Op == Match; start++ {
		}
		for end = start; end < len(edits) && edits[end].Op != Match; end++ {
		}
		// Delete < Insert, the sort is stable and keeps the order of lines within each document.
		slices.SortStableFunc(edits[start:end], func(a, b Edit) int { return cmp.Compare(a.Op, b.Op) })
	}
	return edits
}
