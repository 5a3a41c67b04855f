// Package diff computes line based differences between two documents.
//
// The comparison builds the full table of longest common subsequence lengths between both
// documents, backtracks it into an alignment of edits, and groups the edits into hunks with
// surrounding context. Time and space are O(N·M); the table size is checked against a limit before
// anything is allocated.
package diff

// Op describes an edit operation.
//
//go:generate go tool stringer -type=Op
type Op int

const (
	Match  Op = iota // Two lines match
	Delete           // A deletion of a line from the left document
	Insert           // An insertion of a line from the right document
)

// Edit describes a single edit of an alignment.
//
//   - For Match, I and J are set to the 1-based positions of the matching lines
//   - For Delete, I is set to the position of the deleted line and J is 0
//   - For Insert, J is set to the position of the inserted line and I is 0
type Edit struct {
	Op   Op
	I, J int
}
