package text

import "errors"

// Errors returned by Store edits.
var (
	// ErrOffsetOutOfRange indicates an offset is outside [0, Len].
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates a range with end before start.
	ErrRangeInvalid = errors.New("invalid range")
)

// Store is the text model a cursor navigates and edits.
type Store interface {
	// InsertRune inserts r before position pos.
	InsertRune(pos int, r rune) error

	// InsertString inserts s before position pos and returns the number of
	// runes inserted.
	InsertString(pos int, s string) (int, error)

	// Remove deletes the runes in [start, end).
	Remove(start, end int) error

	// Len returns the number of runes.
	Len() int

	// LineCount returns the number of lines, at least 1.
	LineCount() int

	// LineOf returns the line containing pos. Positions past the end
	// belong to the last line.
	LineOf(pos int) int

	// LineStart returns the position of the first rune of line.
	LineStart(line int) int

	// LineLen returns the number of runes in line, its newline included.
	LineLen(line int) int

	// Line returns the text of line, its newline included.
	Line(line int) string

	// String returns the whole text.
	String() string
}
