package text

import (
	"fmt"
	"sort"
)

// Buffer is a Store backed by a rune slice and an index of line starts.
// It suits the short texts of an interactive session; edits cost time
// proportional to the text after the edit point.
type Buffer struct {
	runes []rune

	// lineStarts[i] is the position of the first rune of line i.
	// lineStarts[0] is always 0.
	lineStarts []int
}

var _ Store = (*Buffer)(nil)

// NewBuffer creates a buffer holding s. Invalid UTF-8 is replaced with
// utf8.RuneError.
func NewBuffer(s string) *Buffer {
	b := &Buffer{runes: []rune(s)}
	b.reindex(0)
	return b
}

// reindex rebuilds the line index from line onward.
func (b *Buffer) reindex(line int) {
	if b.lineStarts == nil {
		b.lineStarts = []int{0}
	}
	line = min(max(line, 0), len(b.lineStarts)-1)
	b.lineStarts = b.lineStarts[:line+1]
	for i := b.lineStarts[line]; i < len(b.runes); i++ {
		if b.runes[i] == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
}

func (b *Buffer) checkPos(pos int) error {
	if pos < 0 || pos > len(b.runes) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetOutOfRange, pos, len(b.runes))
	}
	return nil
}

// InsertRune inserts r before position pos.
func (b *Buffer) InsertRune(pos int, r rune) error {
	if err := b.checkPos(pos); err != nil {
		return err
	}
	line := b.LineOf(pos)
	b.runes = append(b.runes, 0)
	copy(b.runes[pos+1:], b.runes[pos:])
	b.runes[pos] = r
	b.reindex(line)
	return nil
}

// InsertString inserts s before position pos.
func (b *Buffer) InsertString(pos int, s string) (int, error) {
	if err := b.checkPos(pos); err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	ins := []rune(s)
	line := b.LineOf(pos)

	b.runes = append(b.runes, ins...)
	copy(b.runes[pos+len(ins):], b.runes[pos:len(b.runes)-len(ins)])
	copy(b.runes[pos:], ins)
	b.reindex(line)
	return len(ins), nil
}

// Remove deletes the runes in [start, end).
func (b *Buffer) Remove(start, end int) error {
	if end < start {
		return fmt.Errorf("%w: [%d, %d)", ErrRangeInvalid, start, end)
	}
	if err := b.checkPos(start); err != nil {
		return err
	}
	if err := b.checkPos(end); err != nil {
		return err
	}
	if start == end {
		return nil
	}
	line := b.LineOf(start)
	b.runes = append(b.runes[:start], b.runes[end:]...)
	b.reindex(line)
	return nil
}

// Len returns the number of runes.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lineStarts)
}

// LineOf returns the line containing pos.
func (b *Buffer) LineOf(pos int) int {
	if pos <= 0 {
		return 0
	}
	// First line starting after pos, minus one.
	return sort.SearchInts(b.lineStarts, pos+1) - 1
}

// LineStart returns the position of the first rune of line. Lines past the
// end start at Len.
func (b *Buffer) LineStart(line int) int {
	switch {
	case line <= 0:
		return 0
	case line >= len(b.lineStarts):
		return len(b.runes)
	}
	return b.lineStarts[line]
}

// LineLen returns the number of runes in line, its newline included.
func (b *Buffer) LineLen(line int) int {
	if line < 0 || line >= len(b.lineStarts) {
		return 0
	}
	return b.lineEnd(line) - b.lineStarts[line]
}

func (b *Buffer) lineEnd(line int) int {
	if line+1 < len(b.lineStarts) {
		return b.lineStarts[line+1]
	}
	return len(b.runes)
}

// Line returns the text of line, its newline included.
func (b *Buffer) Line(line int) string {
	if line < 0 || line >= len(b.lineStarts) {
		return ""
	}
	return string(b.runes[b.lineStarts[line]:b.lineEnd(line)])
}

// String returns the whole text.
func (b *Buffer) String() string {
	return string(b.runes)
}
