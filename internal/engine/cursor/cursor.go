package cursor

import (
	"errors"
	"fmt"

	"github.com/dshills/glyph/internal/engine/text"
)

// Navigator moves a cursor over a text store and applies edits at it.
// It is not safe for concurrent use.
type Navigator struct {
	store text.Store
	pos   int
	ghost int
}

// New creates a navigator at the start of store.
func New(store text.Store) *Navigator {
	return &Navigator{store: store}
}

// Store returns the text the navigator edits.
func (n *Navigator) Store() text.Store {
	return n.store
}

// Pos returns the cursor position.
func (n *Navigator) Pos() int {
	return n.pos
}

// Ghost returns the ghost position.
func (n *Navigator) Ghost() int {
	return n.ghost
}

// SetPos moves the cursor to pos, clamped to the text, and resets the ghost.
func (n *Navigator) SetPos(pos int) {
	n.pos = clamp(pos, 0, n.store.Len())
	n.ghost = n.pos
}

// XY returns the cursor as (column, line).
func (n *Navigator) XY() (x, y int) {
	return n.PositionToXY(n.pos)
}

// PositionToXY converts pos to (column, line).
func (n *Navigator) PositionToXY(pos int) (x, y int) {
	y = n.store.LineOf(pos)
	return pos - n.store.LineStart(y), y
}

// navLen is the number of positions the cursor may take on line before
// the newline. The last line has no newline.
func (n *Navigator) navLen(line int) int {
	l := n.store.LineLen(line)
	if line < n.store.LineCount()-1 && l > 0 {
		l--
	}
	return l
}

// MoveHorizontal moves the cursor delta positions, clamped to the text.
func (n *Navigator) MoveHorizontal(delta int) {
	n.SetPos(n.pos + delta)
}

// MoveVertical moves the cursor delta lines toward the ghost column.
// Moving above the first line goes to the start of the text, moving
// below the last line to its end.
func (n *Navigator) MoveVertical(delta int) {
	_, y := n.XY()
	target := y + delta
	switch {
	case target < 0:
		n.SetPos(0)
	case target >= n.store.LineCount():
		n.SetPos(n.store.Len())
	default:
		gx, _ := n.PositionToXY(min(n.ghost, n.store.Len()))
		n.pos = n.store.LineStart(target) + min(gx, n.navLen(target))
	}
}

// Home moves to the start of the current line.
func (n *Navigator) Home() {
	_, y := n.XY()
	n.SetPos(n.store.LineStart(y))
}

// End moves to the end of the current line, before its newline.
func (n *Navigator) End() {
	_, y := n.XY()
	n.SetPos(n.store.LineStart(y) + n.navLen(y))
}

// InsertRune inserts r at the cursor and moves past it.
func (n *Navigator) InsertRune(r rune) error {
	if err := n.store.InsertRune(n.pos, r); err != nil {
		return fmt.Errorf("insert %q at %d: %w", r, n.pos, err)
	}
	n.MoveHorizontal(1)
	return nil
}

// InsertString inserts s at the cursor and moves past it.
func (n *Navigator) InsertString(s string) error {
	count, err := n.store.InsertString(n.pos, s)
	if err != nil {
		return fmt.Errorf("insert %d bytes at %d: %w", len(s), n.pos, err)
	}
	n.MoveHorizontal(count)
	return nil
}

// Backspace removes the rune before the cursor. At the start of the text
// it only resets the ghost.
func (n *Navigator) Backspace() error {
	if err := ignoreRange(n.store.Remove(n.pos-1, n.pos)); err != nil {
		return err
	}
	n.MoveHorizontal(-1)
	return nil
}

// Delete removes the rune under the cursor. At the end of the text it
// does nothing.
func (n *Navigator) Delete() error {
	if err := ignoreRange(n.store.Remove(n.pos, n.pos+1)); err != nil {
		return err
	}
	n.SetPos(n.pos)
	return nil
}

// ignoreRange drops out-of-range errors, which edits at the text
// boundaries produce.
func ignoreRange(err error) error {
	if errors.Is(err, text.ErrOffsetOutOfRange) {
		return nil
	}
	return err
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
