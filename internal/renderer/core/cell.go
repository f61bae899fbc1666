package core

import "github.com/mattn/go-runewidth"

// Cell represents a single terminal cell.
//
// A cell whose rune is 0 is the right half of a double-width rune placed in
// the cell to its left. It emits nothing when encoded.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Rune: ' '}
}

// NewCell creates a cell with the given rune and default style.
func NewCell(r rune) Cell {
	return Cell{Rune: r}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Style: style}
}

// ContinuationCell returns the filler for the right half of a wide rune.
func ContinuationCell(style Style) Cell {
	return Cell{Style: style}
}

// WithStyle returns a new cell with the given style.
func (c Cell) WithStyle(style Style) Cell {
	c.Style = style
	return c
}

// IsContinuation returns true if this is a continuation cell.
func (c Cell) IsContinuation() bool {
	return c.Rune == 0
}

// RuneWidth returns the number of columns r occupies: 0, 1 or 2.
// Control characters have width 0.
func RuneWidth(r rune) int {
	if r < 0x20 || r == 0x7f {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the number of columns s occupies.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}
