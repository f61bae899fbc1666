// Package grid provides the character grid widgets render into.
//
// A Grid is a flat row-major slice of cells with an optional cursor. Widgets
// render into grids of their own size; composites blit child grids into
// their own at an offset. The frame loop reuses one grid across frames.
package grid

import (
	"fmt"

	"github.com/dshills/glyph/internal/renderer/core"
)

// Point is a cell coordinate, x to the right and y down, zero-based.
type Point struct {
	X, Y int
}

// Grid is a width by height array of cells.
//
// len(cells) == width*height always holds. The cursor may lie outside the
// grid for a while; encoders treat an out-of-range cursor as no cursor.
type Grid struct {
	width, height int
	cells         []core.Cell
	cursor        *Point
}

// New creates a grid filled with empty cells and no cursor.
func New(width, height int) *Grid {
	g := &Grid{}
	g.ResizeAndClear(width, height)
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) { return g.width, g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// ResizeAndClear sets the dimensions and fills the grid with empty cells.
// The cell slice is reallocated only when the dimensions change. The cursor
// is cleared.
func (g *Grid) ResizeAndClear(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width != g.width || height != g.height || g.cells == nil {
		g.width, g.height = width, height
		g.cells = make([]core.Cell, width*height)
	}
	g.Clear()
}

// Clear fills the grid with empty cells and removes the cursor.
func (g *Grid) Clear() {
	g.Fill(core.EmptyCell())
	g.cursor = nil
}

// Fill sets every cell to c.
func (g *Grid) Fill(c core.Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Get returns the cell at (x, y), or false if it is out of range.
func (g *Grid) Get(x, y int) (core.Cell, bool) {
	if !g.InBounds(x, y) {
		return core.Cell{}, false
	}
	return g.cells[y*g.width+x], true
}

// At returns the cell at (x, y). It panics if (x, y) is out of range.
func (g *Grid) At(x, y int) core.Cell {
	return g.cells[g.index(x, y)]
}

// Set stores c at (x, y). It panics if (x, y) is out of range.
func (g *Grid) Set(x, y int, c core.Cell) {
	g.cells[g.index(x, y)] = c
}

func (g *Grid) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: cell (%d, %d) out of range %dx%d", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Row returns the cells of row y. The slice aliases the grid. It panics if y
// is out of range.
func (g *Grid) Row(y int) []core.Cell {
	if y < 0 || y >= g.height {
		panic(fmt.Sprintf("grid: row %d out of range %d", y, g.height))
	}
	return g.cells[y*g.width : (y+1)*g.width]
}

// Cursor returns the cursor position, if any.
func (g *Grid) Cursor() (Point, bool) {
	if g.cursor == nil {
		return Point{}, false
	}
	return *g.cursor, true
}

// SetCursor places the cursor at (x, y).
func (g *Grid) SetCursor(x, y int) {
	g.cursor = &Point{X: x, Y: y}
}

// HideCursor removes the cursor.
func (g *Grid) HideCursor() {
	g.cursor = nil
}

// VisibleCursor returns the cursor if it is set and inside the grid.
func (g *Grid) VisibleCursor() (Point, bool) {
	p, ok := g.Cursor()
	if !ok || !g.InBounds(p.X, p.Y) {
		return Point{}, false
	}
	return p, true
}

// Blit copies src into g with its top-left corner at (x, y). Cells that fall
// outside g are clipped. When setCursor is true and src has a cursor, g's
// cursor becomes src's cursor translated by (x, y).
func (g *Grid) Blit(x, y int, src *Grid, setCursor bool) {
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 {
			continue
		}
		if dy >= g.height {
			break
		}
		for sx := 0; sx < src.width; sx++ {
			dx := x + sx
			if dx < 0 {
				continue
			}
			if dx >= g.width {
				break
			}
			g.cells[dy*g.width+dx] = src.cells[sy*src.width+sx]
		}
	}

	if setCursor {
		if p, ok := src.Cursor(); ok {
			g.SetCursor(p.X+x, p.Y+y)
		}
	}
}

// SetString writes s starting at (x, y) with the given style and returns
// the column after the last cell written. Wide runes take two cells, the
// second a continuation cell. Zero-width runes are skipped. Writing stops
// at the right edge; a wide rune that does not fit is dropped. Out-of-range
// rows write nothing.
func (g *Grid) SetString(x, y int, s string, style core.Style) int {
	if y < 0 || y >= g.height {
		return x
	}
	for _, r := range s {
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > g.width {
			break
		}
		if x >= 0 {
			g.cells[y*g.width+x] = core.NewStyledCell(r, style)
		}
		if w == 2 && x+1 >= 0 {
			g.cells[y*g.width+x+1] = core.ContinuationCell(style)
		}
		x += w
	}
	return x
}

// FillRow sets every cell of row y from column x onward to c.
func (g *Grid) FillRow(x, y int, c core.Cell) {
	if y < 0 || y >= g.height {
		return
	}
	for ; x < g.width; x++ {
		if x >= 0 {
			g.cells[y*g.width+x] = c
		}
	}
}

// String returns the grid text, rows separated by newlines. Continuation
// cells are omitted. Intended for tests and debugging.
func (g *Grid) String() string {
	b := make([]rune, 0, len(g.cells)+g.height)
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b = append(b, '\n')
		}
		for _, c := range g.Row(y) {
			if !c.IsContinuation() {
				b = append(b, c.Rune)
			}
		}
	}
	return string(b)
}
