package grid

import (
	"math/rand"
	"testing"

	"github.com/dshills/glyph/internal/renderer/core"
)

func checkInvariant(t *testing.T, g *Grid) {
	t.Helper()
	if g.Len() != g.Width()*g.Height() {
		t.Fatalf("len(cells) = %d, want %d*%d", g.Len(), g.Width(), g.Height())
	}
	w, h := g.Size()
	for y := 0; y < h; y++ {
		if _, ok := g.Get(w, y); ok {
			t.Fatalf("Get(%d, %d) reported a cell past the right edge", w, y)
		}
	}
	for x := 0; x < w; x++ {
		if _, ok := g.Get(x, h); ok {
			t.Fatalf("Get(%d, %d) reported a cell past the bottom edge", x, h)
		}
	}
}

func TestNew(t *testing.T) {
	g := New(4, 3)
	checkInvariant(t, g)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if c := g.At(x, y); c != core.EmptyCell() {
				t.Fatalf("At(%d, %d) = %+v, want empty", x, y, c)
			}
		}
	}
	if _, ok := g.Cursor(); ok {
		t.Error("new grid should have no cursor")
	}
}

func TestResizeAndClear(t *testing.T) {
	g := New(3, 2)
	g.Set(1, 1, core.NewCell('x'))
	g.SetCursor(1, 1)

	// Same size clears in place.
	before := &g.cells[0]
	g.ResizeAndClear(3, 2)
	if &g.cells[0] != before {
		t.Error("same-size resize should not reallocate")
	}
	if g.At(1, 1) != core.EmptyCell() {
		t.Error("resize should clear cells")
	}
	if _, ok := g.Cursor(); ok {
		t.Error("resize should clear the cursor")
	}

	g.ResizeAndClear(5, 1)
	checkInvariant(t, g)
	if g.Width() != 5 || g.Height() != 1 {
		t.Errorf("size = %dx%d, want 5x1", g.Width(), g.Height())
	}

	g.ResizeAndClear(-1, 4)
	checkInvariant(t, g)
	if g.Len() != 0 {
		t.Errorf("negative width should give an empty grid, got %d cells", g.Len())
	}
}

func TestGetOutOfRange(t *testing.T) {
	g := New(2, 2)
	for _, p := range []Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 5}} {
		if _, ok := g.Get(p.X, p.Y); ok {
			t.Errorf("Get(%d, %d) = ok, want false", p.X, p.Y)
		}
	}
	if c, ok := g.Get(1, 1); !ok || c != core.EmptyCell() {
		t.Errorf("Get(1, 1) = %+v, %v", c, ok)
	}
}

func TestAtPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(g *Grid)
	}{
		{"At past width", func(g *Grid) { g.At(2, 0) }},
		{"At negative", func(g *Grid) { g.At(0, -1) }},
		{"Set past height", func(g *Grid) { g.Set(0, 2, core.NewCell('x')) }},
		{"Row past height", func(g *Grid) { g.Row(2) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(New(2, 2))
		})
	}
}

func TestBlit(t *testing.T) {
	src := New(3, 2)
	src.SetString(0, 0, "abc", core.DefaultStyle())
	src.SetString(0, 1, "def", core.DefaultStyle())
	src.SetCursor(2, 1)

	tests := []struct {
		name       string
		x, y       int
		setCursor  bool
		want       string
		wantCursor *Point
	}{
		{"origin", 0, 0, true, "abc \ndef \n    ", &Point{2, 1}},
		{"offset", 1, 1, true, "    \n abc\n def", &Point{3, 2}},
		{"clipped right and bottom", 2, 2, false, "    \n    \n  ab", nil},
		{"clipped left and top", -1, -1, true, "ef  \n    \n    ", &Point{1, 0}},
		{"no cursor copy", 0, 0, false, "abc \ndef \n    ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := New(4, 3)
			dst.Blit(tt.x, tt.y, src, tt.setCursor)
			checkInvariant(t, dst)

			if got := dst.String(); got != tt.want {
				t.Errorf("grid =\n%q\nwant\n%q", got, tt.want)
			}
			p, ok := dst.Cursor()
			if tt.wantCursor == nil {
				if ok {
					t.Errorf("cursor = %v, want none", p)
				}
				return
			}
			if !ok || p != *tt.wantCursor {
				t.Errorf("cursor = %v (%v), want %v", p, ok, *tt.wantCursor)
			}
		})
	}
}

func TestBlitKeepsCursorWithoutSourceCursor(t *testing.T) {
	dst := New(2, 2)
	dst.SetCursor(1, 1)
	dst.Blit(0, 0, New(1, 1), true)
	if p, ok := dst.Cursor(); !ok || p != (Point{1, 1}) {
		t.Errorf("cursor = %v (%v), want unchanged", p, ok)
	}
}

func TestSetString(t *testing.T) {
	style := core.NewStyle(core.ColorRed)

	tests := []struct {
		name    string
		x       int
		s       string
		want    string
		wantEnd int
	}{
		{"ascii", 0, "hi", "hi    ", 2},
		{"offset", 3, "hi", "   hi ", 5},
		{"truncated", 4, "hello", "    he", 6},
		{"wide", 0, "中a", "中a   ", 3},
		{"wide does not fit", 5, "中", "      ", 5},
		{"zero width skipped", 0, "e\u0301x", "ex    ", 2},
		{"negative start", -1, "abc", "bc    ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(6, 1)
			end := g.SetString(tt.x, 0, tt.s, style)
			if end != tt.wantEnd {
				t.Errorf("end = %d, want %d", end, tt.wantEnd)
			}
			if got := g.String(); got != tt.want {
				t.Errorf("grid = %q, want %q", got, tt.want)
			}
		})
	}

	g := New(4, 1)
	g.SetString(0, 0, "中", style)
	if c := g.At(1, 0); !c.IsContinuation() || c.Style != style {
		t.Errorf("cell after wide rune = %+v, want styled continuation", c)
	}
	if end := g.SetString(0, 3, "x", style); end != 0 {
		t.Errorf("out-of-range row end = %d, want 0", end)
	}
}

func TestVisibleCursor(t *testing.T) {
	g := New(3, 3)
	g.SetCursor(3, 0)
	if _, ok := g.VisibleCursor(); ok {
		t.Error("cursor past the right edge should not be visible")
	}
	if _, ok := g.Cursor(); !ok {
		t.Error("Cursor should still report the out-of-range position")
	}
	g.SetCursor(2, 2)
	if p, ok := g.VisibleCursor(); !ok || p != (Point{2, 2}) {
		t.Errorf("VisibleCursor = %v, %v", p, ok)
	}
	g.HideCursor()
	if _, ok := g.Cursor(); ok {
		t.Error("HideCursor should remove the cursor")
	}
}

func TestFillRow(t *testing.T) {
	g := New(4, 2)
	g.FillRow(1, 1, core.NewCell('-'))
	if got := g.String(); got != "    \n ---" {
		t.Errorf("grid = %q", got)
	}
	g.FillRow(0, 5, core.NewCell('x'))
}

func TestInvariantUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := New(1, 1)
	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			g.ResizeAndClear(rng.Intn(20), rng.Intn(20))
		case 1:
			src := New(rng.Intn(10), rng.Intn(10))
			src.SetCursor(rng.Intn(12)-1, rng.Intn(12)-1)
			g.Blit(rng.Intn(30)-10, rng.Intn(30)-10, src, rng.Intn(2) == 0)
		case 2:
			g.SetString(rng.Intn(30)-10, rng.Intn(20), "a中b", core.DefaultStyle())
		}
		checkInvariant(t, g)
	}
}
