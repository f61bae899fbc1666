package cursor

import (
	"strings"
	"testing"
	"testing/quick"

	"github.com/dshills/glyph/internal/engine/text"
)

func newNav(s string, pos int) *Navigator {
	n := New(text.NewBuffer(s))
	n.SetPos(pos)
	return n
}

func TestPositionToXY(t *testing.T) {
	n := newNav("ab\ncd\n", 0)
	tests := []struct {
		pos, x, y int
	}{
		{0, 0, 0},
		{2, 2, 0},
		{3, 0, 1},
		{5, 2, 1},
		{6, 0, 2},
	}
	for _, tt := range tests {
		x, y := n.PositionToXY(tt.pos)
		if x != tt.x || y != tt.y {
			t.Errorf("PositionToXY(%d) = (%d, %d), want (%d, %d)", tt.pos, x, y, tt.x, tt.y)
		}
	}
}

func TestMoveHorizontal(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		delta     int
		wantPos   int
		wantGhost int
	}{
		{"right", 1, 1, 2, 2},
		{"left", 3, -2, 1, 1},
		{"underflow clamps", 1, -5, 0, 0},
		{"overflow clamps", 4, 10, 6, 6},
		{"across newline", 2, 1, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newNav("ab\ncde", tt.start)
			n.MoveHorizontal(tt.delta)
			if n.Pos() != tt.wantPos || n.Ghost() != tt.wantGhost {
				t.Errorf("pos, ghost = %d, %d, want %d, %d", n.Pos(), n.Ghost(), tt.wantPos, tt.wantGhost)
			}
		})
	}
}

func TestMoveHorizontalStaysInText(t *testing.T) {
	f := func(s string, start, delta int16) bool {
		n := newNav(s, int(start))
		n.MoveHorizontal(int(delta))
		return n.Pos() >= 0 && n.Pos() <= n.Store().Len() && n.Ghost() == n.Pos()
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestMoveVertical(t *testing.T) {
	const doc = "abcdef\nab\nabcdef"
	tests := []struct {
		name      string
		start     int
		moves     []int
		wantX     int
		wantY     int
		wantGhost int
	}{
		{"down to shorter line", 4, []int{1}, 2, 1, 4},
		{"through short line", 4, []int{1, 1}, 4, 2, 4},
		{"down and back", 4, []int{1, -1}, 4, 0, 4},
		{"up from first line", 4, []int{-1}, 0, 0, 0},
		{"down from last line", 12, []int{1}, 6, 2, 16},
		{"multiple lines", 1, []int{2}, 1, 2, 1},
		{"end of line lands before newline", 6, []int{1}, 2, 1, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newNav(doc, tt.start)
			for _, d := range tt.moves {
				n.MoveVertical(d)
			}
			x, y := n.XY()
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("XY() = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
			if n.Ghost() != tt.wantGhost {
				t.Errorf("Ghost() = %d, want %d", n.Ghost(), tt.wantGhost)
			}
		})
	}
}

func TestDownThenUpReturns(t *testing.T) {
	f := func(lines []string, l, c uint8) bool {
		for i := range lines {
			lines[i] = strings.ReplaceAll(lines[i], "\n", "")
		}
		if len(lines) < 2 {
			return true
		}
		n := New(text.NewBuffer(strings.Join(lines, "\n")))
		line := int(l) % (len(lines) - 1)
		col := int(c) % (n.navLen(line) + 1)
		n.SetPos(n.Store().LineStart(line) + col)

		n.MoveVertical(1)
		n.MoveVertical(-1)
		x, y := n.XY()
		return x == col && y == line
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestHomeEnd(t *testing.T) {
	n := newNav("abc\ndef", 5)
	n.Home()
	if n.Pos() != 4 || n.Ghost() != 4 {
		t.Errorf("Home: pos, ghost = %d, %d, want 4, 4", n.Pos(), n.Ghost())
	}
	n.End()
	if n.Pos() != 7 || n.Ghost() != 7 {
		t.Errorf("End on last line: pos, ghost = %d, %d, want 7, 7", n.Pos(), n.Ghost())
	}

	n.SetPos(1)
	n.End()
	if n.Pos() != 3 {
		t.Errorf("End on first line: pos = %d, want 3", n.Pos())
	}
}

func TestEdits(t *testing.T) {
	n := newNav("", 0)
	for _, r := range "ab\nc" {
		if err := n.InsertRune(r); err != nil {
			t.Fatalf("InsertRune(%q) error = %v", r, err)
		}
	}
	if got := n.Store().String(); got != "ab\nc" {
		t.Fatalf("text = %q, want %q", got, "ab\nc")
	}
	if n.Pos() != 4 {
		t.Errorf("Pos() = %d, want 4", n.Pos())
	}
	if x, y := n.XY(); x != 1 || y != 1 {
		t.Errorf("XY() = (%d, %d), want (1, 1)", x, y)
	}

	if err := n.InsertString("中文"); err != nil {
		t.Fatal(err)
	}
	if n.Pos() != 6 || n.Store().String() != "ab\nc中文" {
		t.Errorf("after InsertString: pos %d text %q", n.Pos(), n.Store().String())
	}

	if err := n.Backspace(); err != nil {
		t.Fatal(err)
	}
	if n.Pos() != 5 || n.Store().String() != "ab\nc中" {
		t.Errorf("after Backspace: pos %d text %q", n.Pos(), n.Store().String())
	}

	n.SetPos(0)
	if err := n.Delete(); err != nil {
		t.Fatal(err)
	}
	if n.Pos() != 0 || n.Store().String() != "b\nc中" {
		t.Errorf("after Delete: pos %d text %q", n.Pos(), n.Store().String())
	}
}

func TestDeleteResetsGhost(t *testing.T) {
	n := newNav("abcdef\nab\nabcdef", 15)
	n.MoveVertical(-1)
	if x, y := n.XY(); x != 2 || y != 1 {
		t.Fatalf("after Up: XY() = (%d, %d), want (2, 1)", x, y)
	}

	// Joins the last two lines; the cursor stays at column 2 of line 1.
	if err := n.Delete(); err != nil {
		t.Fatal(err)
	}
	if got := n.Store().String(); got != "abcdef\nababcdef" {
		t.Fatalf("text = %q, want %q", got, "abcdef\nababcdef")
	}
	if n.Ghost() != n.Pos() {
		t.Errorf("Ghost() = %d, want %d", n.Ghost(), n.Pos())
	}

	n.MoveVertical(-1)
	if x, y := n.XY(); x != 2 || y != 0 {
		t.Errorf("after Delete and Up: XY() = (%d, %d), want (2, 0)", x, y)
	}
}

func TestEditsAtBoundaries(t *testing.T) {
	n := newNav("ab", 0)
	if err := n.Backspace(); err != nil {
		t.Errorf("Backspace at start error = %v", err)
	}
	if n.Pos() != 0 || n.Store().String() != "ab" {
		t.Errorf("Backspace at start changed state: pos %d text %q", n.Pos(), n.Store().String())
	}

	n.SetPos(2)
	if err := n.Delete(); err != nil {
		t.Errorf("Delete at end error = %v", err)
	}
	if n.Pos() != 2 || n.Store().String() != "ab" {
		t.Errorf("Delete at end changed state: pos %d text %q", n.Pos(), n.Store().String())
	}
}
