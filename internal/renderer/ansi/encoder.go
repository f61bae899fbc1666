// Package ansi encodes grids as ANSI escape-code streams.
//
// An Encoder remembers the SGR state and the cursor it last emitted, so
// consecutive frames only carry the codes that changed. Output uses the
// eight-color palette (SGR 30-37, 40-47, 39/49 for the default), bold, dim
// and underline.
package ansi

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/glyph/internal/renderer/core"
	"github.com/dshills/glyph/internal/renderer/grid"
)

// Escape sequences.
var (
	csi             = []byte("\x1b[")
	seqClear        = []byte("\x1b[3J")
	seqHome         = []byte("\x1b[H")
	seqNewline      = []byte("\r\n")
	seqCursorShow   = []byte("\x1b[?25h")
	seqCursorHide   = []byte("\x1b[?25l")
	seqBold         = []byte("\x1b[1m")
	seqDim          = []byte("\x1b[2m")
	seqNormal       = []byte("\x1b[22m")
	seqUnderlineOn  = []byte("\x1b[4m")
	seqUnderlineOff = []byte("\x1b[24m")
	seqPasteEnable  = []byte("\x1b[?2004h")
	seqPasteDisable = []byte("\x1b[?2004l")
	seqAltScreenOn  = []byte("\x1b[?1049h")
	seqAltScreenOff = []byte("\x1b[?1049l")
)

// Encoder turns grids into escape-code streams. The zero value is ready to
// use; its style and cursor state start out unknown, so the first frame
// sets everything explicitly.
//
// The slices returned by Encode and Finish are reused by the next call.
type Encoder struct {
	buf []byte

	// style is the SGR state of the terminal; nil until first emitted.
	style *core.Style

	// pos is the cursor position last emitted; nil when unknown.
	pos *grid.Point

	// visible is the cursor visibility last emitted; nil when unknown.
	visible *bool
}

// New creates an encoder.
func New() *Encoder {
	return &Encoder{}
}

// Encode renders a full frame: a screen clear, every row top to bottom, and
// the cursor. Only style fields that differ from the previous cell are
// emitted, across frames too. Control characters are not written. A grid
// without a cursor, or with one outside the grid, leaves the cursor hidden.
func (e *Encoder) Encode(g *grid.Grid) []byte {
	e.buf = e.buf[:0]
	e.buf = append(e.buf, seqClear...)
	e.buf = append(e.buf, seqHome...)
	e.pos = &grid.Point{}

	w, h := g.Size()
	for y := 0; y < h; y++ {
		if y > 0 {
			e.buf = append(e.buf, seqNewline...)
		}
		for _, c := range g.Row(y) {
			if c.IsContinuation() {
				continue
			}
			e.writeStyle(c.Style)
			e.writeRune(c.Rune)
		}
	}
	if w > 0 && h > 0 {
		// Text output moved the terminal cursor somewhere we do not track.
		e.pos = nil
	}

	if p, ok := g.VisibleCursor(); ok {
		e.setCursorPosition(p.X, p.Y)
		e.showCursor(true)
	} else {
		e.showCursor(false)
	}
	return e.buf
}

// Finish resets the terminal style to the default so the next writer starts
// from a known state. Only the fields that differ are emitted.
func (e *Encoder) Finish() []byte {
	e.buf = e.buf[:0]
	e.writeStyle(core.DefaultStyle())
	return e.buf
}

// Style returns the style the terminal is in, if known.
func (e *Encoder) Style() (core.Style, bool) {
	if e.style == nil {
		return core.Style{}, false
	}
	return *e.style, true
}

// Reset forgets all terminal state, e.g. after another program used the
// terminal.
func (e *Encoder) Reset() {
	e.style = nil
	e.pos = nil
	e.visible = nil
}

func (e *Encoder) writeStyle(s core.Style) {
	prev := e.style
	if prev == nil || s.Foreground != prev.Foreground {
		e.buf = appendSGR(e.buf, 30+s.Foreground.Index())
	}
	if prev == nil || s.Background != prev.Background {
		e.buf = appendSGR(e.buf, 40+s.Background.Index())
	}
	if prev == nil || s.Weight != prev.Weight {
		switch s.Weight {
		case core.WeightBold:
			e.buf = append(e.buf, seqBold...)
		case core.WeightDim:
			e.buf = append(e.buf, seqDim...)
		default:
			e.buf = append(e.buf, seqNormal...)
		}
	}
	if prev == nil || s.Underline != prev.Underline {
		if s.Underline {
			e.buf = append(e.buf, seqUnderlineOn...)
		} else {
			e.buf = append(e.buf, seqUnderlineOff...)
		}
	}
	e.style = &s
}

func (e *Encoder) writeRune(r rune) {
	if unicode.IsControl(r) {
		return
	}
	e.buf = utf8.AppendRune(e.buf, r)
}

func (e *Encoder) setCursorPosition(x, y int) {
	if e.pos != nil && e.pos.X == x && e.pos.Y == y {
		return
	}
	e.buf = appendCursorPos(e.buf, x, y)
	e.pos = &grid.Point{X: x, Y: y}
}

func (e *Encoder) showCursor(visible bool) {
	if e.visible != nil && *e.visible == visible {
		return
	}
	if visible {
		e.buf = append(e.buf, seqCursorShow...)
	} else {
		e.buf = append(e.buf, seqCursorHide...)
	}
	e.visible = &visible
}

func appendSGR(b []byte, code int) []byte {
	b = append(b, csi...)
	b = strconv.AppendInt(b, int64(code), 10)
	return append(b, 'm')
}

// appendCursorPos writes the cursor position sequence for the zero-based
// cell (x, y). The wire format is one-based, row first.
func appendCursorPos(b []byte, x, y int) []byte {
	b = append(b, csi...)
	b = strconv.AppendInt(b, int64(y+1), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(x+1), 10)
	return append(b, 'H')
}
