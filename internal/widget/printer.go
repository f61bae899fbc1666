package widget

import (
	"strconv"

	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/renderer/core"
	"github.com/dshills/glyph/internal/renderer/grid"
)

// TicksPerSecond converts frame ticks to the seconds shown by InputPrinter
// at the default refresh rate.
const TicksPerSecond = 60

// InputPrinter shows the elapsed seconds and the last event received. It
// is used to inspect what the decoder reports for a terminal.
type InputPrinter[S any] struct {
	ticks int
	last  *input.Event
}

// NewInputPrinter creates an InputPrinter.
func NewInputPrinter[S any]() *InputPrinter[S] {
	return &InputPrinter[S]{}
}

// HandleEvent records ev.
func (p *InputPrinter[S]) HandleEvent(_ S, ev input.Event) (ControlFlow, bool) {
	p.last = &ev
	return Continue, true
}

// Update counts a tick.
func (p *InputPrinter[S]) Update(S) ControlFlow {
	p.ticks++
	return Continue
}

// Render writes one line: seconds, four spaces, then the event or "--".
func (p *InputPrinter[S]) Render(buf *grid.Grid) {
	if buf.Height() == 0 {
		return
	}
	buf.SetString(0, 0, p.Line(), core.DefaultStyle())
}

// Line returns the text Render draws.
func (p *InputPrinter[S]) Line() string {
	ev := "--"
	if p.last != nil {
		ev = p.last.String()
	}
	return strconv.Itoa(p.ticks/TicksPerSecond) + "    " + ev
}
