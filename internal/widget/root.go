package widget

import (
	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/input/key"
	"github.com/dshills/glyph/internal/renderer/grid"
)

// ExitKey is the key that always ends the program.
var ExitKey = key.Ctrl('q')

// Root wraps a widget and exits on ExitKey before the child sees it.
type Root[S any] struct {
	child Widget[S]
}

// NewRoot wraps child.
func NewRoot[S any](child Widget[S]) *Root[S] {
	return &Root[S]{child: child}
}

// HandleEvent implements Widget.
func (r *Root[S]) HandleEvent(state S, ev input.Event) (ControlFlow, bool) {
	if ev.IsKey(ExitKey) {
		return Exit, true
	}
	return r.child.HandleEvent(state, ev)
}

// Update implements Widget.
func (r *Root[S]) Update(state S) ControlFlow {
	return r.child.Update(state)
}

// Render implements Widget.
func (r *Root[S]) Render(buf *grid.Grid) {
	r.child.Render(buf)
}

// Children implements Container.
func (r *Root[S]) Children() []Widget[S] {
	return []Widget[S]{r.child}
}

// Focused implements Focuser.
func (r *Root[S]) Focused() Widget[S] {
	return r.child
}
