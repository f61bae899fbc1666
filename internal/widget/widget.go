// Package widget defines the interactive widget tree driven by the frame
// loop and the generic composites used to build it.
//
// A Widget receives input events, advances once per frame in Update, and
// draws itself into a grid sized by its parent. The type parameter S is
// the application state shared by every widget of a tree.
package widget

import (
	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/renderer/grid"
)

// ControlFlow tells the frame loop whether to keep running.
type ControlFlow uint8

const (
	// Continue keeps the loop running.
	Continue ControlFlow = iota

	// Exit ends the loop after the current step.
	Exit
)

// String returns "continue" or "exit".
func (c ControlFlow) String() string {
	if c == Exit {
		return "exit"
	}
	return "continue"
}

// Widget is a node of the widget tree.
type Widget[S any] interface {
	// HandleEvent processes ev. The bool result is false when the widget
	// did not use the event, letting an ancestor try its own bindings.
	HandleEvent(state S, ev input.Event) (ControlFlow, bool)

	// Update is called once per frame before events are read.
	Update(state S) ControlFlow

	// Render draws the widget into buf, which the caller has cleared and
	// sized. A widget that wants a visible cursor sets it on buf.
	Render(buf *grid.Grid)
}

// Container is a widget with child widgets.
type Container[S any] interface {
	Children() []Widget[S]
}

// Focuser is a widget that routes events to one focused child.
type Focuser[S any] interface {
	Focused() Widget[S]
}

// Walk calls fn for w and every descendant, parents first.
func Walk[S any](w Widget[S], fn func(Widget[S])) {
	if w == nil {
		return
	}
	fn(w)
	if c, ok := w.(Container[S]); ok {
		for _, child := range c.Children() {
			Walk(child, fn)
		}
	}
}

// FocusedLeaf follows focused children from w down to the widget that
// finally receives events.
func FocusedLeaf[S any](w Widget[S]) Widget[S] {
	for {
		f, ok := w.(Focuser[S])
		if !ok {
			return w
		}
		next := f.Focused()
		if next == nil {
			return w
		}
		w = next
	}
}
