package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/input/key"
)

// ErrUnknownAction is returned when a binding names an action the target
// table does not know.
var ErrUnknownAction = errors.New("unknown action")

// ActionNone removes a key from a mode. A user keymap binds a key to it to
// cancel a default binding.
const ActionNone = "none"

// Fallback decides events that have no exact binding.
type Fallback[A any] func(ev input.Event) (A, bool)

// Table maps key events to actions of type A.
// A Table is immutable after construction and safe for concurrent reads.
type Table[A any] struct {
	bindings map[key.Event]A
	fallback Fallback[A]
}

// NewTable creates a table from exact bindings and an optional fallback.
func NewTable[A any](bindings map[key.Event]A, fallback Fallback[A]) *Table[A] {
	t := &Table[A]{
		bindings: make(map[key.Event]A, len(bindings)),
		fallback: fallback,
	}
	for ev, a := range bindings {
		t.bindings[ev] = a
	}
	return t
}

// Lookup returns the action for ev. Key events are matched exactly first;
// anything unmatched goes to the fallback.
func (t *Table[A]) Lookup(ev input.Event) (A, bool) {
	if ev.Kind == input.EventKey {
		if a, ok := t.bindings[ev.Key]; ok {
			return a, true
		}
	}
	if t.fallback != nil {
		return t.fallback(ev)
	}
	var zero A
	return zero, false
}

// LookupKey is Lookup for a bare key event.
func (t *Table[A]) LookupKey(k key.Event) (A, bool) {
	return t.Lookup(input.KeyEvent(k))
}

// Len returns the number of exact bindings.
func (t *Table[A]) Len() int {
	return len(t.bindings)
}

// Build resolves a mode of the registry into a table. actions maps the
// action names the mode may use to their values.
func Build[A any](r *Registry, mode string, actions map[string]A, fallback Fallback[A]) (*Table[A], error) {
	bindings := make(map[key.Event]A)
	for ev, name := range r.Resolve(mode) {
		if name == ActionNone {
			continue
		}
		a, ok := actions[name]
		if !ok {
			return nil, fmt.Errorf("mode %q, key %s: %w %q", mode, ev.VimString(), ErrUnknownAction, name)
		}
		bindings[ev] = a
	}
	return &Table[A]{bindings: bindings, fallback: fallback}, nil
}
