package input

import (
	"strconv"

	"github.com/dshills/glyph/internal/input/key"
)

// EventKind identifies the payload of an Event.
type EventKind uint8

const (
	// EventKey carries a single key press.
	EventKey EventKind = iota

	// EventText carries literal text, from bracketed paste or injected
	// by a script.
	EventText
)

// Event is the unit of input dispatched through the widget tree.
type Event struct {
	Kind EventKind
	Key  key.Event
	Text string
}

// KeyEvent wraps a key press.
func KeyEvent(k key.Event) Event {
	return Event{Kind: EventKey, Key: k}
}

// TextEvent wraps literal text.
func TextEvent(s string) Event {
	return Event{Kind: EventText, Text: s}
}

// IsKey reports whether the event is a key press equal to k.
func (e Event) IsKey(k key.Event) bool {
	return e.Kind == EventKey && e.Key == k
}

// String returns a short description used by debug output.
func (e Event) String() string {
	if e.Kind == EventText {
		return "Text(" + strconv.Quote(e.Text) + ")"
	}
	return "Key(" + e.Key.String() + ")"
}
