// Package decoder converts raw terminal input into events.
//
// Two entry points exist. Decode interprets exactly one read chunk and yields
// at most one key event; a sequence split across two reads does not decode.
// Decoder carries unfinished sequences from one chunk to the next, yields
// every event a chunk contains, and understands bracketed paste. The frame
// loop uses Decoder.
package decoder

import (
	"bytes"

	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/input/key"
)

// maxPending bounds the bytes held for an unfinished sequence. Only an open
// bracketed paste can grow this large.
const maxPending = 1 << 20

// Decode interprets a single chunk as one key event. It reports false when
// the chunk is empty, malformed, holds more than one key, or is pasted text.
func Decode(chunk []byte) (key.Event, bool) {
	if len(chunk) == 0 {
		return key.Event{}, false
	}

	ev, n, st := parseOne(chunk)
	switch st {
	case statusIncomplete:
		var ok bool
		if ev, ok = resolvePartial(chunk); !ok {
			return key.Event{}, false
		}
	case statusInvalid:
		return key.Event{}, false
	default:
		if n != len(chunk) {
			return key.Event{}, false
		}
	}

	if ev.Kind != input.EventKey {
		return key.Event{}, false
	}
	return ev.Key, true
}

// Decoder is a stateful input decoder. The zero value is ready to use.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	pending []byte
	// scanned is how much of an open paste held in pending has been
	// searched for the terminator without finding it. Zero when no paste
	// is open.
	scanned int
}

// New creates a decoder.
func New() *Decoder {
	return &Decoder{}
}

// Feed appends a chunk and returns every complete event now available, in
// input order. Bytes of an unfinished sequence are held for the next call.
// Malformed sequences are skipped without affecting the bytes after them.
func (d *Decoder) Feed(chunk []byte) []input.Event {
	d.pending = append(d.pending, chunk...)

	if d.scanned > 0 {
		// Back up so a terminator split across chunks is still seen.
		from := max(len(pasteStart), d.scanned-(len(pasteEnd)-1))
		if bytes.Index(d.pending[from:], pasteEnd) < 0 {
			d.scanned = len(d.pending)
			return d.overflow(nil)
		}
		d.scanned = 0
	}

	var events []input.Event
	i := 0
	for i < len(d.pending) {
		ev, n, st := parseOne(d.pending[i:])
		if st == statusIncomplete {
			break
		}
		if st == statusOK {
			events = append(events, ev)
		}
		i += n
	}

	rest := copy(d.pending, d.pending[i:])
	d.pending = d.pending[:rest]
	if bytes.HasPrefix(d.pending, pasteStart) {
		d.scanned = len(d.pending)
	}
	return d.overflow(events)
}

// overflow flushes held bytes once they exceed maxPending.
func (d *Decoder) overflow(events []input.Event) []input.Event {
	if len(d.pending) > maxPending {
		events = append(events, d.Flush()...)
	}
	return events
}

// Pending reports whether an unfinished sequence is being held.
func (d *Decoder) Pending() bool {
	return len(d.pending) > 0
}

// Flush resolves held bytes on the assumption that no more input is coming
// for them: a lone ESC becomes the Escape key, "ESC [" becomes Alt+'[', an
// open paste yields the text received so far. Anything else is dropped.
func (d *Decoder) Flush() []input.Event {
	if len(d.pending) == 0 {
		return nil
	}
	defer func() {
		d.pending = d.pending[:0]
		d.scanned = 0
	}()

	if ev, ok := resolvePartial(d.pending); ok {
		return []input.Event{ev}
	}
	return nil
}
