package backend

import (
	"bytes"
	"io"
	"sync"
)

// NullTerminal is an in-memory terminal for tests. Input comes from a
// reader supplied by the test; output is captured.
type NullTerminal struct {
	mu     sync.Mutex
	width  int
	height int
	input  io.Reader
	output bytes.Buffer
	writes int
	raw    bool
	closed bool

	// SizeErr, when set, is returned by Size.
	SizeErr error

	// WriteErr, when set, is returned by Write.
	WriteErr error
}

// NewNullTerminal creates a terminal of the given size reading from input.
// A nil input behaves like an empty stream.
func NewNullTerminal(width, height int, input io.Reader) *NullTerminal {
	if input == nil {
		input = bytes.NewReader(nil)
	}
	return &NullTerminal{width: width, height: height, input: input}
}

// EnterRaw marks the terminal raw until the guard restores it.
func (t *NullTerminal) EnterRaw() (Guard, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.raw = true
	return GuardFunc(func() error {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.raw = false
		return nil
	}), nil
}

// Size returns the configured size.
func (t *NullTerminal) Size() (int, int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.SizeErr != nil {
		return 0, 0, t.SizeErr
	}
	return t.width, t.height, nil
}

// Resize changes the size reported from now on.
func (t *NullTerminal) Resize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width, t.height = width, height
}

// Write captures p.
func (t *NullTerminal) Write(p []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.WriteErr != nil {
		return t.WriteErr
	}
	t.writes++
	t.output.Write(p)
	return nil
}

// Input returns the scripted input.
func (t *NullTerminal) Input() io.Reader {
	return t.input
}

// Close marks the terminal closed.
func (t *NullTerminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// Output returns everything written so far.
func (t *NullTerminal) Output() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return bytes.Clone(t.output.Bytes())
}

// Writes returns the number of Write calls.
func (t *NullTerminal) Writes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writes
}

// IsRaw reports whether the terminal is in raw mode.
func (t *NullTerminal) IsRaw() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.raw
}

// IsClosed reports whether Close was called.
func (t *NullTerminal) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
