//go:build unix

package backend

import (
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
)

// TTY drives /dev/tty through tcell's Tty, so the program keeps working with
// stdin and stdout redirected.
type TTY struct {
	tty tcell.Tty
}

// NewTTY opens /dev/tty.
func NewTTY() (*TTY, error) {
	tty, err := tcell.NewDevTty()
	if err != nil {
		return nil, fmt.Errorf("opening tty: %w", err)
	}
	return &TTY{tty: tty}, nil
}

// EnterRaw starts the tty in raw mode. Restore stops it; the tty must not be
// written to afterwards.
func (t *TTY) EnterRaw() (Guard, error) {
	if err := t.tty.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotTerminal, err)
	}
	return GuardFunc(func() error {
		if err := t.tty.Drain(); err != nil {
			return err
		}
		return t.tty.Stop()
	}), nil
}

// Size returns the window size.
func (t *TTY) Size() (int, int, error) {
	ws, err := t.tty.WindowSize()
	if err != nil {
		return 0, 0, err
	}
	return ws.Width, ws.Height, nil
}

// Write sends p to the tty.
func (t *TTY) Write(p []byte) error {
	_, err := t.tty.Write(p)
	return err
}

// Input returns the tty itself.
func (t *TTY) Input() io.Reader {
	return t.tty
}

// Close closes the tty.
func (t *TTY) Close() error {
	return t.tty.Close()
}
