// Package backend provides the terminal drivers the frame loop talks to.
//
// A Terminal hands out a raw-mode guard, reports its size, accepts encoded
// frames and exposes its input stream. Two drivers exist: "tty" opens
// /dev/tty through tcell, "raw" uses the process's stdin and stdout through
// x/term. NullTerminal is an in-memory driver for tests.
package backend

import (
	"errors"
	"fmt"
	"io"
)

// Driver names.
const (
	DriverTTY = "tty"
	DriverRaw = "raw"
)

var (
	// ErrNotTerminal is returned when the driver's file is not a terminal.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrUnknownDriver is returned by New for unknown driver names.
	ErrUnknownDriver = errors.New("unknown terminal driver")

	// ErrUnsupported is returned where no terminal driver is available.
	ErrUnsupported = errors.New("terminal drivers are not supported on this platform")
)

// Guard undoes a raw-mode switch.
type Guard interface {
	// Restore puts the terminal back into the mode it had before EnterRaw.
	Restore() error
}

// Terminal is the driver the frame loop renders to.
type Terminal interface {
	// EnterRaw switches the terminal to raw mode. Input must not be read
	// before EnterRaw returns.
	EnterRaw() (Guard, error)

	// Size returns the terminal dimensions in cells.
	Size() (cols, rows int, err error)

	// Write sends bytes to the terminal in a single call.
	Write(p []byte) error

	// Input returns the stream of bytes typed into the terminal.
	Input() io.Reader

	// Close releases the driver.
	Close() error
}

// New opens the named driver.
func New(driver string) (Terminal, error) {
	var (
		t   Terminal
		err error
	)
	switch driver {
	case DriverTTY, "":
		t, err = NewTTY()
	case DriverRaw:
		t, err = NewRaw()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GuardFunc adapts a function to the Guard interface.
type GuardFunc func() error

// Restore calls f.
func (f GuardFunc) Restore() error { return f() }
