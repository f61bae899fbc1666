//go:build unix

package backend

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Raw drives the terminal attached to stdin and stdout.
type Raw struct {
	in, out     *os.File
	inFd, outFd int
}

// NewRaw uses the process's stdin and stdout. Both must be terminals.
func NewRaw() (*Raw, error) {
	r := &Raw{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
	if !term.IsTerminal(r.inFd) || !term.IsTerminal(r.outFd) {
		return nil, ErrNotTerminal
	}
	return r, nil
}

// EnterRaw puts stdin into raw mode.
func (r *Raw) EnterRaw() (Guard, error) {
	old, err := term.MakeRaw(r.inFd)
	if err != nil {
		return nil, err
	}
	return GuardFunc(func() error {
		return term.Restore(r.inFd, old)
	}), nil
}

// Size returns the window size of stdout.
func (r *Raw) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(r.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// Write sends p to stdout.
func (r *Raw) Write(p []byte) error {
	_, err := r.out.Write(p)
	return err
}

// Input returns stdin.
func (r *Raw) Input() io.Reader {
	return r.in
}

// Close is a no-op; the standard streams stay open.
func (r *Raw) Close() error {
	return nil
}
