//go:build !unix

package backend

// NewTTY is unavailable on this platform.
func NewTTY() (Terminal, error) {
	return nil, ErrUnsupported
}

// NewRaw is unavailable on this platform.
func NewRaw() (Terminal, error) {
	return nil, ErrUnsupported
}
