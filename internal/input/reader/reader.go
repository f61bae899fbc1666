// Package reader moves terminal input off the main goroutine.
//
// A Reader owns one goroutine that performs blocking reads and forwards each
// chunk over a bounded channel. The frame loop drains the channel with a
// deadline so that it keeps its frame rate while no input arrives.
package reader

import (
	"errors"
	"io"
	"syscall"
	"time"
)

const (
	// ChunkSize is the largest number of bytes delivered in one chunk.
	ChunkSize = 32

	// QueueSize is the number of chunks buffered before the read goroutine
	// blocks.
	QueueSize = 8
)

// ErrClosed is returned by ReceiveUntil after the read loop has ended.
var ErrClosed = errors.New("reader: closed")

type message struct {
	data []byte
	err  error
}

// Reader reads from a source on a background goroutine.
type Reader struct {
	ch   chan message
	done bool
}

// New starts reading src. The goroutine runs until src returns an error or
// an empty read. io.EOF and an empty read both end the stream with a
// zero-length chunk followed by io.EOF.
// There is no way to stop a blocked read, so at exit the goroutine is
// abandoned.
func New(src io.Reader) *Reader {
	r := &Reader{ch: make(chan message, QueueSize)}
	go r.loop(src)
	return r
}

func (r *Reader) loop(src io.Reader) {
	defer close(r.ch)

	buf := make([]byte, ChunkSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			r.ch <- message{data: chunk}
		}
		if errors.Is(err, syscall.EINTR) {
			continue
		}
		if (n == 0 && err == nil) || errors.Is(err, io.EOF) {
			// A zero-length chunk tells the receiver the stream ended.
			r.ch <- message{data: []byte{}}
			r.ch <- message{err: io.EOF}
			return
		}
		if err != nil {
			r.ch <- message{err: err}
			return
		}
	}
}

// ReceiveUntil waits for the next chunk until deadline. It returns ok=false
// when the deadline passes first. A chunk of length zero marks the end of
// the stream. The first read error is returned once; afterwards ErrClosed
// is returned.
//
// ReceiveUntil panics if the read loop ended without reporting an error.
func (r *Reader) ReceiveUntil(deadline time.Time) ([]byte, bool, error) {
	if r.done {
		return nil, false, ErrClosed
	}

	// Prefer data that is already queued over an expired deadline.
	select {
	case msg, open := <-r.ch:
		return r.receive(msg, open)
	default:
	}

	wait := time.Until(deadline)
	if wait <= 0 {
		return nil, false, nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case msg, open := <-r.ch:
		return r.receive(msg, open)
	case <-timer.C:
		return nil, false, nil
	}
}

func (r *Reader) receive(msg message, open bool) ([]byte, bool, error) {
	if !open {
		panic("reader: input channel closed without an error")
	}
	if msg.err != nil {
		r.done = true
		return nil, false, msg.err
	}
	return msg.data, true, nil
}
