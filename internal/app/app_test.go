package app

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/input/key"
	"github.com/dshills/glyph/internal/renderer/ansi"
	"github.com/dshills/glyph/internal/renderer/backend"
	"github.com/dshills/glyph/internal/renderer/core"
	"github.com/dshills/glyph/internal/renderer/grid"
	"github.com/dshills/glyph/internal/widget"
)

// recorder logs events and exits on demand.
type recorder struct {
	events    []input.Event
	updates   int
	renders   int
	exitAfter int // updates before Exit, 0 for never
	exitOn    key.Event
	text      string
}

func (r *recorder) HandleEvent(_ struct{}, ev input.Event) (widget.ControlFlow, bool) {
	r.events = append(r.events, ev)
	if ev.IsKey(r.exitOn) {
		return widget.Exit, true
	}
	return widget.Continue, true
}

func (r *recorder) Update(struct{}) widget.ControlFlow {
	r.updates++
	if r.exitAfter > 0 && r.updates >= r.exitAfter {
		return widget.Exit
	}
	return widget.Continue
}

func (r *recorder) Render(buf *grid.Grid) {
	r.renders++
	buf.SetString(0, 0, r.text, core.DefaultStyle())
}

func fastOptions() Options {
	return Options{RefreshRate: time.Millisecond, BracketedPaste: true}
}

// blockingInput returns a reader that never ends until the test does.
func blockingInput(t *testing.T, data string) io.Reader {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	if data != "" {
		go pw.Write([]byte(data))
	}
	return pr
}

func TestRunEndsOnEOF(t *testing.T) {
	term := backend.NewNullTerminal(10, 2, strings.NewReader("ab\r"))
	r := &recorder{}

	if err := New[struct{}](term, r, struct{}{}, fastOptions()).Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	want := []key.Event{
		key.NewRuneEvent('a', key.ModNone),
		key.NewRuneEvent('b', key.ModNone),
		key.NewSpecialEvent(key.KeyReturn, key.ModNone),
	}
	if len(r.events) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(r.events), len(want), r.events)
	}
	for i, k := range want {
		if !r.events[i].IsKey(k) {
			t.Errorf("event %d = %v, want %v", i, r.events[i], k)
		}
	}

	if term.IsRaw() {
		t.Error("terminal left in raw mode")
	}
	out := term.Output()
	if !bytes.HasPrefix(out, ansi.EnterSession(true)) {
		t.Errorf("output does not start with the session setup: %q", out)
	}
	if !bytes.HasSuffix(out, ansi.LeaveSession(true)) {
		t.Errorf("output does not end with the session teardown: %q", out)
	}
}

func TestRunExitsOnWidgetExit(t *testing.T) {
	term := backend.NewNullTerminal(10, 2, blockingInput(t, "\x11"))
	printer := widget.NewInputPrinter[struct{}]()

	done := make(chan error, 1)
	go func() {
		done <- New[struct{}](term, widget.NewRoot[struct{}](printer), struct{}{}, fastOptions()).Run()
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not exit on Ctrl+Q")
	}
	if term.IsRaw() {
		t.Error("terminal left in raw mode")
	}
}

func TestRunRendersEachFrame(t *testing.T) {
	term := backend.NewNullTerminal(6, 1, blockingInput(t, ""))
	r := &recorder{exitAfter: 3, text: "hi"}
	metrics := NewMetrics()
	opts := fastOptions()
	opts.Metrics = metrics

	if err := New[struct{}](term, r, struct{}{}, opts).Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if r.renders != 2 {
		t.Errorf("renders = %d, want 2", r.renders)
	}
	// Session setup, two frames, teardown.
	if got := term.Writes(); got != 4 {
		t.Errorf("Writes() = %d, want 4", got)
	}
	if !bytes.Contains(term.Output(), []byte("hi    ")) {
		t.Errorf("frame text missing from %q", term.Output())
	}
	if got := metrics.Snapshot().FrameCount; got != 2 {
		t.Errorf("FrameCount = %d, want 2", got)
	}
}

func TestRunFlushesLoneEscape(t *testing.T) {
	term := backend.NewNullTerminal(4, 1, blockingInput(t, "\x1b"))
	escape := key.NewSpecialEvent(key.KeyEscape, key.ModNone)
	r := &recorder{exitOn: escape}

	done := make(chan error, 1)
	go func() { done <- New[struct{}](term, r, struct{}{}, fastOptions()).Run() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("lone escape never delivered")
	}
	if len(r.events) != 1 || !r.events[0].IsKey(escape) {
		t.Errorf("events = %v, want [Escape]", r.events)
	}
}

func TestRunFlushesEscapeAtEOF(t *testing.T) {
	tests := []struct {
		name string
		src  io.Reader
	}{
		{"eof after data", strings.NewReader("a\x1b")},
		{"eof with data", iotest.DataErrReader(strings.NewReader("a\x1b"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := backend.NewNullTerminal(4, 1, tt.src)
			r := &recorder{}

			if err := New[struct{}](term, r, struct{}{}, fastOptions()).Run(); err != nil {
				t.Fatalf("Run() = %v", err)
			}
			want := []key.Event{
				key.NewRuneEvent('a', key.ModNone),
				key.NewSpecialEvent(key.KeyEscape, key.ModNone),
			}
			if len(r.events) != len(want) {
				t.Fatalf("events = %v, want [a Escape]", r.events)
			}
			for i, k := range want {
				if !r.events[i].IsKey(k) {
					t.Errorf("event %d = %v, want %v", i, r.events[i], k)
				}
			}
		})
	}
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestRunErrors(t *testing.T) {
	readErr := errors.New("device gone")
	sizeErr := errors.New("no size")
	writeErr := errors.New("broken pipe")

	tests := []struct {
		name  string
		setup func(t *testing.T) *backend.NullTerminal
		want  error
		stage Stage
	}{
		{
			name: "reader",
			setup: func(t *testing.T) *backend.NullTerminal {
				return backend.NewNullTerminal(4, 1, failingReader{readErr})
			},
			want:  readErr,
			stage: StageInput,
		},
		{
			name: "size",
			setup: func(t *testing.T) *backend.NullTerminal {
				term := backend.NewNullTerminal(4, 1, blockingInput(t, ""))
				term.SizeErr = sizeErr
				return term
			},
			want:  sizeErr,
			stage: StageRender,
		},
		{
			name: "write",
			setup: func(t *testing.T) *backend.NullTerminal {
				term := backend.NewNullTerminal(4, 1, blockingInput(t, ""))
				term.WriteErr = writeErr
				return term
			},
			want:  writeErr,
			stage: StageSetup,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := tt.setup(t)
			err := New[struct{}](term, &recorder{}, struct{}{}, fastOptions()).Run()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Run() = %v, want %v", err, tt.want)
			}
			var fe *FrameError
			if !errors.As(err, &fe) {
				t.Fatalf("Run() error %T is not a FrameError", err)
			}
			if fe.Stage != tt.stage {
				t.Errorf("Stage = %q, want %q", fe.Stage, tt.stage)
			}
			if fe.InLoop() != (tt.stage != StageSetup) {
				t.Errorf("InLoop() = %v for stage %q", fe.InLoop(), fe.Stage)
			}
			if term.IsRaw() {
				t.Error("terminal left in raw mode")
			}
		})
	}
}

func TestShutdown(t *testing.T) {
	term := backend.NewNullTerminal(4, 1, blockingInput(t, ""))
	a := New[struct{}](term, &recorder{}, struct{}{}, fastOptions())
	a.Shutdown()
	a.Shutdown()

	if err := a.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if a.IsRunning() {
		t.Error("IsRunning() after Run returned")
	}
}

func TestOptionsFromDefaults(t *testing.T) {
	opts := DefaultOptions()
	if opts.RefreshRate != 17*time.Millisecond {
		t.Errorf("RefreshRate = %s, want 17ms", opts.RefreshRate)
	}
	if !opts.BracketedPaste {
		t.Error("BracketedPaste disabled by default")
	}
}
