// Package app runs a widget tree against a terminal. It owns the frame
// loop, the logger and the runtime metrics.
package app

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/glyph/internal/config"
	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/input/decoder"
	"github.com/dshills/glyph/internal/input/reader"
	"github.com/dshills/glyph/internal/renderer/ansi"
	"github.com/dshills/glyph/internal/renderer/backend"
	"github.com/dshills/glyph/internal/renderer/grid"
	"github.com/dshills/glyph/internal/widget"
)

// Application drives one widget tree. S is the state shared by the tree.
type Application[S any] struct {
	term  backend.Terminal
	root  widget.Widget[S]
	state S
	opts  Options

	decoder *decoder.Decoder
	encoder *ansi.Encoder
	buf     *grid.Grid
	input   *reader.Reader
	frameNo uint64

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

// Options configures the application.
type Options struct {
	// RefreshRate is the frame period.
	RefreshRate time.Duration

	// BracketedPaste asks the terminal to mark pasted text.
	BracketedPaste bool

	// Logger receives lifecycle and frame messages. Nil discards them.
	Logger *Logger

	// Metrics collects frame timings. Nil keeps a private tracker.
	Metrics *Metrics
}

// DefaultOptions returns the options of the default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig takes the loop settings from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		RefreshRate:    cfg.App.RefreshRate.Std(),
		BracketedPaste: cfg.Terminal.BracketedPaste,
	}
}

// New creates an application rendering root to term.
func New[S any](term backend.Terminal, root widget.Widget[S], state S, opts Options) *Application[S] {
	if opts.RefreshRate <= 0 {
		opts.RefreshRate = config.DefaultRefreshRate
	}
	if opts.Logger == nil {
		opts.Logger = NullLogger
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	opts.Metrics.SetFrameBudget(opts.RefreshRate)
	return &Application[S]{
		term:    term,
		root:    root,
		state:   state,
		opts:    opts,
		decoder: decoder.New(),
		encoder: ansi.New(),
		buf:     grid.New(0, 0),
		done:    make(chan struct{}),
	}
}

// Metrics returns the frame metrics.
func (app *Application[S]) Metrics() *Metrics {
	return app.opts.Metrics
}

// Run puts the terminal into raw mode and runs frames until the tree
// exits, the input ends or Shutdown is called. The terminal is restored
// before Run returns. Only reader, terminal and render failures are
// returned.
func (app *Application[S]) Run() (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	log := app.opts.Logger
	guard, err := app.term.EnterRaw()
	if err != nil {
		return newFrameError(StageSetup, "enter raw mode", 0, err)
	}
	defer func() {
		if rerr := guard.Restore(); rerr != nil && err == nil {
			err = newFrameError(StageTeardown, "restore", 0, rerr)
		}
	}()

	if err := app.term.Write(ansi.EnterSession(app.opts.BracketedPaste)); err != nil {
		return newFrameError(StageSetup, "enter session", 0, err)
	}
	defer func() {
		out := append(append([]byte(nil), app.encoder.Finish()...), ansi.LeaveSession(app.opts.BracketedPaste)...)
		if werr := app.term.Write(out); werr != nil && err == nil {
			err = newFrameError(StageTeardown, "leave session", 0, werr)
		}
	}()

	// Input is read only once the terminal is raw.
	app.input = reader.New(app.term.Input())
	log.Info("frame loop started, refresh rate %s", app.opts.RefreshRate)
	defer func() { log.Info("frame loop stopped: %s", app.opts.Metrics.Snapshot()) }()

	for {
		select {
		case <-app.done:
			log.Info("shutdown requested")
			return nil
		default:
		}

		switch err := app.frame(); {
		case err == nil:
		case errors.Is(err, ErrQuit):
			log.Info("exit requested")
			return nil
		case errors.Is(err, ErrEndOfInput):
			log.Info("input closed")
			return nil
		default:
			log.Error("frame failed: %v", err)
			return err
		}
	}
}

// Shutdown makes Run return before its next frame. It may be called from
// any goroutine.
func (app *Application[S]) Shutdown() {
	app.doneOnce.Do(func() { close(app.done) })
}

// IsRunning reports whether Run is active.
func (app *Application[S]) IsRunning() bool {
	return app.running.Load()
}

// frame runs one update, drains input until the deadline and renders.
func (app *Application[S]) frame() error {
	app.frameNo++
	start := time.Now()
	deadline := start.Add(app.opts.RefreshRate)

	if app.root.Update(app.state) == widget.Exit {
		return ErrQuit
	}

	if err := app.drain(deadline); err != nil {
		return err
	}

	renderStart := time.Now()
	if err := app.render(); err != nil {
		return err
	}
	app.opts.Metrics.RecordRender(time.Since(renderStart))

	d := time.Since(start)
	app.opts.Metrics.RecordFrame(d)
	if app.opts.Logger.Enabled(LogLevelDebug) {
		app.opts.Logger.Debug("frame %d rendered in %s", app.frameNo, d)
	}
	return nil
}

// drain decodes and dispatches input until the deadline passes.
func (app *Application[S]) drain(deadline time.Time) error {
	for {
		chunk, ok, err := app.input.ReceiveUntil(deadline)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrEndOfInput
			}
			return newFrameError(StageInput, "receive", app.frameNo, err)
		}
		if !ok {
			// A lone escape byte stays pending until the frame ends.
			if app.decoder.Pending() {
				return app.dispatch(app.decoder.Flush())
			}
			return nil
		}
		if len(chunk) == 0 {
			if err := app.dispatch(app.decoder.Flush()); err != nil {
				return err
			}
			return ErrEndOfInput
		}
		app.opts.Metrics.RecordChunk(len(chunk))
		if err := app.dispatch(app.decoder.Feed(chunk)); err != nil {
			return err
		}
	}
}

func (app *Application[S]) dispatch(events []input.Event) error {
	for _, ev := range events {
		start := time.Now()
		flow, handled := app.root.HandleEvent(app.state, ev)
		app.opts.Metrics.RecordEvent(time.Since(start))
		if !handled {
			app.opts.Metrics.RecordEventUnhandled()
		}
		if flow == widget.Exit {
			return ErrQuit
		}
	}
	return nil
}

func (app *Application[S]) render() error {
	w, h, err := app.term.Size()
	if err != nil {
		return newFrameError(StageRender, "size", app.frameNo, err)
	}
	app.buf.ResizeAndClear(w, h)
	app.root.Render(app.buf)
	if err := app.term.Write(app.encoder.Encode(app.buf)); err != nil {
		return newFrameError(StageRender, "write", app.frameNo, err)
	}
	return nil
}
