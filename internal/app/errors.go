package app

import (
	"errors"
	"fmt"
)

// Loop outcomes.
var (
	// ErrQuit signals that the widget tree asked to exit.
	ErrQuit = errors.New("quit requested")

	// ErrEndOfInput signals that the terminal input stream ended.
	ErrEndOfInput = errors.New("end of input")

	// ErrAlreadyRunning indicates Run was called twice concurrently.
	ErrAlreadyRunning = errors.New("application already running")
)

// Stage names the part of the frame loop that failed.
type Stage string

const (
	StageSetup    Stage = "setup"
	StageInput    Stage = "input"
	StageRender   Stage = "render"
	StageTeardown Stage = "teardown"
)

// FrameError reports a terminal or reader failure that ended Run.
// Frame is the number of the frame being run, or 0 outside the loop.
type FrameError struct {
	Stage Stage
	Step  string
	Frame uint64
	Err   error
}

func newFrameError(stage Stage, step string, frame uint64, err error) *FrameError {
	return &FrameError{Stage: stage, Step: step, Frame: frame, Err: err}
}

func (e *FrameError) Error() string {
	if e == nil {
		return ""
	}
	msg := string(e.Stage)
	if e.Step != "" {
		msg += ": " + e.Step
	}
	if e.Frame > 0 {
		msg = fmt.Sprintf("%s (frame %d)", msg, e.Frame)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FrameError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InLoop reports whether the failure happened while frames were running,
// as opposed to terminal setup or teardown.
func (e *FrameError) InLoop() bool {
	return e != nil && e.Frame > 0
}

// FileError reports a failure on a file the application opened itself,
// such as the log file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
