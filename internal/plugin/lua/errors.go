package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrUnknownCommand is returned when running a command no script
	// registered.
	ErrUnknownCommand = errors.New("unknown command")
)

// ScriptError is a failure raised while compiling or running Lua code.
type ScriptError struct {
	// Chunk names the code that failed: a file path, a command name or
	// "<string>".
	Chunk string
	// Err is the underlying error, usually a *lua.ApiError.
	Err error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("lua %s: %v", e.Chunk, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
