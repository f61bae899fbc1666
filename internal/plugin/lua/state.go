package lua

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single script execution.
const DefaultExecutionTimeout = 2 * time.Second

// Host is the editor as seen by scripts.
type Host interface {
	// Insert inserts text at the cursor of the focused pane.
	Insert(text string) error
	// Text returns the text of the focused pane.
	Text() string
	// Cursor returns the 0-based line and column of the cursor.
	Cursor() (line, col int)
	// Message shows text on the status row.
	Message(text string)
	// Quit asks the program to exit.
	Quit()
}

// State wraps a sandboxed gopher-lua state bound to a Host.
//
// gopher-lua's LState is not goroutine-safe. The mutex guards calls from
// Go; callbacks into the Host run on the calling goroutine.
type State struct {
	L *lua.LState

	mu       sync.Mutex
	host     Host
	timeout  time.Duration
	commands *lua.LTable
	closed   bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the time limit of each execution. Zero or less
// disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// NewState creates a sandboxed state whose glyph table talks to host.
func NewState(host Host, opts ...StateOption) *State {
	s := &State{
		host:    host,
		timeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	removeUnsafeGlobals(s.L)

	s.commands = s.L.NewTable()
	s.installAPI()
	return s
}

// openSafeLibraries opens only libraries without file, process or
// introspection access.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
		{lua.CoroutineLibName, lua.OpenCoroutine},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// removeUnsafeGlobals drops base functions that load code from files or
// strings.
func removeUnsafeGlobals(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoString runs code.
func (s *State) DoString(code string) error {
	return s.run("<string>", func(L *lua.LState) error {
		return L.DoString(code)
	})
}

// DoFile runs the script at path.
func (s *State) DoFile(path string) error {
	return s.run(path, func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// HasCommand reports whether a script registered name.
func (s *State) HasCommand(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return s.commands.RawGetString(name).Type() == lua.LTFunction
}

// Commands returns the registered command names, sorted.
func (s *State) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	var names []string
	s.commands.ForEach(func(k, _ lua.LValue) {
		names = append(names, k.String())
	})
	sort.Strings(names)
	return names
}

// RunCommand calls the command registered as name with args.
func (s *State) RunCommand(name, args string) error {
	s.mu.Lock()
	fn, ok := s.commands.RawGetString(name).(*lua.LFunction)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return s.run(name, func(L *lua.LState) error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, lua.LString(args))
	})
}

// run executes fn under the timeout and wraps its failure.
func (s *State) run(chunk string, fn func(L *lua.LState) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()

		defer func() {
			if err != nil && ctx.Err() != nil {
				err = &ScriptError{Chunk: chunk, Err: fmt.Errorf("%w after %v", ErrExecutionTimeout, s.timeout)}
			}
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			err = &ScriptError{Chunk: chunk, Err: fmt.Errorf("lua panic: %v", r)}
		}
	}()

	if err := fn(s.L); err != nil {
		return &ScriptError{Chunk: chunk, Err: err}
	}
	return nil
}

// Close releases the Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
