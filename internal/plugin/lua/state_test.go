package lua

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type fakeHost struct {
	text      strings.Builder
	line, col int
	messages  []string
	quit      bool
	insertErr error
}

func (h *fakeHost) Insert(text string) error {
	if h.insertErr != nil {
		return h.insertErr
	}
	h.text.WriteString(text)
	return nil
}

func (h *fakeHost) Text() string            { return h.text.String() }
func (h *fakeHost) Cursor() (line, col int) { return h.line, h.col }
func (h *fakeHost) Message(text string)     { h.messages = append(h.messages, text) }
func (h *fakeHost) Quit()                   { h.quit = true }

func newTestState(t *testing.T, opts ...StateOption) (*State, *fakeHost) {
	t.Helper()
	h := &fakeHost{}
	s := NewState(h, opts...)
	t.Cleanup(func() { s.Close() })
	return s, h
}

func TestAPI(t *testing.T) {
	s, h := newTestState(t)
	h.line, h.col = 2, 5

	err := s.DoString(`
		glyph.insert("hello")
		glyph.insert(" world")
		local line, col = glyph.cursor()
		glyph.message(glyph.text() .. " " .. line .. ":" .. col)
		glyph.quit()
	`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if h.Text() != "hello world" {
		t.Errorf("text = %q", h.Text())
	}
	if len(h.messages) != 1 || h.messages[0] != "hello world 3:6" {
		t.Errorf("messages = %q", h.messages)
	}
	if !h.quit {
		t.Error("glyph.quit() did not reach the host")
	}
}

func TestPrintGoesToStatus(t *testing.T) {
	s, h := newTestState(t)
	if err := s.DoString(`print("a", 1, true, nil)`); err != nil {
		t.Fatal(err)
	}
	if len(h.messages) != 1 || h.messages[0] != "a\t1\ttrue\tnil" {
		t.Errorf("messages = %q", h.messages)
	}
}

func TestSandbox(t *testing.T) {
	s, _ := newTestState(t)
	for _, name := range []string{"io", "os", "debug", "package", "dofile", "loadfile", "load", "loadstring", "require", "module"} {
		t.Run(name, func(t *testing.T) {
			err := s.DoString(`assert(` + name + ` == nil, "` + name + ` is available")`)
			if err != nil {
				t.Error(err)
			}
		})
	}
	for _, name := range []string{"string", "table", "math", "coroutine", "pairs", "pcall"} {
		t.Run(name, func(t *testing.T) {
			if err := s.DoString(`assert(` + name + ` ~= nil)`); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestScriptErrors(t *testing.T) {
	s, h := newTestState(t)
	h.insertErr = errors.New("read only")

	tests := []struct {
		name string
		code string
		want string
	}{
		{"syntax", "glyph.insert(", "<string>"},
		{"runtime", `error("boom")`, "boom"},
		{"host error", `glyph.insert("x")`, "read only"},
		{"bad argument", `glyph.message({})`, "string expected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.DoString(tt.code)
			var se *ScriptError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *ScriptError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	// The state stays usable after a failure.
	if err := s.DoString(`x = 1`); err != nil {
		t.Errorf("DoString after error = %v", err)
	}
}

func TestCommands(t *testing.T) {
	s, h := newTestState(t)
	err := s.DoString(`
		glyph.command("greet", function(args) glyph.message("hi " .. args) end)
		glyph.command("fail", function() error("nope") end)
		glyph.command("gone", function() end)
		glyph.command("gone", nil)
	`)
	if err != nil {
		t.Fatal(err)
	}

	if got := s.Commands(); strings.Join(got, ",") != "fail,greet" {
		t.Errorf("Commands() = %v", got)
	}
	if !s.HasCommand("greet") || s.HasCommand("gone") {
		t.Error("HasCommand mismatch")
	}

	if err := s.RunCommand("greet", "there"); err != nil {
		t.Fatal(err)
	}
	if len(h.messages) != 1 || h.messages[0] != "hi there" {
		t.Errorf("messages = %q", h.messages)
	}

	var se *ScriptError
	if err := s.RunCommand("fail", ""); !errors.As(err, &se) || se.Chunk != "fail" {
		t.Errorf("RunCommand(fail) error = %v", err)
	}
	if err := s.RunCommand("nothing", ""); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("RunCommand(nothing) error = %v", err)
	}
	if err := s.DoString(`glyph.command("two words", function() end)`); err == nil {
		t.Error("multi-word command name accepted")
	}
}

func TestTimeout(t *testing.T) {
	s, _ := newTestState(t, WithExecutionTimeout(50*time.Millisecond))

	start := time.Now()
	err := s.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("error = %v, want ErrExecutionTimeout", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("timeout took too long")
	}
	if err := s.DoString(`y = 2`); err != nil {
		t.Errorf("DoString after timeout = %v", err)
	}
}

func TestDoFile(t *testing.T) {
	s, h := newTestState(t)
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`glyph.insert("from file")`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.DoFile(path); err != nil {
		t.Fatal(err)
	}
	if h.Text() != "from file" {
		t.Errorf("text = %q", h.Text())
	}

	var se *ScriptError
	if err := s.DoFile(filepath.Join(t.TempDir(), "missing.lua")); !errors.As(err, &se) {
		t.Errorf("DoFile(missing) error = %v", err)
	}
}

func TestClosed(t *testing.T) {
	s, _ := newTestState(t)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.DoString("x = 1"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString after Close = %v", err)
	}
	if s.HasCommand("x") || s.Commands() != nil {
		t.Error("closed state reports commands")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
