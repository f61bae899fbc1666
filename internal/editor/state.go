package editor

import (
	"github.com/dshills/glyph/internal/config"
	"github.com/dshills/glyph/internal/renderer/core"
)

// Logger is the logging the editor needs. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// State is shared by every widget of the editor tree.
type State struct {
	Log Logger

	status string
	quit   bool
}

// NewState creates the editor state. A nil log discards messages.
func NewState(log Logger) *State {
	if log == nil {
		log = nopLogger{}
	}
	return &State{Log: log}
}

// SetStatus shows msg on the status row.
func (s *State) SetStatus(msg string) {
	s.status = msg
}

// Status returns the status row message.
func (s *State) Status() string {
	return s.status
}

// RequestQuit makes the editor exit at the next opportunity.
func (s *State) RequestQuit() {
	s.quit = true
}

// QuitRequested reports whether RequestQuit was called.
func (s *State) QuitRequested() bool {
	return s.quit
}

// Theme holds the styles of the editor's regions.
type Theme struct {
	Text    core.Style
	Status  core.Style
	Command core.Style
}

// DefaultTheme returns the theme of the default configuration.
func DefaultTheme() Theme {
	t, err := ThemeFromConfig(config.Default().Theme)
	if err != nil {
		panic("editor: default theme: " + err.Error())
	}
	return t
}

// ThemeFromConfig converts the configured styles.
func ThemeFromConfig(c config.ThemeConfig) (Theme, error) {
	var t Theme
	var err error
	if t.Text, err = c.Text.Style(); err != nil {
		return t, err
	}
	if t.Status, err = c.Status.Style(); err != nil {
		return t, err
	}
	if t.Command, err = c.Command.Style(); err != nil {
		return t, err
	}
	return t, nil
}
