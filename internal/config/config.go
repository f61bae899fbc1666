package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/glyph/internal/input/key"
	"github.com/dshills/glyph/internal/renderer/core"
)

// Terminal drivers.
const (
	DriverTTY = "tty"
	DriverRaw = "raw"
)

// Default values.
const (
	DefaultRefreshRate = 17 * time.Millisecond
	DefaultLogLevel    = "info"
	DefaultCommandKey  = ":"
	DefaultTabWidth    = 4
	MaxTabWidth        = 16
)

// Config holds every setting.
type Config struct {
	App      AppConfig      `toml:"app" yaml:"app"`
	Log      LogConfig      `toml:"log" yaml:"log"`
	Terminal TerminalConfig `toml:"terminal" yaml:"terminal"`
	Editor   EditorConfig   `toml:"editor" yaml:"editor"`
	Theme    ThemeConfig    `toml:"theme" yaml:"theme"`
	Keymaps  KeymapsConfig  `toml:"keymaps" yaml:"keymaps"`
}

// AppConfig configures the frame loop.
type AppConfig struct {
	// RefreshRate is the frame period.
	RefreshRate Duration `toml:"refresh_rate" yaml:"refresh_rate"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File receives the log. Empty discards it, since the terminal
	// belongs to the UI.
	File string `toml:"file" yaml:"file"`
}

// TerminalConfig selects and configures the terminal driver.
type TerminalConfig struct {
	Driver         string `toml:"driver" yaml:"driver"`
	BracketedPaste bool   `toml:"bracketed_paste" yaml:"bracketed_paste"`
}

// EditorConfig configures the reference editor.
type EditorConfig struct {
	// CommandKey opens the command line, in keymap notation.
	CommandKey string `toml:"command_key" yaml:"command_key"`

	// Split shows two panes stacked vertically.
	Split           bool `toml:"split" yaml:"split"`
	SplitTopRows    int  `toml:"split_top_rows" yaml:"split_top_rows"`
	SplitBottomRows int  `toml:"split_bottom_rows" yaml:"split_bottom_rows"`

	// InitScript is a Lua file run at startup.
	InitScript string `toml:"init_script" yaml:"init_script"`

	TabWidth int `toml:"tab_width" yaml:"tab_width"`
}

// ThemeConfig holds the styles of the editor's regions.
type ThemeConfig struct {
	Text    StyleConfig `toml:"text" yaml:"text"`
	Status  StyleConfig `toml:"status" yaml:"status"`
	Command StyleConfig `toml:"command" yaml:"command"`
}

// StyleConfig is a style in file form. Colours are names or #rrggbb.
type StyleConfig struct {
	Fg        string `toml:"fg" yaml:"fg"`
	Bg        string `toml:"bg" yaml:"bg"`
	Bold      bool   `toml:"bold" yaml:"bold"`
	Dim       bool   `toml:"dim" yaml:"dim"`
	Underline bool   `toml:"underline" yaml:"underline"`
}

// KeymapsConfig lists user keymap files. A directory entry loads every
// keymap file in it.
type KeymapsConfig struct {
	Files []string `toml:"files" yaml:"files"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		App: AppConfig{RefreshRate: Duration(DefaultRefreshRate)},
		Log: LogConfig{Level: DefaultLogLevel},
		Terminal: TerminalConfig{
			Driver:         DriverTTY,
			BracketedPaste: true,
		},
		Editor: EditorConfig{
			CommandKey: DefaultCommandKey,
			TabWidth:   DefaultTabWidth,
		},
		Theme: ThemeConfig{
			Status: StyleConfig{Fg: "black", Bg: "white"},
		},
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Keymaps.Files = append([]string(nil), c.Keymaps.Files...)
	return &out
}

// Validate checks every setting and reports all problems found.
func (c *Config) Validate() error {
	var errs []error
	if c.App.RefreshRate <= 0 {
		errs = append(errs, invalid("app.refresh_rate", c.App.RefreshRate, "must be positive"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, invalid("log.level", c.Log.Level, "want debug, info, warn or error"))
	}
	switch c.Terminal.Driver {
	case DriverTTY, DriverRaw:
	default:
		errs = append(errs, invalid("terminal.driver", c.Terminal.Driver, "want tty or raw"))
	}
	if _, err := key.Parse(c.Editor.CommandKey); err != nil {
		errs = append(errs, invalid("editor.command_key", c.Editor.CommandKey, err.Error()))
	}
	if c.Editor.SplitTopRows < 0 {
		errs = append(errs, invalid("editor.split_top_rows", c.Editor.SplitTopRows, "must not be negative"))
	}
	if c.Editor.SplitBottomRows < 0 {
		errs = append(errs, invalid("editor.split_bottom_rows", c.Editor.SplitBottomRows, "must not be negative"))
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > MaxTabWidth {
		errs = append(errs, invalid("editor.tab_width", c.Editor.TabWidth, fmt.Sprintf("must be in [1, %d]", MaxTabWidth)))
	}
	for name, s := range map[string]StyleConfig{
		"theme.text":    c.Theme.Text,
		"theme.status":  c.Theme.Status,
		"theme.command": c.Theme.Command,
	} {
		if _, err := s.Style(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Style converts the file form to a renderer style.
func (s StyleConfig) Style() (core.Style, error) {
	style := core.DefaultStyle()
	if s.Fg != "" {
		fg, err := core.ParseColor(s.Fg)
		if err != nil {
			return style, invalid("fg", s.Fg, err.Error())
		}
		style = style.WithForeground(fg)
	}
	if s.Bg != "" {
		bg, err := core.ParseColor(s.Bg)
		if err != nil {
			return style, invalid("bg", s.Bg, err.Error())
		}
		style = style.WithBackground(bg)
	}
	switch {
	case s.Bold:
		style = style.Bold()
	case s.Dim:
		style = style.Dim()
	}
	return style.WithUnderline(s.Underline), nil
}

// Duration is a time.Duration written as a string such as "17ms".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String formats d like time.Duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
