package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/glyph/internal/renderer/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.App.RefreshRate.Std() != 17*time.Millisecond {
		t.Errorf("refresh rate = %v", cfg.App.RefreshRate)
	}
	if cfg.Editor.CommandKey != ":" || cfg.Terminal.Driver != DriverTTY || !cfg.Terminal.BracketedPaste {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

const tomlConfig = `
[app]
refresh_rate = "25ms"

[log]
level = "debug"

[terminal]
driver = "raw"

[editor]
command_key = "<C-c>"
split = true
split_top_rows = 5
init_script = "init.lua"

[theme.status]
fg = "yellow"
bg = "#0000ff"
bold = true

[keymaps]
files = ["keys.toml", "/abs/keys.yaml"]
`

const yamlConfig = `
app:
  refresh_rate: 25ms
log:
  level: debug
terminal:
  driver: raw
editor:
  command_key: "<C-c>"
  split: true
  split_top_rows: 5
  init_script: init.lua
theme:
  status:
    fg: yellow
    bg: "#0000ff"
    bold: true
keymaps:
  files: [keys.toml, /abs/keys.yaml]
`

func TestLoadFile(t *testing.T) {
	for _, tt := range []struct {
		name, content string
	}{
		{"glyph.toml", tomlConfig},
		{"glyph.yaml", yamlConfig},
	} {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg, err := Load(writeFile(t, dir, tt.name, tt.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if cfg.App.RefreshRate.Std() != 25*time.Millisecond {
				t.Errorf("refresh rate = %v", cfg.App.RefreshRate)
			}
			if cfg.Log.Level != "debug" || cfg.Terminal.Driver != DriverRaw {
				t.Errorf("log/terminal = %+v %+v", cfg.Log, cfg.Terminal)
			}
			if !cfg.Terminal.BracketedPaste {
				t.Error("missing key should keep its default")
			}
			if cfg.Editor.CommandKey != "<C-c>" || !cfg.Editor.Split || cfg.Editor.SplitTopRows != 5 {
				t.Errorf("editor = %+v", cfg.Editor)
			}
			if cfg.Editor.TabWidth != DefaultTabWidth {
				t.Errorf("tab width = %d", cfg.Editor.TabWidth)
			}
			if cfg.Editor.InitScript != filepath.Join(dir, "init.lua") {
				t.Errorf("init script = %q", cfg.Editor.InitScript)
			}
			want := []string{filepath.Join(dir, "keys.toml"), "/abs/keys.yaml"}
			if len(cfg.Keymaps.Files) != 2 || cfg.Keymaps.Files[0] != want[0] || cfg.Keymaps.Files[1] != want[1] {
				t.Errorf("keymap files = %v, want %v", cfg.Keymaps.Files, want)
			}

			style, err := cfg.Theme.Status.Style()
			if err != nil {
				t.Fatal(err)
			}
			wantStyle := core.NewStyle(core.ColorYellow).WithBackground(core.ColorBlue).Bold()
			if style != wantStyle {
				t.Errorf("status style = %+v, want %+v", style, wantStyle)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing file", filepath.Join(dir, "none.toml"), ErrFileNotFound},
		{"unknown extension", writeFile(t, dir, "glyph.ini", "x=1"), ErrUnsupportedFormat},
		{"bad driver", writeFile(t, dir, "driver.toml", "[terminal]\ndriver = \"vt\"\n"), ErrInvalidValue},
		{"bad colour", writeFile(t, dir, "colour.yaml", "theme:\n  text:\n    fg: mauvish\n"), ErrInvalidValue},
		{"bad tab width", writeFile(t, dir, "tab.toml", "[editor]\ntab_width = 0\n"), ErrInvalidValue},
		{"bad command key", writeFile(t, dir, "key.toml", "[editor]\ncommand_key = \"\"\n"), ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadParseErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		content  string
		wantLine int
		wantKey  string
	}{
		{"syntax.toml", "[app]\nrefresh_rate = \n", 2, ""},
		{"unknown.toml", "[app]\nspeed = 3\n", 2, "app.speed"},
		{"unknown.yaml", "app:\n  speed: 3\n", 2, "speed"},
		{"duration.toml", "[app]\nrefresh_rate = \"soon\"\n", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, tt.name, tt.content))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Load() error = %v, want *ParseError", err)
			}
			if !strings.HasSuffix(pe.Path, tt.name) {
				t.Errorf("Path = %q", pe.Path)
			}
			if tt.wantLine > 0 && pe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", pe.Line, tt.wantLine)
			}
			if pe.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", pe.Key, tt.wantKey)
			}
			if !strings.Contains(pe.Error(), tt.name) {
				t.Errorf("Error() = %q does not name the file", pe.Error())
			}
		})
	}
}

func TestEnvLoader(t *testing.T) {
	env := map[string]string{
		"GLYPH_REFRESH_RATE":    "40ms",
		"GLYPH_LOG_LEVEL":       "WARN",
		"GLYPH_TERMINAL_DRIVER": "raw",
		"GLYPH_BRACKETED_PASTE": "off",
		"GLYPH_SPLIT":           "yes",
		"GLYPH_TAB_WIDTH":       "8",
		"GLYPH_COMMAND_KEY":     ";",
	}
	l := NewEnvLoader(EnvPrefix)
	l.lookup = func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	cfg := Default()
	if err := l.Apply(cfg); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if cfg.App.RefreshRate.Std() != 40*time.Millisecond || cfg.Log.Level != "warn" {
		t.Errorf("app/log = %+v %+v", cfg.App, cfg.Log)
	}
	if cfg.Terminal.Driver != DriverRaw || cfg.Terminal.BracketedPaste {
		t.Errorf("terminal = %+v", cfg.Terminal)
	}
	if !cfg.Editor.Split || cfg.Editor.TabWidth != 8 || cfg.Editor.CommandKey != ";" {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if cfg.Log.File != "" {
		t.Error("unset variable changed a setting")
	}

	env = map[string]string{"GLYPH_TAB_WIDTH": "wide", "GLYPH_SPLIT": "maybe"}
	err := l.Apply(Default())
	if err == nil || !strings.Contains(err.Error(), "GLYPH_TAB_WIDTH") || !strings.Contains(err.Error(), "GLYPH_SPLIT") {
		t.Errorf("Apply() error = %v, want both variables reported", err)
	}
}

func TestLoadAppliesEnvironment(t *testing.T) {
	t.Setenv("GLYPH_LOG_FILE", "/tmp/glyph.log")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.File != "/tmp/glyph.log" {
		t.Errorf("log file = %q", cfg.Log.File)
	}
}

func TestStyleConfig(t *testing.T) {
	tests := []struct {
		in   StyleConfig
		want core.Style
	}{
		{StyleConfig{}, core.DefaultStyle()},
		{StyleConfig{Fg: "red"}, core.NewStyle(core.ColorRed)},
		{StyleConfig{Bg: "green", Dim: true}, core.DefaultStyle().WithBackground(core.ColorGreen).Dim()},
		{StyleConfig{Bold: true, Dim: true, Underline: true}, core.DefaultStyle().Bold().WithUnderline(true)},
	}
	for _, tt := range tests {
		got, err := tt.in.Style()
		if err != nil {
			t.Errorf("%+v: error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%+v: Style() = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestClone(t *testing.T) {
	cfg := Default()
	cfg.Keymaps.Files = []string{"a"}
	c := cfg.Clone()
	c.Keymaps.Files[0] = "b"
	c.Editor.TabWidth = 2
	if cfg.Keymaps.Files[0] != "a" || cfg.Editor.TabWidth != DefaultTabWidth {
		t.Error("Clone shares state with the original")
	}
}
