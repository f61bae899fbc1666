package editor

import (
	"fmt"
	"time"

	"github.com/dshills/glyph/internal/config"
	"github.com/dshills/glyph/internal/plugin/lua"
	"github.com/dshills/glyph/internal/widget"
)

// Editor bundles the widget tree with its state and script runtime.
type Editor struct {
	State *State
	Root  *Root

	scripts *lua.State
}

type options struct {
	reloads       ReloadSource
	text          []string
	scriptTimeout time.Duration
}

// Option configures New.
type Option func(*options)

// WithReloadSource makes the editor apply configurations from src.
func WithReloadSource(src ReloadSource) Option {
	return func(o *options) {
		o.reloads = src
	}
}

// WithText sets the initial text of the panes, top pane first.
func WithText(text ...string) Option {
	return func(o *options) {
		o.text = text
	}
}

// WithScriptTimeout bounds each script call.
func WithScriptTimeout(d time.Duration) Option {
	return func(o *options) {
		o.scriptTimeout = d
	}
}

// New builds an editor from cfg. A failing init script does not fail New;
// its error is logged and shown on the status row.
func New(cfg *config.Config, log Logger, opts ...Option) (*Editor, error) {
	o := options{scriptTimeout: lua.DefaultExecutionTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	theme, err := ThemeFromConfig(cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	keys, err := LoadKeys(cfg.Editor.CommandKey, cfg.Keymaps.Files)
	if err != nil {
		return nil, fmt.Errorf("keymaps: %w", err)
	}

	newPane := func(i int) *Pane {
		popts := []PaneOption{WithTabWidth(cfg.Editor.TabWidth)}
		if i < len(o.text) {
			popts = append(popts, WithPaneText(o.text[i]))
		}
		return NewPane(keys, popts...)
	}

	var primary widget.Widget[*State]
	if cfg.Editor.Split {
		primary = widget.NewVSplit[*State](newPane(0), newPane(1),
			widget.WithTopRows(cfg.Editor.SplitTopRows),
			widget.WithBottomRows(cfg.Editor.SplitBottomRows),
			widget.WithSplitKeys(keys.Split),
		)
	} else {
		primary = newPane(0)
	}

	state := NewState(log)
	root := NewRoot(primary, keys, theme)
	root.reloads = o.reloads
	root.scripts = lua.NewState(&host{root: root, state: state}, lua.WithExecutionTimeout(o.scriptTimeout))

	e := &Editor{State: state, Root: root, scripts: root.scripts}
	if cfg.Editor.InitScript != "" {
		if err := e.scripts.DoFile(cfg.Editor.InitScript); err != nil {
			state.Log.Error("init script: %v", err)
			state.SetStatus("init script: " + err.Error())
		}
	}
	root.status = state.Status()
	return e, nil
}

// Close releases the script runtime.
func (e *Editor) Close() error {
	return e.scripts.Close()
}
