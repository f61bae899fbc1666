package editor

import (
	"github.com/dshills/glyph/internal/config"
	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/plugin/lua"
	"github.com/dshills/glyph/internal/renderer/core"
	"github.com/dshills/glyph/internal/renderer/grid"
	"github.com/dshills/glyph/internal/widget"
)

// ReloadSource delivers configuration reloads. *config.Watcher is one.
type ReloadSource interface {
	Reloads() <-chan *config.Config
	Errors() <-chan error
}

// Root is the top of the editor tree: the primary widget above a status
// row that doubles as the command line.
type Root struct {
	primary    widget.Widget[*State]
	primaryBuf *grid.Grid

	cmdLine     *TextField
	cmdBuf      *grid.Grid
	commandMode bool

	keys    *Keys
	theme   Theme
	scripts *lua.State
	reloads ReloadSource

	// status is the state's message as of the last event or update;
	// Render has no access to the state.
	status string
}

// NewRoot creates a root over primary.
func NewRoot(primary widget.Widget[*State], keys *Keys, theme Theme) *Root {
	r := &Root{
		primary:    primary,
		primaryBuf: grid.New(0, 0),
		cmdLine:    NewTextField(),
		cmdBuf:     grid.New(0, 0),
	}
	r.SetKeys(keys)
	r.SetTheme(theme)
	return r
}

// CommandMode reports whether the command line has focus.
func (r *Root) CommandMode() bool {
	return r.commandMode
}

// CommandLine returns the command line field.
func (r *Root) CommandLine() *TextField {
	return r.cmdLine
}

// Primary returns the editing widget.
func (r *Root) Primary() widget.Widget[*State] {
	return r.primary
}

// SetKeys installs new key tables in the whole tree.
func (r *Root) SetKeys(k *Keys) {
	r.keys = k
	widget.Walk(r.primary, func(w widget.Widget[*State]) {
		switch w := w.(type) {
		case *Pane:
			w.SetKeys(k)
		case *widget.VSplit[*State]:
			w.SetKeys(k.Split)
		}
	})
}

// SetTheme installs a new theme in the whole tree.
func (r *Root) SetTheme(t Theme) {
	r.theme = t
	r.cmdLine.SetStyle(t.Command)
	widget.Walk(r.primary, func(w widget.Widget[*State]) {
		if p, ok := w.(*Pane); ok {
			p.SetTheme(t)
		}
	})
}

// FocusedPane returns the pane that receives events, or nil.
func (r *Root) FocusedPane() *Pane {
	p, _ := widget.FocusedLeaf(r.primary).(*Pane)
	return p
}

// Split returns the split of the tree, or nil without one.
func (r *Root) Split() *widget.VSplit[*State] {
	var split *widget.VSplit[*State]
	widget.Walk(r.primary, func(w widget.Widget[*State]) {
		if s, ok := w.(*widget.VSplit[*State]); ok && split == nil {
			split = s
		}
	})
	return split
}

// Children implements widget.Container.
func (r *Root) Children() []widget.Widget[*State] {
	return []widget.Widget[*State]{r.primary, r.cmdLine}
}

// Focused implements widget.Focuser.
func (r *Root) Focused() widget.Widget[*State] {
	if r.commandMode {
		return r.cmdLine
	}
	return r.primary
}

// HandleEvent dispatches ev in this order: the exit key, reserved
// editor keys, the command line or the primary widget, then the keys that
// apply only when the primary widget ignored the event.
func (r *Root) HandleEvent(state *State, ev input.Event) (widget.ControlFlow, bool) {
	flow, handled := r.dispatch(state, ev)
	r.status = state.Status()
	return flow, handled
}

func (r *Root) dispatch(state *State, ev input.Event) (widget.ControlFlow, bool) {
	if ev.IsKey(widget.ExitKey) {
		return widget.Exit, true
	}

	if a, ok := r.keys.Root.Lookup(ev); ok {
		switch a {
		case RootQuit:
			return widget.Exit, true
		case RootCommandEnter:
			if !r.commandMode {
				r.commandMode = true
				return widget.Continue, true
			}
		}
	}

	if r.commandMode {
		return r.handleCommandLine(state, ev)
	}

	if flow, handled := r.primary.HandleEvent(state, ev); handled {
		return flow, true
	}

	if a, ok := r.keys.RootUnhandled.Lookup(ev); ok {
		switch a {
		case RootQuit:
			return widget.Exit, true
		case RootCommandEnter:
			r.commandMode = true
			return widget.Continue, true
		}
	}
	return widget.Continue, false
}

func (r *Root) handleCommandLine(state *State, ev input.Event) (widget.ControlFlow, bool) {
	if a, ok := r.keys.Command.Lookup(ev); ok {
		switch a {
		case CommandCancel:
			r.cmdLine.Clear()
			r.commandMode = false
			return widget.Continue, true
		case CommandExecute:
			line := r.cmdLine.Value()
			r.cmdLine.Clear()
			r.commandMode = false
			return r.Execute(state, line), true
		case CommandComplete:
			r.complete(state)
			return widget.Continue, true
		}
	}
	return r.cmdLine.HandleEvent(state, ev)
}

// Update applies pending configuration reloads and updates the primary
// widget.
func (r *Root) Update(state *State) widget.ControlFlow {
	defer func() { r.status = state.Status() }()
	if r.reloads != nil {
		// Errors first: a config queued alongside a stale error is newer.
		select {
		case err := <-r.reloads.Errors():
			state.Log.Warn("config reload failed: %v", err)
			state.SetStatus("config reload failed: " + err.Error())
		default:
		}
		select {
		case cfg := <-r.reloads.Reloads():
			r.ApplyConfig(state, cfg)
		default:
		}
	}
	if state.QuitRequested() {
		return widget.Exit
	}
	return r.primary.Update(state)
}

// ApplyConfig installs the theme, key bindings and tab width of cfg. On
// error the current settings stay.
func (r *Root) ApplyConfig(state *State, cfg *config.Config) {
	theme, err := ThemeFromConfig(cfg.Theme)
	if err != nil {
		state.Log.Warn("config reload: theme: %v", err)
		state.SetStatus("config reload failed: " + err.Error())
		return
	}
	keys, err := LoadKeys(cfg.Editor.CommandKey, cfg.Keymaps.Files)
	if err != nil {
		state.Log.Warn("config reload: keymaps: %v", err)
		state.SetStatus("config reload failed: " + err.Error())
		return
	}

	r.SetTheme(theme)
	r.SetKeys(keys)
	widget.Walk(r.primary, func(w widget.Widget[*State]) {
		if p, ok := w.(*Pane); ok {
			p.SetTabWidth(cfg.Editor.TabWidth)
		}
	})
	state.Log.Info("configuration reloaded")
	state.SetStatus("configuration reloaded")
}

// Render draws the primary widget above the status row. Grids shorter
// than two rows are left empty.
func (r *Root) Render(buf *grid.Grid) {
	w, h := buf.Size()
	if h < 2 {
		return
	}

	r.primaryBuf.ResizeAndClear(w, h-1)
	r.primary.Render(r.primaryBuf)
	buf.Blit(0, 0, r.primaryBuf, !r.commandMode)

	y := h - 1
	if r.commandMode {
		buf.FillRow(0, y, core.NewStyledCell(' ', r.theme.Command))
		buf.SetString(0, y, ":", r.theme.Command)
		r.cmdBuf.ResizeAndClear(max(w-1, 0), 1)
		r.cmdLine.Render(r.cmdBuf)
		buf.Blit(1, y, r.cmdBuf, true)
		return
	}
	r.renderStatus(buf, y)
}

// renderStatus draws the status message on the left and the focused
// pane's mode on the right when both fit.
func (r *Root) renderStatus(buf *grid.Grid, y int) {
	style := r.theme.Status
	buf.FillRow(0, y, core.NewStyledCell(' ', style))
	end := buf.SetString(0, y, r.status, style)

	p := r.FocusedPane()
	if p == nil {
		return
	}
	label := " " + p.Mode().String() + " "
	if x := buf.Width() - core.StringWidth(label); x > end {
		buf.SetString(x, y, label, style)
	}
}
