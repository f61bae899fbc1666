package editor

import (
	"strings"

	"github.com/dshills/glyph/internal/input/fuzzy"
	"github.com/dshills/glyph/internal/widget"
)

// Execute runs a command line:
//
//	q, quit              exit
//	lua <code>           run Lua code
//	focus top|bottom     move split focus
//	mode normal|insert   switch the focused pane's mode
//	<name> [args]        run a command registered by a script
func (r *Root) Execute(state *State, line string) widget.ControlFlow {
	line = strings.TrimSpace(line)
	state.SetStatus("")
	if line == "" {
		return widget.Continue
	}

	name, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)
	state.Log.Debug("command: %s", line)

	switch name {
	case "q", "quit":
		return widget.Exit
	case "lua":
		r.runScript(state, "lua", func() error { return r.scripts.DoString(args) })
	case "focus":
		r.focus(state, args)
	case "mode":
		r.mode(state, args)
	default:
		if r.scripts == nil || !r.scripts.HasCommand(name) {
			state.SetStatus("unknown command: " + name)
			break
		}
		r.runScript(state, name, func() error { return r.scripts.RunCommand(name, args) })
	}

	if state.QuitRequested() {
		return widget.Exit
	}
	return widget.Continue
}

func (r *Root) runScript(state *State, what string, fn func() error) {
	if r.scripts == nil {
		state.SetStatus("scripting is not available")
		return
	}
	if err := fn(); err != nil {
		state.Log.Warn("%s: %v", what, err)
		state.SetStatus(err.Error())
	}
}

func (r *Root) focus(state *State, arg string) {
	split := r.Split()
	if split == nil {
		return
	}
	switch arg {
	case "top":
		split.SetFocus(widget.FocusTop)
	case "bottom":
		split.SetFocus(widget.FocusBottom)
	default:
		state.SetStatus("usage: focus top|bottom")
	}
}

func (r *Root) mode(state *State, arg string) {
	p := r.FocusedPane()
	if p == nil {
		return
	}
	switch arg {
	case "normal":
		p.SetMode(ModeNormal)
	case "insert":
		p.SetMode(ModeInsert)
	default:
		state.SetStatus("usage: mode normal|insert")
	}
}

// builtinCommands are the names Execute knows without scripts.
var builtinCommands = []string{"q", "quit", "lua", "focus", "mode"}

// commandNames returns the built-in and script command names.
func (r *Root) commandNames() []string {
	names := append([]string(nil), builtinCommands...)
	if r.scripts != nil {
		names = append(names, r.scripts.Commands()...)
	}
	return names
}

// complete replaces the command word with its best completion. When
// several names match and share a prefix longer than the word, the word
// grows to that prefix instead. Lines with arguments are left alone.
func (r *Root) complete(state *State) {
	word := r.cmdLine.Value()
	if strings.ContainsRune(word, ' ') {
		return
	}
	matches := fuzzy.Rank(word, r.commandNames())
	switch {
	case len(matches) == 0:
		state.SetStatus("no command matches " + word)
	case len(matches) == 1:
		r.cmdLine.SetValue(matches[0].Text + " ")
	default:
		if p := fuzzy.CommonPrefix(matches); len(p) > len(word) && strings.HasPrefix(p, word) {
			r.cmdLine.SetValue(p)
			return
		}
		r.cmdLine.SetValue(matches[0].Text)
	}
}
