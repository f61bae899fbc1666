package keymap

import (
	"fmt"

	"github.com/dshills/glyph/internal/input/key"
)

// Modes with keymaps.
const (
	ModeNormal  = "normal"
	ModeInsert  = "insert"
	ModeCommand = "command"
	ModeSplit   = "split"

	// ModeRoot holds editor-wide keys that are checked before the focused
	// widget sees the event.
	ModeRoot = "root"

	// ModeRootUnhandled holds editor-wide keys that apply only when the
	// focused widget did not handle the event.
	ModeRootUnhandled = "root.unhandled"
)

// Action names used by the default keymaps.
const (
	ActionQuit            = "app.quit"
	ActionCommandEnter    = "command.enter"
	ActionCommandCancel   = "command.cancel"
	ActionCommandExecute  = "command.execute"
	ActionCommandComplete = "command.complete"

	ActionModeInsert = "mode.insert"
	ActionModeNormal = "mode.normal"

	ActionMoveUp        = "cursor.moveUp"
	ActionMoveDown      = "cursor.moveDown"
	ActionMoveLeft      = "cursor.moveLeft"
	ActionMoveRight     = "cursor.moveRight"
	ActionMoveLineStart = "cursor.moveLineStart"
	ActionMoveLineEnd   = "cursor.moveLineEnd"

	ActionDeleteChar       = "editor.deleteChar"
	ActionDeleteCharBefore = "editor.deleteCharBefore"

	ActionFocusUp   = "focus.up"
	ActionFocusDown = "focus.down"
)

// DefaultCommandKey enters command mode unless configured otherwise.
const DefaultCommandKey = ":"

// LoadDefaults loads all default keymaps into the registry. commandKey is
// the key that opens the command line; a modified command key such as
// "<C-c>" is reserved and wins over the focused widget.
func LoadDefaults(r *Registry, commandKey string) error {
	root, unhandled, err := DefaultRootKeymaps(commandKey)
	if err != nil {
		return err
	}

	keymaps := []*Keymap{
		DefaultNormalKeymap(),
		DefaultInsertKeymap(),
		DefaultCommandKeymap(),
		DefaultSplitKeymap(),
		root,
		unhandled,
	}

	for _, km := range keymaps {
		if err := r.Register(km); err != nil {
			return err
		}
	}

	return nil
}

// DefaultNormalKeymap returns default normal mode bindings.
func DefaultNormalKeymap() *Keymap {
	return &Keymap{
		Name:   "default-normal",
		Mode:   ModeNormal,
		Source: "default",
		Bindings: []Binding{
			{Keys: "i", Action: ActionModeInsert, Description: "Enter insert mode", Category: "Mode"},

			{Keys: "Up", Action: ActionMoveUp, Description: "Move up", Category: "Movement"},
			{Keys: "Down", Action: ActionMoveDown, Description: "Move down", Category: "Movement"},
			{Keys: "Left", Action: ActionMoveLeft, Description: "Move left", Category: "Movement"},
			{Keys: "Right", Action: ActionMoveRight, Description: "Move right", Category: "Movement"},
			{Keys: "h", Action: ActionMoveLeft, Description: "Move left", Category: "Movement"},
			{Keys: "j", Action: ActionMoveDown, Description: "Move down", Category: "Movement"},
			{Keys: "k", Action: ActionMoveUp, Description: "Move up", Category: "Movement"},
			{Keys: "l", Action: ActionMoveRight, Description: "Move right", Category: "Movement"},
			{Keys: "Home", Action: ActionMoveLineStart, Description: "Move to line start", Category: "Movement"},
			{Keys: "End", Action: ActionMoveLineEnd, Description: "Move to line end", Category: "Movement"},
		},
	}
}

// DefaultInsertKeymap returns default insert mode bindings. Printable
// characters and pasted text are inserted by the pane's fallback.
func DefaultInsertKeymap() *Keymap {
	return &Keymap{
		Name:   "default-insert",
		Mode:   ModeInsert,
		Source: "default",
		Bindings: []Binding{
			{Keys: "Esc", Action: ActionModeNormal, Description: "Return to normal mode", Category: "Mode"},

			{Keys: "Delete", Action: ActionDeleteChar, Description: "Delete char under cursor", Category: "Editing"},
			{Keys: "Backspace", Action: ActionDeleteCharBefore, Description: "Delete char before cursor", Category: "Editing"},

			{Keys: "Up", Action: ActionMoveUp, Description: "Move up", Category: "Navigation"},
			{Keys: "Down", Action: ActionMoveDown, Description: "Move down", Category: "Navigation"},
			{Keys: "Left", Action: ActionMoveLeft, Description: "Move left", Category: "Navigation"},
			{Keys: "Right", Action: ActionMoveRight, Description: "Move right", Category: "Navigation"},
			{Keys: "Home", Action: ActionMoveLineStart, Description: "Move to line start", Category: "Navigation"},
			{Keys: "End", Action: ActionMoveLineEnd, Description: "Move to line end", Category: "Navigation"},
		},
	}
}

// DefaultCommandKeymap returns bindings of the command line.
func DefaultCommandKeymap() *Keymap {
	return &Keymap{
		Name:   "default-command",
		Mode:   ModeCommand,
		Source: "default",
		Bindings: []Binding{
			{Keys: "Esc", Action: ActionCommandCancel, Description: "Cancel command", Category: "Command"},
			{Keys: "Return", Action: ActionCommandExecute, Description: "Execute command", Category: "Command"},
			{Keys: "Tab", Action: ActionCommandComplete, Description: "Complete command name", Category: "Command"},
		},
	}
}

// DefaultSplitKeymap returns bindings that move focus between split panes.
func DefaultSplitKeymap() *Keymap {
	return &Keymap{
		Name:   "default-split",
		Mode:   ModeSplit,
		Source: "default",
		Bindings: []Binding{
			{Keys: "<C-Up>", Action: ActionFocusUp, Description: "Focus upper pane", Category: "Window"},
			{Keys: "<C-Down>", Action: ActionFocusDown, Description: "Focus lower pane", Category: "Window"},
		},
	}
}

// DefaultRootKeymaps returns the reserved and the unhandled editor-wide
// keymaps for the given command key.
func DefaultRootKeymaps(commandKey string) (root, unhandled *Keymap, err error) {
	if commandKey == "" {
		commandKey = DefaultCommandKey
	}
	ev, err := key.Parse(commandKey)
	if err != nil {
		return nil, nil, fmt.Errorf("command key %q: %w", commandKey, err)
	}
	if ev == key.Ctrl('q') {
		return nil, nil, fmt.Errorf("command key %q: reserved for quit", commandKey)
	}

	root = &Keymap{
		Name:   "default-root",
		Mode:   ModeRoot,
		Source: "default",
		Bindings: []Binding{
			{Keys: "<C-q>", Action: ActionQuit, Description: "Quit", Category: "Application"},
		},
	}
	unhandled = &Keymap{
		Name:   "default-root-unhandled",
		Mode:   ModeRootUnhandled,
		Source: "default",
		Bindings: []Binding{
			{Keys: "q", Action: ActionQuit, Description: "Quit", Category: "Application"},
		},
	}

	enter := Binding{Keys: commandKey, Action: ActionCommandEnter, Description: "Open command line", Category: "Command"}
	if ev.IsModified() {
		root.AddBinding(enter)
	} else {
		unhandled.AddBinding(enter)
	}
	return root, unhandled, nil
}
