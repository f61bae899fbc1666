package editor

import (
	"fmt"

	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/input/key"
	"github.com/dshills/glyph/internal/input/keymap"
	"github.com/dshills/glyph/internal/widget"
)

// PaneOp is an editing or movement operation of a Pane.
type PaneOp uint8

const (
	OpInsertMode PaneOp = iota + 1
	OpNormalMode
	OpMoveUp
	OpMoveDown
	OpMoveLeft
	OpMoveRight
	OpMoveLineStart
	OpMoveLineEnd
	OpDelete
	OpBackspace
	OpInsert
)

// PaneAction is a PaneOp with its text, used by OpInsert.
type PaneAction struct {
	Op   PaneOp
	Text string
}

// paneActions maps keymap action names to pane actions. Both pane modes
// accept every action.
var paneActions = map[string]PaneAction{
	keymap.ActionModeInsert:       {Op: OpInsertMode},
	keymap.ActionModeNormal:       {Op: OpNormalMode},
	keymap.ActionMoveUp:           {Op: OpMoveUp},
	keymap.ActionMoveDown:         {Op: OpMoveDown},
	keymap.ActionMoveLeft:         {Op: OpMoveLeft},
	keymap.ActionMoveRight:        {Op: OpMoveRight},
	keymap.ActionMoveLineStart:    {Op: OpMoveLineStart},
	keymap.ActionMoveLineEnd:      {Op: OpMoveLineEnd},
	keymap.ActionDeleteChar:       {Op: OpDelete},
	keymap.ActionDeleteCharBefore: {Op: OpBackspace},
}

// insertFallback turns typing into insertions: unmodified printable runes
// (Shift allowed), an unmodified Return or Tab, and pasted text.
func insertFallback(ev input.Event) (PaneAction, bool) {
	if ev.Kind == input.EventText {
		return PaneAction{Op: OpInsert, Text: ev.Text}, true
	}
	k := ev.Key
	switch {
	case k.IsPrintable() && !k.IsModified():
		return PaneAction{Op: OpInsert, Text: string(k.Rune)}, true
	case k.Key == key.KeyReturn && k.Modifiers == key.ModNone:
		return PaneAction{Op: OpInsert, Text: "\n"}, true
	case k.Key == key.KeyTab && k.Modifiers == key.ModNone:
		return PaneAction{Op: OpInsert, Text: "\t"}, true
	}
	return PaneAction{}, false
}

// RootAction is an editor-wide action.
type RootAction uint8

const (
	RootQuit RootAction = iota + 1
	RootCommandEnter
)

var rootActions = map[string]RootAction{
	keymap.ActionQuit:         RootQuit,
	keymap.ActionCommandEnter: RootCommandEnter,
}

// CommandAction is an action of the command line.
type CommandAction uint8

const (
	CommandCancel CommandAction = iota + 1
	CommandExecute
	CommandComplete
)

var commandActions = map[string]CommandAction{
	keymap.ActionCommandCancel:   CommandCancel,
	keymap.ActionCommandExecute:  CommandExecute,
	keymap.ActionCommandComplete: CommandComplete,
}

// Keys holds the resolved table of every mode.
type Keys struct {
	Normal        *keymap.Table[PaneAction]
	Insert        *keymap.Table[PaneAction]
	Command       *keymap.Table[CommandAction]
	Root          *keymap.Table[RootAction]
	RootUnhandled *keymap.Table[RootAction]
	Split         *keymap.Table[widget.SplitAction]
}

// BuildKeys resolves the modes of r into tables.
func BuildKeys(r *keymap.Registry) (*Keys, error) {
	var k Keys
	var err error
	if k.Normal, err = keymap.Build(r, keymap.ModeNormal, paneActions, nil); err != nil {
		return nil, err
	}
	if k.Insert, err = keymap.Build(r, keymap.ModeInsert, paneActions, insertFallback); err != nil {
		return nil, err
	}
	if k.Command, err = keymap.Build(r, keymap.ModeCommand, commandActions, nil); err != nil {
		return nil, err
	}
	if k.Root, err = keymap.Build(r, keymap.ModeRoot, rootActions, nil); err != nil {
		return nil, err
	}
	if k.RootUnhandled, err = keymap.Build(r, keymap.ModeRootUnhandled, rootActions, nil); err != nil {
		return nil, err
	}
	if k.Split, err = widget.BuildSplitKeys(r); err != nil {
		return nil, err
	}
	return &k, nil
}

// LoadKeys builds tables from the default keymaps for commandKey followed
// by the keymap files and directories, which override the defaults.
func LoadKeys(commandKey string, files []string) (*Keys, error) {
	r := keymap.NewRegistry()
	if err := keymap.LoadDefaults(r, commandKey); err != nil {
		return nil, err
	}
	kms, err := keymap.LoadPaths(files)
	if err != nil {
		return nil, err
	}
	for _, km := range kms {
		if err := r.Register(km); err != nil {
			return nil, fmt.Errorf("registering keymap %q: %w", km.Name, err)
		}
	}
	return BuildKeys(r)
}

// DefaultKeys returns the tables of the default keymaps.
func DefaultKeys() *Keys {
	k, err := LoadKeys(keymap.DefaultCommandKey, nil)
	if err != nil {
		panic("editor: default keys: " + err.Error())
	}
	return k
}
