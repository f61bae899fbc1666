// Package editor is the reference application built on the widget tree: a
// modal text editor with one or two panes and a command line.
//
// The tree is
//
//	Root
//	├── primary: Pane, or VSplit of two Panes
//	└── command line: TextField
//
// Root checks the reserved keys (Ctrl+Q and a modified command key)
// before the focused pane, and the unhandled keys (q and a plain command
// key) after it. Panes are modal: in normal mode keys move the cursor, in
// insert mode printable keys edit the text.
//
// Key bindings come from keymap.Registry modes resolved into typed tables
// once at startup and again on configuration reload.
package editor
