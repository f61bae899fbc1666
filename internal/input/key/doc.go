// Package key provides key event types and parsing for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: the modifier bit set (Shift, Alt, Ctrl, Meta)
//   - Event: a single key press with its modifiers
//
// Modifier bits follow the xterm parameter layout, so the numeric parameter
// N of a "CSI 1;N A" sequence decodes directly as Modifier(N-1).
//
// # Key Specifications
//
// Key specifications used by keymap files can be written as:
//
//   - Simple keys: "a", "A", ":", "Return", "Escape"
//   - With modifiers: "Ctrl+Q", "Alt+F4", "Ctrl+Up"
//   - Vim-style: "<C-q>", "<A-f>", "<C-Up>", "<CR>", "<Esc>"
//
// Ctrl combinations with ASCII letters are normalized to upper case, which is
// how the terminal decoder reports them (0x11 decodes as Ctrl+'Q').
package key
