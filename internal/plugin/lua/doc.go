// Package lua runs user scripts in a sandboxed gopher-lua state.
//
// Only the base, table, string, math and coroutine libraries are opened.
// io, os, debug and package are never loaded, and the base functions
// that read files or compile strings (dofile, loadfile, load, loadstring,
// require, module) are removed. Scripts reach the editor through the
// global table glyph:
//
//	glyph.insert(text)        insert text at the cursor
//	glyph.text()              the text of the focused pane
//	glyph.cursor()            line and column of the cursor, 1-based
//	glyph.message(text)       show text on the status row
//	glyph.quit()              end the program after the current frame
//	glyph.command(name, fn)   register a command-line command
//
// print writes to the status row as well. Every execution runs under a
// timeout so a runaway loop cannot freeze the UI.
package lua
