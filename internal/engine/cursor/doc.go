// Package cursor implements cursor navigation over a text.Store.
//
// A Navigator tracks a cursor position in runes and a ghost position. The
// ghost remembers the column the user last chose horizontally, so moving
// up or down through a short line and back returns to the original
// column:
//
//	line 0: "abcdef"   cursor at column 4
//	line 1: "ab"       Down lands on column 2
//	line 2: "abcdef"   Down lands on column 4 again
//
// Horizontal moves, Home, End and edits update the ghost. Vertical moves
// keep it. Positions are scalar-value offsets; display width is a concern
// of the renderer.
package cursor
