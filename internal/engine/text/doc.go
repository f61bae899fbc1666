// Package text holds the text being edited.
//
// Positions are offsets in Unicode scalar values (runes), not bytes. Lines
// are separated by '\n'; the newline belongs to the line it ends. There is
// always at least one line: empty text is one empty line, and text ending
// in a newline has an empty last line.
package text
