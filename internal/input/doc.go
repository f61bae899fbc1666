// Package input turns terminal bytes into events for the widget tree.
//
// The pipeline has three stages, each in its own subpackage:
//
//   - reader: a background goroutine that reads fixed-size chunks from the
//     terminal and hands them to the frame loop over a bounded channel
//   - decoder: converts byte chunks into key and text events, including
//     VT and xterm escape sequences and bracketed paste
//   - keymap: per-mode tables that translate key events into the semantic
//     actions widgets act on
//
// This package holds the Event type shared by all three.
package input
