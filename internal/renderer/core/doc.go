// Package core provides the value types shared by the grid, the encoder and
// the widgets: colors, styles and cells.
package core
