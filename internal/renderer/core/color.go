package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ErrUnknownColor is returned by ParseColor for names it cannot resolve.
var ErrUnknownColor = errors.New("unknown color")

// Color is one of the eight ANSI palette colors or the terminal default.
type Color uint8

// Palette colors. The zero value is the terminal default.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

var colorNames = [...]string{
	ColorDefault: "default",
	ColorBlack:   "black",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorBlue:    "blue",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorWhite:   "white",
}

// IsDefault returns true if this is the terminal's default color.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}

// Index returns the ANSI palette index 0-7, used as the last digit of the
// SGR color codes. It returns 9, the SGR "default" digit, for ColorDefault.
func (c Color) Index() int {
	if c == ColorDefault || c > ColorWhite {
		return 9
	}
	return int(c - ColorBlack)
}

// String returns the color name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", c)
}

// ParseColor resolves a color name. The eight palette names are accepted
// directly. Any other name or "#rrggbb" value tcell knows is folded onto the
// nearest palette entry: palette indexes 0-15 wrap to 0-7, RGB colors keep
// one bit per channel.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ColorDefault, nil
	}
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}

	tc := tcell.GetColor(name)
	if tc == tcell.ColorDefault || !tc.Valid() {
		return ColorDefault, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return fromTcell(tc), nil
}

func fromTcell(tc tcell.Color) Color {
	if tc.IsRGB() {
		r, g, b := tc.RGB()
		idx := 0
		if r >= 128 {
			idx |= 1
		}
		if g >= 128 {
			idx |= 2
		}
		if b >= 128 {
			idx |= 4
		}
		return ColorBlack + Color(idx)
	}
	idx := int(tc-tcell.ColorValid) % 8
	return ColorBlack + Color(idx)
}
