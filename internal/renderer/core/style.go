package core

// Weight is the intensity of text. Bold and dim exclude each other on
// terminals, so they share one field.
type Weight uint8

const (
	WeightNormal Weight = iota
	WeightBold
	WeightDim
)

// String returns the weight name.
func (w Weight) String() string {
	switch w {
	case WeightBold:
		return "bold"
	case WeightDim:
		return "dim"
	}
	return "normal"
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	Weight     Weight
	Underline  bool
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{Foreground: fg}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns a new style with bold weight.
func (s Style) Bold() Style {
	s.Weight = WeightBold
	return s
}

// Dim returns a new style with dim weight.
func (s Style) Dim() Style {
	s.Weight = WeightDim
	return s
}

// WithUnderline returns a new style with underline set to u.
func (s Style) WithUnderline(u bool) Style {
	s.Underline = u
	return s
}

// Invert returns a style with foreground and background swapped.
func (s Style) Invert() Style {
	s.Foreground, s.Background = s.Background, s.Foreground
	return s
}

// IsDefault returns true if this is the default style.
func (s Style) IsDefault() bool {
	return s == Style{}
}
