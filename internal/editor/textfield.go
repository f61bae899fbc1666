package editor

import (
	"strings"

	"github.com/dshills/glyph/internal/engine/cursor"
	"github.com/dshills/glyph/internal/engine/text"
	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/input/key"
	"github.com/dshills/glyph/internal/renderer/core"
	"github.com/dshills/glyph/internal/renderer/grid"
	"github.com/dshills/glyph/internal/widget"
)

// TextField is a single-line input.
type TextField struct {
	nav   *cursor.Navigator
	style core.Style
}

// NewTextField creates an empty field.
func NewTextField() *TextField {
	return &TextField{
		nav:   cursor.New(text.NewBuffer("")),
		style: core.DefaultStyle(),
	}
}

// Value returns the field's text.
func (f *TextField) Value() string {
	return f.nav.Store().String()
}

// Clear empties the field.
func (f *TextField) Clear() {
	f.nav = cursor.New(text.NewBuffer(""))
}

// SetValue replaces the text and puts the cursor at its end.
func (f *TextField) SetValue(s string) {
	f.nav = cursor.New(text.NewBuffer(s))
	f.nav.SetPos(f.nav.Store().Len())
}

// Cursor returns the cursor position in runes.
func (f *TextField) Cursor() int {
	return f.nav.Pos()
}

// SetStyle sets the text style.
func (f *TextField) SetStyle(s core.Style) {
	f.style = s
}

// HandleEvent edits the field on unmodified keys and pasted text. Pasted
// line breaks become spaces.
func (f *TextField) HandleEvent(state *State, ev input.Event) (widget.ControlFlow, bool) {
	if ev.Kind == input.EventText {
		s := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(ev.Text)
		if err := f.nav.InsertString(s); err != nil {
			state.Log.Warn("command line edit failed: %v", err)
		}
		return widget.Continue, true
	}

	k := ev.Key
	if k.IsModified() || (!k.IsRune() && k.Modifiers != key.ModNone) {
		return widget.Continue, false
	}

	var err error
	switch k.Key {
	case key.KeyRune:
		if !k.IsPrintable() {
			return widget.Continue, false
		}
		err = f.nav.InsertRune(k.Rune)
	case key.KeyDelete:
		err = f.nav.Delete()
	case key.KeyBackspace:
		err = f.nav.Backspace()
	case key.KeyLeft:
		f.nav.MoveHorizontal(-1)
	case key.KeyRight:
		f.nav.MoveHorizontal(1)
	case key.KeyHome:
		f.nav.SetPos(0)
	case key.KeyEnd:
		f.nav.SetPos(f.nav.Store().Len())
	default:
		return widget.Continue, false
	}
	if err != nil {
		state.Log.Warn("command line edit failed: %v", err)
	}
	return widget.Continue, true
}

// Update implements widget.Widget.
func (f *TextField) Update(*State) widget.ControlFlow {
	return widget.Continue
}

// Render draws the text on the first row with the cursor after it when it
// fits.
func (f *TextField) Render(buf *grid.Grid) {
	w, h := buf.Size()
	if w == 0 || h == 0 {
		return
	}
	buf.FillRow(0, 0, core.NewStyledCell(' ', f.style))
	value := f.Value()
	buf.SetString(0, 0, value, f.style)

	x := core.StringWidth(string([]rune(value)[:f.nav.Pos()]))
	if x < w {
		buf.SetCursor(x, 0)
	}
}
