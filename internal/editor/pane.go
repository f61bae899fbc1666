package editor

import (
	"strings"

	"github.com/dshills/glyph/internal/config"
	"github.com/dshills/glyph/internal/engine/cursor"
	"github.com/dshills/glyph/internal/engine/text"
	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/input/keymap"
	"github.com/dshills/glyph/internal/renderer/core"
	"github.com/dshills/glyph/internal/renderer/grid"
	"github.com/dshills/glyph/internal/widget"
)

// Mode is the editing mode of a Pane.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeInsert
)

// String returns "NORMAL" or "INSERT".
func (m Mode) String() string {
	if m == ModeInsert {
		return "INSERT"
	}
	return "NORMAL"
}

// Pane edits one text store.
type Pane struct {
	nav  *cursor.Navigator
	mode Mode

	normal *keymap.Table[PaneAction]
	insert *keymap.Table[PaneAction]

	style    core.Style
	tabWidth int

	// top is the first line shown.
	top int
}

// PaneOption configures a Pane.
type PaneOption func(*Pane)

// WithPaneText sets the initial text.
func WithPaneText(s string) PaneOption {
	return func(p *Pane) {
		p.nav = cursor.New(text.NewBuffer(s))
	}
}

// WithTabWidth sets the number of columns between tab stops.
func WithTabWidth(n int) PaneOption {
	return func(p *Pane) {
		p.SetTabWidth(n)
	}
}

// NewPane creates an empty pane in normal mode.
func NewPane(keys *Keys, opts ...PaneOption) *Pane {
	p := &Pane{
		nav:      cursor.New(text.NewBuffer("")),
		tabWidth: config.DefaultTabWidth,
		style:    core.DefaultStyle(),
	}
	p.SetKeys(keys)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetKeys replaces the pane's key tables.
func (p *Pane) SetKeys(k *Keys) {
	p.normal = k.Normal
	p.insert = k.Insert
}

// SetTheme sets the text style.
func (p *Pane) SetTheme(t Theme) {
	p.style = t.Text
}

// SetTabWidth sets the tab stop distance. Values below 1 are ignored.
func (p *Pane) SetTabWidth(n int) {
	if n > 0 {
		p.tabWidth = n
	}
}

// Mode returns the editing mode.
func (p *Pane) Mode() Mode {
	return p.mode
}

// SetMode switches the editing mode.
func (p *Pane) SetMode(m Mode) {
	p.mode = m
}

// Navigator returns the pane's cursor.
func (p *Pane) Navigator() *cursor.Navigator {
	return p.nav
}

// Text returns the pane's text.
func (p *Pane) Text() string {
	return p.nav.Store().String()
}

// HandleEvent looks ev up in the table of the current mode.
func (p *Pane) HandleEvent(state *State, ev input.Event) (widget.ControlFlow, bool) {
	table := p.normal
	if p.mode == ModeInsert {
		table = p.insert
	}
	a, ok := table.Lookup(ev)
	if !ok {
		return widget.Continue, false
	}
	if err := p.apply(a); err != nil {
		state.Log.Warn("pane edit failed: %v", err)
		state.SetStatus(err.Error())
	}
	return widget.Continue, true
}

func (p *Pane) apply(a PaneAction) error {
	switch a.Op {
	case OpInsertMode:
		p.mode = ModeInsert
	case OpNormalMode:
		p.mode = ModeNormal
	case OpMoveUp:
		p.nav.MoveVertical(-1)
	case OpMoveDown:
		p.nav.MoveVertical(1)
	case OpMoveLeft:
		p.nav.MoveHorizontal(-1)
	case OpMoveRight:
		p.nav.MoveHorizontal(1)
	case OpMoveLineStart:
		p.nav.Home()
	case OpMoveLineEnd:
		p.nav.End()
	case OpDelete:
		return p.nav.Delete()
	case OpBackspace:
		return p.nav.Backspace()
	case OpInsert:
		return p.nav.InsertString(a.Text)
	}
	return nil
}

// Update implements widget.Widget.
func (p *Pane) Update(*State) widget.ControlFlow {
	return widget.Continue
}

// Render draws the lines around the cursor. The view scrolls vertically
// to keep the cursor line visible; lines wider than the pane are cut.
func (p *Pane) Render(buf *grid.Grid) {
	w, h := buf.Size()
	if w == 0 || h == 0 {
		return
	}
	buf.Fill(core.NewStyledCell(' ', p.style))

	store := p.nav.Store()
	cx, cy := p.nav.XY()
	if cy < p.top {
		p.top = cy
	}
	if cy >= p.top+h {
		p.top = cy - h + 1
	}

	for row := 0; row < h && p.top+row < store.LineCount(); row++ {
		line := strings.TrimSuffix(store.Line(p.top+row), "\n")
		buf.SetString(0, row, expandTabs(line, p.tabWidth), p.style)
	}

	prefix := string([]rune(store.Line(cy))[:cx])
	if x := core.StringWidth(expandTabs(prefix, p.tabWidth)); x < w {
		buf.SetCursor(x, cy-p.top)
	}
}

// expandTabs replaces each tab with spaces up to the next tab stop.
func expandTabs(s string, width int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += core.RuneWidth(r)
	}
	return b.String()
}
