package widget

import (
	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/input/keymap"
	"github.com/dshills/glyph/internal/renderer/grid"
)

// Focus names a VSplit child.
type Focus uint8

const (
	FocusTop Focus = iota
	FocusBottom
)

// String returns "top" or "bottom".
func (f Focus) String() string {
	if f == FocusBottom {
		return "bottom"
	}
	return "top"
}

// SplitAction is an action of the split keymap mode.
type SplitAction uint8

const (
	SplitFocusUp SplitAction = iota + 1
	SplitFocusDown
)

// SplitActions maps the action names of keymap.ModeSplit to actions.
var SplitActions = map[string]SplitAction{
	keymap.ActionFocusUp:   SplitFocusUp,
	keymap.ActionFocusDown: SplitFocusDown,
}

// BuildSplitKeys resolves the split mode of r into a table.
func BuildSplitKeys(r *keymap.Registry) (*keymap.Table[SplitAction], error) {
	return keymap.Build(r, keymap.ModeSplit, SplitActions, nil)
}

// DefaultSplitKeys returns the table of the default split keymap.
func DefaultSplitKeys() *keymap.Table[SplitAction] {
	r := keymap.NewRegistry()
	if err := r.Register(keymap.DefaultSplitKeymap()); err != nil {
		panic("widget: default split keymap: " + err.Error())
	}
	t, err := BuildSplitKeys(r)
	if err != nil {
		panic("widget: default split keymap: " + err.Error())
	}
	return t
}

// SplitOption configures a VSplit.
type SplitOption func(*splitOptions)

type splitOptions struct {
	topRows    int
	bottomRows int
	keys       *keymap.Table[SplitAction]
}

// WithTopRows fixes the height of the top child. Zero or less leaves it
// unconstrained.
func WithTopRows(rows int) SplitOption {
	return func(o *splitOptions) {
		o.topRows = rows
	}
}

// WithBottomRows fixes the height of the bottom child. Zero or less leaves
// it unconstrained.
func WithBottomRows(rows int) SplitOption {
	return func(o *splitOptions) {
		o.bottomRows = rows
	}
}

// WithSplitKeys sets the table used for focus keys.
func WithSplitKeys(t *keymap.Table[SplitAction]) SplitOption {
	return func(o *splitOptions) {
		o.keys = t
	}
}

// VSplit stacks two widgets vertically. Events go to the focused child
// only, and only the focused child's cursor is shown.
type VSplit[S any] struct {
	top    Widget[S]
	bottom Widget[S]
	focus  Focus

	topRows    int
	bottomRows int
	keys       *keymap.Table[SplitAction]

	topBuf    *grid.Grid
	bottomBuf *grid.Grid
}

// NewVSplit creates a split with the top child focused.
func NewVSplit[S any](top, bottom Widget[S], opts ...SplitOption) *VSplit[S] {
	o := splitOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.keys == nil {
		o.keys = DefaultSplitKeys()
	}
	return &VSplit[S]{
		top:        top,
		bottom:     bottom,
		topRows:    max(o.topRows, 0),
		bottomRows: max(o.bottomRows, 0),
		keys:       o.keys,
		topBuf:     grid.New(0, 0),
		bottomBuf:  grid.New(0, 0),
	}
}

// Focus returns the focused side.
func (v *VSplit[S]) Focus() Focus {
	return v.focus
}

// SetFocus focuses side f.
func (v *VSplit[S]) SetFocus(f Focus) {
	v.focus = f
}

// SetKeys replaces the focus key table.
func (v *VSplit[S]) SetKeys(t *keymap.Table[SplitAction]) {
	if t != nil {
		v.keys = t
	}
}

// Focused implements Focuser.
func (v *VSplit[S]) Focused() Widget[S] {
	if v.focus == FocusBottom {
		return v.bottom
	}
	return v.top
}

// Children implements Container.
func (v *VSplit[S]) Children() []Widget[S] {
	return []Widget[S]{v.top, v.bottom}
}

// HandleEvent switches focus on the split keys and passes everything else
// to the focused child. A focus key that points past the edge is not
// handled.
func (v *VSplit[S]) HandleEvent(state S, ev input.Event) (ControlFlow, bool) {
	if action, ok := v.keys.Lookup(ev); ok {
		switch action {
		case SplitFocusUp:
			if v.focus == FocusTop {
				return Continue, false
			}
			v.focus = FocusTop
			return Continue, true
		case SplitFocusDown:
			if v.focus == FocusBottom {
				return Continue, false
			}
			v.focus = FocusBottom
			return Continue, true
		}
	}
	return v.Focused().HandleEvent(state, ev)
}

// Update updates the top child, then the bottom one.
func (v *VSplit[S]) Update(state S) ControlFlow {
	if v.top.Update(state) == Exit {
		return Exit
	}
	return v.bottom.Update(state)
}

// Rows returns the heights of the top and bottom children for a split of
// the given height.
func (v *VSplit[S]) Rows(height int) (top, bottom int) {
	switch {
	case v.topRows > 0 && v.bottomRows == 0:
		top = min(v.topRows, height)
		return top, height - top
	case v.bottomRows > 0 && v.topRows == 0:
		bottom = min(v.bottomRows, height)
		return height - bottom, bottom
	}
	return height / 2, height / 2
}

// Render draws both children and keeps the focused child's cursor.
func (v *VSplit[S]) Render(buf *grid.Grid) {
	top, bottom := v.Rows(buf.Height())

	v.topBuf.ResizeAndClear(buf.Width(), top)
	v.bottomBuf.ResizeAndClear(buf.Width(), bottom)

	v.top.Render(v.topBuf)
	v.bottom.Render(v.bottomBuf)

	buf.Blit(0, 0, v.topBuf, v.focus == FocusTop)
	buf.Blit(0, top, v.bottomBuf, v.focus == FocusBottom)
}
