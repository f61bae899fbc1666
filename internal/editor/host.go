package editor

import "errors"

var errNoPane = errors.New("no focused pane")

// host exposes the editor to scripts.
type host struct {
	root  *Root
	state *State
}

func (h *host) Insert(s string) error {
	p := h.root.FocusedPane()
	if p == nil {
		return errNoPane
	}
	return p.Navigator().InsertString(s)
}

func (h *host) Text() string {
	if p := h.root.FocusedPane(); p != nil {
		return p.Text()
	}
	return ""
}

func (h *host) Cursor() (line, col int) {
	if p := h.root.FocusedPane(); p != nil {
		col, line = p.Navigator().XY()
	}
	return line, col
}

func (h *host) Message(msg string) {
	h.state.SetStatus(msg)
}

func (h *host) Quit() {
	h.state.RequestQuit()
}
