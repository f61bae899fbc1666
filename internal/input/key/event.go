package key

import (
	"strings"
	"unicode"
)

// Event represents a single key press.
//
// Event is comparable and is used directly as a map key by keymap tables.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Ctrl returns the event a terminal reports for Ctrl plus the given letter.
func Ctrl(r rune) Event {
	return NewRuneEvent(unicode.ToUpper(r), ModCtrl)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune
}

// IsPrintable returns true if this is a printable character.
func (e Event) IsPrintable() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if any modifier is pressed.
// For character events Shift alone is not considered a modifier, since it
// already changed the character itself.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// String returns a readable form such as "a", "Ctrl+Q" or "Alt+Up".
func (e Event) String() string {
	var name string
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			name = "Space"
		} else {
			name = string(e.Rune)
		}
	default:
		name = e.Key.String()
	}
	if e.Modifiers == ModNone {
		return name
	}
	return e.Modifiers.String() + "+" + name
}

// vimNames are the bracketed names that differ from Key.String.
var vimNames = map[Key]string{
	KeyEscape:    "Esc",
	KeyReturn:    "CR",
	KeyBackspace: "BS",
	KeyDelete:    "Del",
}

// VimString returns the bracketed notation Parse reads back, such as
// "<C-q>" or "<C-Up>". Unmodified runes stay bare: "a", "A".
func (e Event) VimString() string {
	if e.IsRune() && !e.IsModified() {
		switch e.Rune {
		case ' ':
			return "<Space>"
		case '<':
			return "<lt>"
		}
		return string(e.Rune)
	}

	var b strings.Builder
	b.WriteByte('<')
	for _, n := range modifierNames {
		// Shift is already part of a rune.
		if e.Modifiers.Has(n.mod) && (n.mod != ModShift || !e.IsRune()) {
			b.WriteString(n.short)
			b.WriteByte('-')
		}
	}
	switch name, ok := vimNames[e.Key]; {
	case e.IsRune():
		b.WriteString(strings.ToLower(string(e.Rune)))
	case ok:
		b.WriteString(name)
	default:
		b.WriteString(e.Key.String())
	}
	b.WriteByte('>')
	return b.String()
}
