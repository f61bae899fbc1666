package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// runeNames are key names that stand for printable runes, mostly ones
// that would clash with the notation itself.
var runeNames = map[string]rune{
	"space":  ' ',
	"lt":     '<',
	"gt":     '>',
	"bar":    '|',
	"bslash": '\\',
	"minus":  '-',
	"plus":   '+',
}

// Parse reads a key in one of two notations:
//
//	bracketed: "<C-q>", "<A-f>", "<C-Up>", "<CR>", "<Esc>", "<C-->"
//	plus:      "Ctrl+Q", "alt+shift+x", "Ctrl++"
//
// Anything else names a single key: "a", ":", "Tab", "Space", "F5".
// Bracketed modifiers use their letters C, A, S and D.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return Event{}, ErrEmptySpec
	case len(spec) > 2 && spec[0] == '<' && spec[len(spec)-1] == '>':
		return parseNotation(spec[1:len(spec)-1], '-', true)
	case len(spec) > 1 && strings.Contains(spec, "+"):
		return parseNotation(spec, '+', false)
	}
	return keyEvent(spec, ModNone)
}

// parseNotation splits s on sep into modifier names and a final key. A
// doubled separator at the end is the separator key itself.
func parseNotation(s string, sep byte, letters bool) (Event, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Event{}, ErrInvalidSpec
	}

	var keyPart string
	if n := len(s); n >= 2 && s[n-1] == sep && s[n-2] == sep {
		keyPart, s = string(sep), s[:n-2]
	} else {
		i := strings.LastIndexByte(s, sep)
		keyPart, s = s[i+1:], s[:max(i, 0)]
	}

	var mods Modifier
	if s != "" {
		for _, name := range strings.Split(s, string(sep)) {
			name = strings.TrimSpace(name)
			mod := ModifierFromName(name)
			if mod == ModNone || (letters && len(name) != 1) {
				return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, name)
			}
			mods |= mod
		}
	}
	return keyEvent(keyPart, mods)
}

func keyEvent(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrInvalidSpec
	}
	if r, ok := runeNames[strings.ToLower(name)]; ok {
		return NewRuneEvent(r, mods), nil
	}

	if runes := []rune(name); len(runes) == 1 {
		r := runes[0]
		// Terminals report Ctrl+letter as the upper-case letter.
		if mods.Has(ModCtrl) && r < unicode.MaxASCII && unicode.IsLetter(r) {
			r = unicode.ToUpper(r)
		}
		return NewRuneEvent(r, mods), nil
	}

	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// MustParse is Parse for keys known to be valid. It panics on error.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic("key: " + spec + ": " + err.Error())
	}
	return ev
}
