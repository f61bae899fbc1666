package key

import "strings"

// Modifier is a set of modifier keys. The bits follow the xterm modifier
// parameter minus one, so "CSI 1;5 H" carries Modifier(5-1) == ModCtrl.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
	ModMeta  Modifier = 1 << 3

	modMask = ModShift | ModAlt | ModCtrl | ModMeta
)

// modifierNames lists the modifiers in display order. short is the letter
// of the <C-x> notation; aliases are further names accepted by parsers.
var modifierNames = []struct {
	mod     Modifier
	long    string
	short   string
	aliases []string
}{
	{ModCtrl, "Ctrl", "C", []string{"control"}},
	{ModAlt, "Alt", "A", []string{"option", "opt"}},
	{ModShift, "Shift", "S", nil},
	{ModMeta, "Meta", "D", []string{"m", "cmd", "super"}},
}

// ModifierFromParam decodes an xterm modifier parameter. Values of 1 or
// less mean no modifiers; bits above Meta are dropped.
func ModifierFromParam(param int) Modifier {
	if param <= 1 {
		return ModNone
	}
	return Modifier(param-1) & modMask
}

// Has reports whether m contains any modifier of mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns names like "Ctrl+Alt"; an empty set is "".
func (m Modifier) String() string {
	var parts []string
	for _, n := range modifierNames {
		if m.Has(n.mod) {
			parts = append(parts, n.long)
		}
	}
	return strings.Join(parts, "+")
}

// ModifierFromName looks up a modifier by its long name, its letter or an
// alias, ignoring case. Unknown names give ModNone.
func ModifierFromName(name string) Modifier {
	for _, n := range modifierNames {
		if strings.EqualFold(name, n.long) || strings.EqualFold(name, n.short) {
			return n.mod
		}
		for _, a := range n.aliases {
			if strings.EqualFold(name, a) {
				return n.mod
			}
		}
	}
	return ModNone
}
