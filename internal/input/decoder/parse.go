package decoder

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/glyph/internal/input"
	"github.com/dshills/glyph/internal/input/key"
)

const esc = 0x1b

var (
	pasteStart = []byte("\x1b[200~")
	pasteEnd   = []byte("\x1b[201~")
)

type status uint8

const (
	statusOK status = iota
	statusIncomplete
	statusInvalid
)

// vtKeys maps the numeric prefix of "CSI n ~" sequences. 16 is unassigned.
var vtKeys = map[string]key.Key{
	"1":  key.KeyHome,
	"2":  key.KeyInsert,
	"3":  key.KeyDelete,
	"4":  key.KeyEnd,
	"5":  key.KeyPageUp,
	"6":  key.KeyPageDown,
	"7":  key.KeyHome,
	"8":  key.KeyEnd,
	"11": key.KeyF1,
	"12": key.KeyF2,
	"13": key.KeyF3,
	"14": key.KeyF4,
	"15": key.KeyF5,
	"17": key.KeyF6,
	"18": key.KeyF7,
	"19": key.KeyF8,
	"20": key.KeyF9,
	"21": key.KeyF10,
}

// letterKey maps the final byte of xterm "CSI ... letter" and SS3 sequences.
func letterKey(b byte) key.Key {
	switch b {
	case 'A':
		return key.KeyUp
	case 'B':
		return key.KeyDown
	case 'C':
		return key.KeyRight
	case 'D':
		return key.KeyLeft
	case 'F':
		return key.KeyEnd
	case 'H':
		return key.KeyHome
	case 'P':
		return key.KeyF1
	case 'Q':
		return key.KeyF2
	case 'R':
		return key.KeyF3
	case 'S':
		return key.KeyF4
	}
	return key.KeyNone
}

// parseOne decodes the first event at the start of data and reports how many
// bytes it spans. Invalid input always consumes at least one byte.
func parseOne(data []byte) (input.Event, int, status) {
	if data[0] == esc {
		return parseEscape(data)
	}
	return parsePlain(data)
}

// parsePlain decodes a control byte or a single UTF-8 scalar value.
func parsePlain(data []byte) (input.Event, int, status) {
	b := data[0]
	switch {
	case b == '\t':
		return keyEvent(key.NewSpecialEvent(key.KeyTab, key.ModNone)), 1, statusOK
	case b == '\n', b == '\r':
		return keyEvent(key.NewSpecialEvent(key.KeyReturn, key.ModNone)), 1, statusOK
	case b == 0x7f:
		return keyEvent(key.NewSpecialEvent(key.KeyBackspace, key.ModNone)), 1, statusOK
	case b < esc:
		// 0x01 is Ctrl+A, 0x08 is Ctrl+H, 0x11 is Ctrl+Q, 0x00 is Ctrl+@.
		return keyEvent(key.NewRuneEvent(rune('@'+b), key.ModCtrl)), 1, statusOK
	case b < 0x20:
		return input.Event{}, 1, statusInvalid
	case b < utf8.RuneSelf:
		return keyEvent(key.NewRuneEvent(rune(b), key.ModNone)), 1, statusOK
	}

	if !utf8.FullRune(data) {
		return input.Event{}, 0, statusIncomplete
	}
	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError && size <= 1 {
		return input.Event{}, 1, statusInvalid
	}
	return keyEvent(key.NewRuneEvent(r, key.ModNone)), size, statusOK
}

// parseEscape decodes a sequence starting with ESC.
func parseEscape(data []byte) (input.Event, int, status) {
	if len(data) < 2 {
		return input.Event{}, 0, statusIncomplete
	}

	switch data[1] {
	case esc:
		return keyEvent(key.NewSpecialEvent(key.KeyEscape, key.ModNone)), 2, statusOK
	case '[':
		return parseCSI(data)
	case 'O':
		return parseSS3(data)
	}

	ev, n, st := parsePlain(data[1:])
	switch st {
	case statusIncomplete:
		return input.Event{}, 0, statusIncomplete
	case statusInvalid:
		return input.Event{}, n + 1, statusInvalid
	}
	ev.Key.Modifiers |= key.ModAlt
	return ev, n + 1, statusOK
}

// parseCSI decodes "ESC [ params final" in VT ("~") or xterm (letter) style,
// and bracketed paste.
func parseCSI(data []byte) (input.Event, int, status) {
	i := 2
	for i < len(data) && data[i] >= 0x20 && data[i] <= 0x3f {
		i++
	}
	if i >= len(data) {
		return input.Event{}, 0, statusIncomplete
	}

	final := data[i]
	if final < 0x40 || final > 0x7e {
		// Not a sequence terminator: drop what was scanned, keep the byte.
		return input.Event{}, i, statusInvalid
	}
	params := data[2:i]
	n := i + 1

	if final == '~' {
		if string(params) == "200" {
			return parsePaste(data, n)
		}
		return vtSequence(params, n)
	}
	return xtermSequence(final, params, n)
}

func vtSequence(params []byte, n int) (input.Event, int, status) {
	code, mods := string(params), key.ModNone
	if idx := strings.IndexByte(code, ';'); idx >= 0 {
		var ok bool
		if mods, ok = parseModifierParam(code[idx+1:]); !ok {
			return input.Event{}, n, statusInvalid
		}
		code = code[:idx]
	}

	k, ok := vtKeys[code]
	if !ok {
		return input.Event{}, n, statusInvalid
	}
	return keyEvent(key.NewSpecialEvent(k, mods)), n, statusOK
}

func xtermSequence(final byte, params []byte, n int) (input.Event, int, status) {
	k := letterKey(final)
	if k == key.KeyNone {
		return input.Event{}, n, statusInvalid
	}

	modPart := string(params)
	if idx := strings.LastIndexByte(modPart, ';'); idx >= 0 {
		modPart = modPart[idx+1:]
	}

	mods := key.ModNone
	if modPart != "" {
		var ok bool
		if mods, ok = parseModifierParam(modPart); !ok {
			return input.Event{}, n, statusInvalid
		}
	}
	return keyEvent(key.NewSpecialEvent(k, mods)), n, statusOK
}

// parseSS3 decodes "ESC O letter", sent for cursor keys in application mode.
func parseSS3(data []byte) (input.Event, int, status) {
	if len(data) < 3 {
		return input.Event{}, 0, statusIncomplete
	}
	k := letterKey(data[2])
	if k == key.KeyNone {
		return input.Event{}, 3, statusInvalid
	}
	return keyEvent(key.NewSpecialEvent(k, key.ModNone)), 3, statusOK
}

// parsePaste collects text up to the bracketed paste terminator. start is the
// offset just past the opening sequence.
func parsePaste(data []byte, start int) (input.Event, int, status) {
	end := bytes.Index(data[start:], pasteEnd)
	if end < 0 {
		return input.Event{}, 0, statusIncomplete
	}
	text := normalizePaste(data[start : start+end])
	return input.TextEvent(text), start + end + len(pasteEnd), statusOK
}

// parseModifierParam decodes the xterm modifier parameter, which must fit a byte.
func parseModifierParam(s string) (key.Modifier, bool) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return key.ModNone, false
	}
	return key.ModifierFromParam(int(v)), true
}

// resolvePartial decides what an unfinished sequence means once no more bytes
// are coming.
func resolvePartial(data []byte) (input.Event, bool) {
	switch {
	case len(data) == 1 && data[0] == esc:
		return keyEvent(key.NewSpecialEvent(key.KeyEscape, key.ModNone)), true
	case len(data) == 2 && data[0] == esc && (data[1] == '[' || data[1] == 'O'):
		return keyEvent(key.NewRuneEvent(rune(data[1]), key.ModAlt)), true
	case bytes.HasPrefix(data, pasteStart):
		return input.TextEvent(normalizePaste(data[len(pasteStart):])), true
	}
	return input.Event{}, false
}

// normalizePaste converts terminal line endings to "\n" and drops invalid UTF-8.
func normalizePaste(b []byte) string {
	s := strings.ToValidUTF8(string(b), "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func keyEvent(k key.Event) input.Event {
	return input.KeyEvent(k)
}
