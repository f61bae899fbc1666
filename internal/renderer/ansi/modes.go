package ansi

// Terminal mode sequences written around a session.

// EnterSession returns the sequences that prepare the terminal: the
// alternate screen and, when paste is true, bracketed paste.
func EnterSession(paste bool) []byte {
	b := append([]byte(nil), seqAltScreenOn...)
	if paste {
		b = append(b, seqPasteEnable...)
	}
	return b
}

// LeaveSession returns the sequences that undo EnterSession and show the
// cursor again.
func LeaveSession(paste bool) []byte {
	var b []byte
	if paste {
		b = append(b, seqPasteDisable...)
	}
	b = append(b, seqCursorShow...)
	return append(b, seqAltScreenOff...)
}
