package evfx

// Key represents a single key press.
type Key struct {
	Code     KeyCode
	Modifier Modifier
	Rune     rune // set when Code == KeyRune
}

// IsPrintable reports whether the key produces a literal character that
// belongs in a KeyBuffer group — no modifier, or Shift only (shift is
// treated as no modifier for the purpose of producing the literal
// character).
func (k Key) IsPrintable() bool {
	if k.Code != KeyRune || k.Rune == 0 {
		return false
	}
	return k.Modifier == ModNone || k.Modifier == ModShift
}

// IsCancel reports whether the key is the prompt's quit key (Escape) or
// the application-level quit reserved to the example editor (Ctrl+C).
func (k Key) IsCancel() bool {
	return k.Code == KeyEscape || k.Code == KeyCtrlC
}
