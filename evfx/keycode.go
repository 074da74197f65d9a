package evfx

import "fmt"

// KeyCode identifies a keyboard key, independent of any modifier held
// while it was pressed. Trimmed to the keys the Operator's grouping
// algorithm actually distinguishes: printable runes, the four arrows,
// and everything else (which collapses into the Others bucket by
// identity, not by code).
type KeyCode int

const (
	KeyUnknown KeyCode = iota

	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace
	KeyDelete

	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight

	// KeyRune marks a key that carries a printable rune in Key.Rune.
	// Letters, digits and punctuation are all represented this way
	// rather than as one enum value per character.
	KeyRune

	KeyCtrlC
	KeyCtrlD
)

func (k KeyCode) String() string {
	switch k {
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeyBackspace:
		return "Backspace"
	case KeyTab:
		return "Tab"
	case KeySpace:
		return "Space"
	case KeyDelete:
		return "Delete"
	case KeyArrowUp:
		return "Up"
	case KeyArrowDown:
		return "Down"
	case KeyArrowLeft:
		return "Left"
	case KeyArrowRight:
		return "Right"
	case KeyRune:
		return "Rune"
	case KeyCtrlC:
		return "Ctrl+C"
	case KeyCtrlD:
		return "Ctrl+D"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// IsArrow reports whether the key is one of the four arrow keys.
func (k KeyCode) IsArrow() bool {
	return k >= KeyArrowUp && k <= KeyArrowRight
}
