package evfx

// EventGroup is the grouped alphabet one flush of the Operator's buffer
// produces. The Operator, never EventGroup, shapes the []EventGroup:
//
//   - a run of printable keys, of vertical arrows or of horizontal
//     arrows becomes one group; two adjacent Others groups always carry
//     different events, since identical consecutive events share a count
//   - VerticalCursorBuffer(0,0), HorizontalCursorBuffer(0,0) and
//     KeyBuffer(nil) never appear
//   - LastResize appears at most once, at the index where the window's
//     first resize was seen; groups split apart by a later resize stay
//     separate, so two groups of one variant can end up adjacent
type EventGroup interface {
	isEventGroup()
}

// KeyBuffer is an ordered run of printable characters typed without
// modifiers (Shift counts as unmodified for this purpose).
type KeyBuffer struct {
	Chars []rune
}

func (KeyBuffer) isEventGroup() {}

// VerticalCursorBuffer counts Up/Down arrow presses in one window.
type VerticalCursorBuffer struct {
	Up   int
	Down int
}

func (VerticalCursorBuffer) isEventGroup() {}

// HorizontalCursorBuffer counts Left/Right arrow presses in one window.
type HorizontalCursorBuffer struct {
	Left  int
	Right int
}

func (HorizontalCursorBuffer) isEventGroup() {}

// LastResize carries only the most recent resize observed in the
// window, positioned at the index the first resize would have occupied.
type LastResize struct {
	Width  int
	Height int
}

func (LastResize) isEventGroup() {}

// Others is a run-length count of consecutive identical non-key,
// non-arrow, non-resize events.
type Others struct {
	Event RawEvent
	Count int
}

func (Others) isEventGroup() {}
