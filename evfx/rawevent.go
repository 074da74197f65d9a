package evfx

// RawEvent is the variant the Operator consumes: a key press, a resize,
// or an "other" catch-all carrying the verbatim input. Equality is
// structural and events are small and cheaply cloneable — expressed
// here as a Go sum type via a sealed interface, with a value-typed
// Equal method backing the Operator's run-length counting of
// consecutive "other" events.
type RawEvent interface {
	isRawEvent()
	Equal(other RawEvent) bool
}

// KeyPress is the key-press RawEvent variant.
type KeyPress struct {
	Code     KeyCode
	Modifier Modifier
	Kind     KeyEventKind
	State    KeyEventState
	Rune     rune
}

func (KeyPress) isRawEvent() {}

func (k KeyPress) Equal(other RawEvent) bool {
	o, ok := other.(KeyPress)
	return ok && o == k
}

// Key projects a KeyPress down to the Key the grouping algorithm and
// consumers outside the Operator work with.
func (k KeyPress) Key() Key {
	return Key{Code: k.Code, Modifier: k.Modifier, Rune: k.Rune}
}

// Resize is the terminal-resize RawEvent variant.
type Resize struct {
	Width  int
	Height int
}

func (Resize) isRawEvent() {}

func (r Resize) Equal(other RawEvent) bool {
	o, ok := other.(Resize)
	return ok && o == r
}

// Other carries any RawEvent the core does not otherwise distinguish
// (e.g. mouse or paste-mode bytes, which are explicitly out of scope
// but still have to flow through as an opaque pass-through so the
// Operator can run-length count it).
type Other struct {
	// Raw is the verbatim input, compared with reflect-free ==
	// when Raw's dynamic type is comparable; non-comparable payloads
	// are never equal to one another (never coalesced), which is
	// conservative but never wrong.
	Raw any
}

func (Other) isRawEvent() {}

func (o Other) Equal(other RawEvent) bool {
	t, ok := other.(Other)
	if !ok {
		return false
	}
	return isComparable(o.Raw) && isComparable(t.Raw) && o.Raw == t.Raw
}

func isComparable(v any) bool {
	defer func() { recover() }()
	return v == v //nolint:staticcheck // intentional: panics for non-comparable dynamic types, recovered above
}
