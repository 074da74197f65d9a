// Package pfx defines the narrow external-collaborator surface shared by
// every sub-package of this module: the opaque Pane value and the
// Terminal, Session and PaneFactory interfaces (the key-binding Handler
// function type lives in compfx). Everything
// else — event coalescing (evfx), the undoable Snapshot cell (cellfx),
// the three component shapes (compfx), the generic debounce utility
// (debouncefx) and the top-level orchestrator (promptfx) — is built
// against these types without knowing how a concrete terminal driver
// rasterizes a Pane into glyphs.
package pfx

// Pane is an opaque, redrawable rectangle produced by a component and
// placed at a fixed slot by the orchestrator. The core never interprets
// the bytes; a concrete Terminal implementation decides what they mean
// (raw ANSI, a styled-grapheme buffer, anything else).
type Pane interface {
	Bytes() []byte
}

// RawPane is the simplest Pane: a pre-rendered byte slice.
type RawPane []byte

func (p RawPane) Bytes() []byte { return p }

// Terminal is the external collaborator that owns the actual screen: raw
// mode, cursor visibility, and pane-to-glyph rasterization/draw. The core
// only ever calls StartSession once and Draw repeatedly.
type Terminal interface {
	// StartSession puts the terminal into the mode the session needs
	// (e.g. raw mode, cursor hidden) and returns a handle whose Draw
	// method is called once per redraw. Close restores the prior mode.
	StartSession(initial []Pane) (Session, error)
}

// Session is the live handle returned by Terminal.StartSession.
type Session interface {
	// Draw renders panes, indexed by component slot, to the screen.
	Draw(panes []Pane) error
	// Close restores the terminal to the state it was in before
	// StartSession (cursor visibility, cooked/raw mode).
	Close() error
}

// PaneFactory is implemented by any state type used inside a component.
// CreatePane is called at least once per batch the component processes.
type PaneFactory interface {
	CreatePane(width, height int) Pane
}
