// Package examplefx is a runnable demonstration of all three component
// shapes wired through a single orchestrator: a Sync-shaped text
// editor, a Loading-shaped "heavy" component that re-renders an
// upper-cased, artificially slow copy of whatever the editor currently
// holds, and an Evaluator-shaped filtered search box. The editor pairs
// a SyncComponent over EditorState with a LoadingComponent over a
// Snapshot (HeavyProcessor), exercising compfx's Sync/Loading shapes
// and cellfx's Snapshot cell together; NewSearchComponent pairs an
// EvaluatorComponent over an AsyncSnapshot with a debounced query
// track, exercising the remaining component shape and cell kind.
package examplefx

import (
	"fmt"
	"strings"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/evfx"
)

// EditorState is the demo's domain state: a rune buffer with a cursor
// position, rendered as a single line with a caret marker.
type EditorState struct {
	Text   []rune
	Cursor int
}

// NewEditorState returns an empty editor.
func NewEditorState() EditorState {
	return EditorState{}
}

// Clone returns a deep copy, satisfying cellfx.Cloner.
func (e EditorState) Clone() EditorState {
	cp := make([]rune, len(e.Text))
	copy(cp, e.Text)
	return EditorState{Text: cp, Cursor: e.Cursor}
}

// CreatePane renders the buffer with a caret, satisfying pfx.PaneFactory.
// width/height are accepted for interface symmetry with other sized
// renderers, unused here since the demo renders a single line.
func (e EditorState) CreatePane(width, height int) pfx.Pane {
	var b strings.Builder
	for i, r := range e.Text {
		if i == e.Cursor {
			b.WriteString("█") // caret block
		}
		b.WriteRune(r)
	}
	if e.Cursor == len(e.Text) {
		b.WriteString("█")
	}
	return pfx.RawPane(b.String())
}

func (e EditorState) String() string {
	return string(e.Text)
}

// EditHandler is the compfx.Handler for the editor's Sync component:
// printable runs insert at the cursor, Left/Right shift it, and a fixed
// set of Others (Backspace, Ctrl+A/E/U) edit or move without producing a
// literal character.
func EditHandler(batch []evfx.EventGroup, state *EditorState) error {
	for _, g := range batch {
		switch ev := g.(type) {
		case evfx.KeyBuffer:
			insertChars(state, ev.Chars)
		case evfx.HorizontalCursorBuffer:
			shiftCursor(state, ev.Right-ev.Left)
		case evfx.Others:
			applyOther(state, ev)
		}
	}
	return nil
}

func insertChars(state *EditorState, chars []rune) {
	head := append([]rune{}, state.Text[:state.Cursor]...)
	tail := append([]rune{}, state.Text[state.Cursor:]...)
	head = append(head, chars...)
	state.Text = append(head, tail...)
	state.Cursor += len(chars)
}

func shiftCursor(state *EditorState, delta int) {
	state.Cursor += delta
	if state.Cursor < 0 {
		state.Cursor = 0
	}
	if state.Cursor > len(state.Text) {
		state.Cursor = len(state.Text)
	}
}

func applyOther(state *EditorState, ev evfx.Others) {
	kp, ok := ev.Event.(evfx.KeyPress)
	if !ok {
		return
	}
	switch {
	case kp.Code == evfx.KeyBackspace && kp.Modifier == evfx.ModNone:
		for i := 0; i < ev.Count; i++ {
			eraseOne(state)
		}
	case kp.Code == evfx.KeyRune && kp.Rune == 'a' && kp.Modifier == evfx.ModCtrl:
		state.Cursor = 0
	case kp.Code == evfx.KeyRune && kp.Rune == 'e' && kp.Modifier == evfx.ModCtrl:
		state.Cursor = len(state.Text)
	case kp.Code == evfx.KeyRune && kp.Rune == 'u' && kp.Modifier == evfx.ModCtrl:
		state.Text = nil
		state.Cursor = 0
	}
}

func eraseOne(state *EditorState) {
	if state.Cursor == 0 {
		return
	}
	state.Text = append(state.Text[:state.Cursor-1], state.Text[state.Cursor:]...)
	state.Cursor--
}

// SummaryPane renders a one-line "prefix: text" status pane (the search
// demo's events track uses it to label its typing echo).
func SummaryPane(prefix string, state EditorState) pfx.Pane {
	return pfx.RawPane(fmt.Sprintf("%s: %s", prefix, state.String()))
}
