package compfx

import (
	"context"
	"testing"
	"time"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/evfx"
)

type editorState struct {
	text string
}

func (e editorState) Clone() editorState { return e }

func (e editorState) CreatePane(width, height int) pfx.Pane {
	return pfx.RawPane(e.text)
}

func appendChars(batch []evfx.EventGroup, s *editorState) error {
	for _, g := range batch {
		if kb, ok := g.(evfx.KeyBuffer); ok {
			s.text += string(kb.Chars)
		}
	}
	return nil
}

// TestSyncComponentFIFO verifies panes are produced in strict arrival
// order with no batch dropped.
func TestSyncComponentFIFO(t *testing.T) {
	state := editorState{}
	comp := NewSyncComponent[editorState](&state, appendChars, 80, 24)

	in := make(chan []evfx.EventGroup, 2)
	out := make(chan pfx.Pane, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- comp.Run(ctx, in, out) }()

	in <- []evfx.EventGroup{evfx.KeyBuffer{Chars: []rune{'h', 'i'}}}
	in <- []evfx.EventGroup{evfx.KeyBuffer{Chars: []rune{'!'}}}

	first := readPane(t, out)
	if string(first.Bytes()) != "hi" {
		t.Fatalf("first pane = %q, want %q", first.Bytes(), "hi")
	}
	second := readPane(t, out)
	if string(second.Bytes()) != "hi!" {
		t.Fatalf("second pane = %q, want %q", second.Bytes(), "hi!")
	}

	close(in)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("component did not exit after input closed")
	}
}

// TestSyncComponentAbsorbsHandlerError verifies a handler error is
// swallowed and a pane is still produced for the current state.
func TestSyncComponentAbsorbsHandlerError(t *testing.T) {
	state := editorState{text: "keep"}
	failing := func(batch []evfx.EventGroup, s *editorState) error {
		return errBoom
	}
	comp := NewSyncComponent[editorState](&state, failing, 80, 24)

	in := make(chan []evfx.EventGroup, 1)
	out := make(chan pfx.Pane, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go comp.Run(ctx, in, out)

	in <- []evfx.EventGroup{evfx.KeyBuffer{Chars: []rune{'x'}}}
	pane := readPane(t, out)
	if string(pane.Bytes()) != "keep" {
		t.Fatalf("pane = %q, want %q", pane.Bytes(), "keep")
	}
}

type fakeErr string

func (f fakeErr) Error() string { return string(f) }

var errBoom = fakeErr("boom")

func readPane(t *testing.T, out <-chan pfx.Pane) pfx.Pane {
	t.Helper()
	select {
	case p := <-out:
		return p
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for pane")
		return nil
	}
}
