package evfx

import (
	"context"
	"strings"
	"testing"
)

func TestKeyReaderRegularAndEscape(t *testing.T) {
	kr := NewKeyReader(strings.NewReader("a\x1b\x1b[A"))
	ctx := context.Background()

	evt, err := kr.ReadEvent(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := evt.(KeyPress); !ok || got.Code != KeyRune || got.Rune != 'a' {
		t.Fatalf("got %#v, want printable 'a'", evt)
	}

	evt, err = kr.ReadEvent(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := evt.(KeyPress); !ok || got.Code != KeyEscape {
		t.Fatalf("got %#v, want Escape", evt)
	}

	evt, err = kr.ReadEvent(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := evt.(KeyPress); !ok || got.Code != KeyArrowUp {
		t.Fatalf("got %#v, want ArrowUp", evt)
	}
}

func TestKeyReaderEOF(t *testing.T) {
	kr := NewKeyReader(strings.NewReader(""))
	_, err := kr.ReadEvent(context.Background())
	if err == nil {
		t.Fatal("expected error on empty input")
	}
}
