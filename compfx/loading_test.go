package compfx

import (
	"context"
	"testing"
	"time"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/cellfx"
	"github.com/flinq/pfx/evfx"
)

type result string

func (r result) Clone() result { return r }

// TestLoadingSupersedes verifies submitting batch B while batch A's
// processor is awaiting cancels A (no pane for A is ever delivered) and
// B's pane is eventually published.
func TestLoadingSupersedes(t *testing.T) {
	snap := cellfx.New[result]("")
	unblockA := make(chan struct{})
	started := make(chan string, 2)

	process := func(ctx context.Context, w, h int, batch []evfx.EventGroup, cell cellfx.Cell[result]) (pfx.Pane, error) {
		label := batchLabel(batch)
		started <- label
		if label == "A" {
			select {
			case <-unblockA:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return pfx.RawPane(label), nil
	}

	comp := NewLoadingComponent[result](snap, process, 80, 24)
	in := make(chan []evfx.EventGroup, 2)
	out := make(chan pfx.Pane, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go comp.Run(ctx, in, out)

	in <- labelBatch("A")
	waitStarted(t, started, "A")

	in <- labelBatch("B")
	waitStarted(t, started, "B")
	close(unblockA)

	pane := waitForResultPane(t, out)
	if string(pane.Bytes()) != "B" {
		t.Fatalf("expected B's pane, got %q", pane.Bytes())
	}

	select {
	case p := <-out:
		if string(p.Bytes()) == "A" {
			t.Fatal("A's pane must never be delivered once superseded")
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func labelBatch(label string) []evfx.EventGroup {
	return []evfx.EventGroup{evfx.KeyBuffer{Chars: []rune(label)}}
}

func batchLabel(batch []evfx.EventGroup) string {
	if len(batch) == 0 {
		return ""
	}
	kb, ok := batch[0].(evfx.KeyBuffer)
	if !ok {
		return ""
	}
	return string(kb.Chars)
}

func waitStarted(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("started %q, want %q", got, want)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for %q to start", want)
	}
}

// waitForResultPane drains spinner frames until a real result pane
// ("A" or "B") arrives.
func waitForResultPane(t *testing.T, out <-chan pfx.Pane) pfx.Pane {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case p := <-out:
			s := string(p.Bytes())
			if s == "A" || s == "B" {
				return p
			}
		case <-deadline:
			t.Fatal("timed out waiting for result pane")
			return nil
		}
	}
}
