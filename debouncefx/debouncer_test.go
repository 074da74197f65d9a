package debouncefx

import (
	"context"
	"testing"
	"time"
)

type size struct{ w, h int }

// TestDebouncerEmitsLastValue verifies feeding (80,24), (80,25),
// (100,30) within the debounce window emits (100,30) exactly once.
func TestDebouncerEmitsLastValue(t *testing.T) {
	in := make(chan size)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := Start(ctx, in, Config{Delay: 20 * time.Millisecond})

	in <- size{80, 24}
	in <- size{80, 25}
	in <- size{100, 30}

	select {
	case got := <-out:
		if got != (size{100, 30}) {
			t.Fatalf("got %+v, want {100 30}", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for debounced value")
	}

	select {
	case extra := <-out:
		t.Fatalf("unexpected second emission: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

// TestDebouncerFlushesOnClose verifies a pending value is emitted once
// when the input channel closes.
func TestDebouncerFlushesOnClose(t *testing.T) {
	in := make(chan size)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := StartWith(ctx, in, WithDelay(time.Hour))

	in <- size{1, 1}
	close(in)

	select {
	case got := <-out:
		if got != (size{1, 1}) {
			t.Fatalf("got %+v, want {1 1}", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for flush-on-close")
	}

	if _, ok := <-out; ok {
		t.Fatal("expected output channel to close")
	}
}

// TestDebouncerEmptyProducesNothing verifies closing input with no
// pending value produces no output.
func TestDebouncerEmptyProducesNothing(t *testing.T) {
	in := make(chan size)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := Start(ctx, in, Config{Delay: 10 * time.Millisecond})
	close(in)

	if _, ok := <-out; ok {
		t.Fatal("expected no emission and a closed channel")
	}
}
