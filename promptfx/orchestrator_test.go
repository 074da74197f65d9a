package promptfx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/diagx"
	"github.com/flinq/pfx/evfx"
)

type fakeSession struct {
	mu    sync.Mutex
	draws [][]pfx.Pane
}

func (s *fakeSession) Draw(panes []pfx.Pane) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]pfx.Pane, len(panes))
	copy(cp, panes)
	s.draws = append(s.draws, cp)
	return nil
}

func (s *fakeSession) Close() error { return nil }

type fakeTerminal struct {
	sess *fakeSession
}

func (f *fakeTerminal) StartSession(initial []pfx.Pane) (pfx.Session, error) {
	return f.sess, nil
}

// echoComponent publishes back a pane containing the concatenated
// printable characters of every batch it receives.
type echoComponent struct{}

func (echoComponent) Run(ctx context.Context, in <-chan []evfx.EventGroup, out chan<- pfx.Pane) error {
	var buf bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-in:
			if !ok {
				return nil
			}
			for _, g := range batch {
				if kb, ok := g.(evfx.KeyBuffer); ok {
					buf.WriteString(string(kb.Chars))
				}
			}
			select {
			case out <- pfx.RawPane(buf.String()):
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// TestOrchestratorDrawsComponentPanes verifies a batch fanned out to a
// single Sync-shaped component results in that component's pane being
// drawn through the session.
func TestOrchestratorDrawsComponentPanes(t *testing.T) {
	sess := &fakeSession{}
	term := &fakeTerminal{sess: sess}

	o := newOrchestrator(Config{Delay: 5 * time.Millisecond, Terminal: term}, []Component{echoComponent{}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rawEvents := make(chan evfx.RawEvent)
	groups := evfx.Start(ctx, rawEvents, evfx.Config{Delay: 5 * time.Millisecond})
	compIn := []chan []evfx.EventGroup{make(chan []evfx.EventGroup, 1)}
	queues := []*batchQueue{newBatchQueue()}
	compOut := make(chan paneUpdate, 1)
	panes := make([]pfx.Pane, 1)

	go forwardQueue(ctx, queues[0], compIn[0])

	go func() {
		out := make(chan pfx.Pane, 1)
		go o.components[0].Run(ctx, compIn[0], out)
		for p := range out {
			compOut <- paneUpdate{index: 0, pane: p}
		}
	}()

	done := make(chan error, 1)
	go func() { done <- o.drawLoop(ctx, cancel, sess, groups, queues, compOut, panes) }()

	rawEvents <- evfx.KeyPress{Code: evfx.KeyRune, Rune: 'h'}
	rawEvents <- evfx.KeyPress{Code: evfx.KeyRune, Rune: 'i'}

	deadline := time.After(time.Second)
	for {
		sess.mu.Lock()
		n := len(sess.draws)
		var last []pfx.Pane
		if n > 0 {
			last = sess.draws[n-1]
		}
		sess.mu.Unlock()
		if n > 0 && len(last) == 1 && last[0] != nil && string(last[0].Bytes()) == "hi" {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for draw; saw %d draws", n)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// TestOrchestratorStalledComponentDoesNotBlockSiblings verifies that
// when one component's input channel is never drained beyond its
// depth-1 buffer, batches still keep reaching a sibling component
// without delay.
func TestOrchestratorStalledComponentDoesNotBlockSiblings(t *testing.T) {
	sess := &fakeSession{}
	groups := make(chan []evfx.EventGroup)
	queues := []*batchQueue{newBatchQueue(), newBatchQueue()}
	panes := make([]pfx.Pane, 2)
	compOut := make(chan paneUpdate, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	o := &orchestrator{logger: diagx.Default()}

	// Component 0 never reads from its input at all: forwardQueue fills
	// the depth-1 buffer once and then blocks forever trying to send
	// the next batch.
	stallIn := make(chan []evfx.EventGroup, 1)
	go forwardQueue(ctx, queues[0], stallIn)

	// Component 1 actively drains and reports one paneUpdate per batch.
	liveIn := make(chan []evfx.EventGroup, 1)
	go forwardQueue(ctx, queues[1], liveIn)
	go func() {
		n := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-liveIn:
				n++
				select {
				case compOut <- paneUpdate{index: 1, pane: pfx.RawPane(fmt.Sprint(n))}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	done := make(chan error, 1)
	go func() { done <- o.drawLoop(ctx, cancel, sess, groups, queues, compOut, panes) }()

	const want = 5
	for i := 0; i < want; i++ {
		select {
		case groups <- []evfx.EventGroup{evfx.KeyBuffer{Chars: []rune{'x'}}}:
		case <-time.After(time.Second):
			t.Fatalf("distribution stalled sending batch %d, blocked sibling delivery", i)
		}
	}

	deadline := time.After(time.Second)
	for {
		sess.mu.Lock()
		n := len(sess.draws)
		var last []pfx.Pane
		if n > 0 {
			last = sess.draws[n-1]
		}
		sess.mu.Unlock()
		if n > 0 && last[1] != nil && string(last[1].Bytes()) == fmt.Sprint(want) {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for component 1's %dth draw; saw %d draws", want, n)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// TestOrchestratorQuitsOnEscape verifies an Escape key press ends the
// input loop with the internal quit sentinel, which run() treats as a
// clean (nil-error) termination.
func TestOrchestratorQuitsOnEscape(t *testing.T) {
	sess := &fakeSession{}
	term := &fakeTerminal{sess: sess}
	o := newOrchestrator(Config{Delay: 5 * time.Millisecond, Terminal: term}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan evfx.RawEvent, 1)
	go func() {
		for range out {
		}
	}()

	reader := &fixedReader{events: []evfx.RawEvent{evfx.KeyPress{Code: evfx.KeyEscape}}}
	done := make(chan error, 1)
	go func() { done <- o.readInput(ctx, reader, out) }()

	select {
	case err := <-done:
		if err != errQuit {
			t.Fatalf("expected errQuit, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for quit")
	}
}

// fixedReader replays a canned sequence of RawEvents, then returns io.EOF.
type fixedReader struct {
	events []evfx.RawEvent
	i      int
}

func (r *fixedReader) ReadEvent(ctx context.Context) (evfx.RawEvent, error) {
	if r.i >= len(r.events) {
		return nil, io.EOF
	}
	evt := r.events[r.i]
	r.i++
	return evt, nil
}
