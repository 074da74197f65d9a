package promptfx

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/debouncefx"
	"github.com/flinq/pfx/diagx"
	"github.com/flinq/pfx/evfx"
	"github.com/flinq/pfx/terminal"
)

// errQuit signals that the user pressed Escape; run translates it to a
// nil error (Escape terminates the prompt with success) and it exists
// only for internal signalling between the input loop and run.
var errQuit = errors.New("promptfx: quit")

type paneUpdate struct {
	index int
	pane  pfx.Pane
}

// batchQueue is an unbounded, order-preserving queue of event-group
// batches sitting in front of one component's bounded-depth-1 input
// channel. push never blocks, so a component whose input is still full
// never stalls the distribution of a batch to its siblings — it only
// grows this component's own backlog.
type batchQueue struct {
	mu    sync.Mutex
	items [][]evfx.EventGroup
	wake  chan struct{}
}

func newBatchQueue() *batchQueue {
	return &batchQueue{wake: make(chan struct{}, 1)}
}

func (q *batchQueue) push(batch []evfx.EventGroup) {
	q.mu.Lock()
	q.items = append(q.items, batch)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// pop returns the oldest pending batch, or false if the queue is
// currently empty.
func (q *batchQueue) pop() ([]evfx.EventGroup, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	next := q.items[0]
	q.items = q.items[1:]
	return next, true
}

// forwardQueue drains q into compIn one batch at a time until ctx is
// done. It is the only goroutine that can ever block on compIn, so a
// component stuck holding its depth-1 buffer full only backs up q, not
// the batchQueue.push callers feeding every component.
func forwardQueue(ctx context.Context, q *batchQueue, compIn chan<- []evfx.EventGroup) {
	for {
		batch, ok := q.pop()
		if !ok {
			select {
			case <-q.wake:
				continue
			case <-ctx.Done():
				return
			}
		}
		select {
		case compIn <- batch:
		case <-ctx.Done():
			return
		}
	}
}

// orchestrator is the prompt orchestrator: it enables raw mode, spawns
// the event operator, fans batches out to every component, merges pane
// streams tagged by component index, and redraws the terminal as panes
// arrive. A single central event loop generalized from one visual to N
// independently-paced components, with errgroup+multierr fan-out for
// the abort-on-exit bookkeeping.
type orchestrator struct {
	cfg        Config
	components []Component
	logger     *diagx.Logger
}

func newOrchestrator(cfg Config, components []Component) *orchestrator {
	return &orchestrator{cfg: cfg, components: components, logger: diagx.Default()}
}

func (o *orchestrator) run() error {
	term := resolveTerminal(o.cfg)
	panes := make([]pfx.Pane, len(o.components))
	sess, err := term.StartSession(panes)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rawEvents := make(chan evfx.RawEvent)
	groups := evfx.Start(ctx, rawEvents, evfx.Config{Delay: o.cfg.Delay})

	compIn := make([]chan []evfx.EventGroup, len(o.components))
	queues := make([]*batchQueue, len(o.components))
	compOut := make(chan paneUpdate)

	g, gctx := errgroup.WithContext(ctx)

	for i, comp := range o.components {
		i, comp := i, comp
		compIn[i] = make(chan []evfx.EventGroup, 1)
		queues[i] = newBatchQueue()
		out := make(chan pfx.Pane, 1)

		g.Go(func() error {
			defer close(out)
			return comp.Run(gctx, compIn[i], out)
		})
		g.Go(func() error {
			for {
				select {
				case p, ok := <-out:
					if !ok {
						return nil
					}
					select {
					case compOut <- paneUpdate{index: i, pane: p}:
					case <-gctx.Done():
						return nil
					}
				case <-gctx.Done():
					return nil
				}
			}
		})
		g.Go(func() error {
			forwardQueue(gctx, queues[i], compIn[i])
			return nil
		})
	}

	g.Go(func() error { return o.readInput(gctx, evfx.NewKeyReader(nil), rawEvents) })

	g.Go(func() error {
		o.watchResize(gctx, rawEvents)
		return nil
	})

	g.Go(func() error {
		return o.drawLoop(gctx, cancel, sess, groups, queues, compOut, panes)
	})

	var aggregated error
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, errQuit) {
		aggregated = multierr.Append(aggregated, err)
	}
	for _, in := range compIn {
		close(in)
	}
	return aggregated
}

// eventReader is satisfied by evfx.KeyReader; factored out so tests can
// feed a canned sequence instead of reading real stdin.
type eventReader interface {
	ReadEvent(ctx context.Context) (evfx.RawEvent, error)
}

// readInput feeds raw terminal input into rawEvents until ctx is done.
// Escape is special-cased: it is still forwarded to the operator, and
// it then ends the input loop with errQuit — Esc with no modifiers
// terminates the prompt with success.
func (o *orchestrator) readInput(ctx context.Context, reader eventReader, out chan<- evfx.RawEvent) error {
	for {
		evt, err := reader.ReadEvent(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case out <- evt:
		case <-ctx.Done():
			return nil
		}
		if kp, ok := evt.(evfx.KeyPress); ok && kp.Code == evfx.KeyEscape && kp.Modifier == evfx.ModNone {
			return errQuit
		}
	}
}

// watchResize listens for SIGWINCH, debounces the burst of signals a
// single drag-resize produces, and forwards one evfx.Resize per
// settled size into rawEvents — the same channel readInput feeds —
// so the Operator's resize-collapsing applies uniformly regardless of
// source. It also calls Resize on every component that implements
// Resizer, since a resized pane needs new dimensions for its next
// CreatePane/process call independent of the Operator's own grouping.
func (o *orchestrator) watchResize(ctx context.Context, rawEvents chan<- evfx.RawEvent) {
	raw := make(chan evfx.Resize)
	sig := terminal.NewSignalHandler()
	sig.OnResize(func() {
		width, height, err := terminal.GetStdoutSize()
		if err != nil {
			return
		}
		select {
		case raw <- evfx.Resize{Width: width, Height: height}:
		case <-ctx.Done():
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		sig.Listen(ctx)
	}()
	defer func() {
		sig.Stop()
		<-done
	}()

	debounced := debouncefx.Start(ctx, raw)
	for {
		select {
		case r, ok := <-debounced:
			if !ok {
				return
			}
			for _, comp := range o.components {
				if rz, ok := comp.(Resizer); ok {
					rz.Resize(r.Width, r.Height)
				}
			}
			select {
			case rawEvents <- r:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (o *orchestrator) drawLoop(
	ctx context.Context,
	cancel context.CancelFunc,
	sess pfx.Session,
	groups <-chan []evfx.EventGroup,
	queues []*batchQueue,
	compOut <-chan paneUpdate,
	panes []pfx.Pane,
) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case batch, ok := <-groups:
			if !ok {
				cancel()
				return nil
			}
			// push is non-blocking: a component whose input channel is
			// still full only grows its own queue, never delays
			// delivery to the other components below.
			for _, q := range queues {
				q.push(batch)
			}

		case update, ok := <-compOut:
			if !ok {
				cancel()
				return nil
			}
			panes[update.index] = update.pane
			if err := sess.Draw(panes); err != nil {
				o.logger.Error().Field("component", update.index).Err(err).Msg("terminal draw failed")
				cancel()
				return err
			}
		}
	}
}
