package compfx

import (
	"context"
	"sync"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/cellfx"
	"github.com/flinq/pfx/diagx"
	"github.com/flinq/pfx/evfx"
)

// evalState names the three states of the evaluator's state machine.
type evalState int

const (
	evalIdle evalState = iota
	evalProcessQuery
	evalProcessEvents
)

// QueryProcessor is the query-track twin of Processor.
type QueryProcessor[S cellfx.Cloner[S]] func(ctx context.Context, width, height int, query string, cell cellfx.Cell[S]) (pfx.Pane, error)

// EvaluatorComponent is the two-track component shape: it listens on a
// query channel and an event channel at once, with queries always
// preempting events. Idle/ProcessQuery/ProcessEvents states with a
// FIFO pending queue, backed by versionedTask for abort/supersession.
type EvaluatorComponent[S cellfx.Cloner[S]] struct {
	cell          cellfx.Cell[S]
	processEvents Processor[S]
	processQuery  QueryProcessor[S]
	width, height int
	spinner       *Spinner
	task          versionedTask
	logger        *diagx.Logger

	mu      sync.Mutex
	state   evalState
	pending [][]evfx.EventGroup
}

// NewEvaluatorComponent creates an EvaluatorComponent over cell.
func NewEvaluatorComponent[S cellfx.Cloner[S]](
	cell cellfx.Cell[S],
	processEvents Processor[S],
	processQuery QueryProcessor[S],
	width, height int,
) *EvaluatorComponent[S] {
	return &EvaluatorComponent[S]{
		cell:          cell,
		processEvents: processEvents,
		processQuery:  processQuery,
		width:         width,
		height:        height,
		spinner:       NewSpinner(),
		logger:        diagx.Default(),
		state:         evalIdle,
	}
}

// Run listens on queries and events simultaneously, enforcing query
// precedence over events, until both channels close or ctx is done.
func (c *EvaluatorComponent[S]) Run(ctx context.Context, queries <-chan string, events <-chan []evfx.EventGroup, out chan<- pfx.Pane) error {
	var wg sync.WaitGroup
	defer func() {
		c.task.abort()
		wg.Wait()
	}()

	queriesOpen, eventsOpen := true, true
	for queriesOpen || eventsOpen {
		select {
		case <-ctx.Done():
			return nil

		case q, ok := <-queries:
			if !ok {
				queriesOpen = false
				queries = nil
				continue
			}
			c.onQuery(ctx, q, out, &wg)

		case b, ok := <-events:
			if !ok {
				eventsOpen = false
				events = nil
				continue
			}
			c.onEvents(ctx, b, out, &wg)
		}

		c.drainPending(ctx, out, &wg)
	}
	return nil
}

func (c *EvaluatorComponent[S]) onQuery(ctx context.Context, q string, out chan<- pfx.Pane, wg *sync.WaitGroup) {
	c.mu.Lock()
	wasRunning := c.state != evalIdle
	c.state = evalProcessQuery
	c.pending = nil
	c.mu.Unlock()

	if wasRunning {
		c.cell.Rollback()
	}
	c.launch(ctx, out, wg, func(ctx context.Context) (pfx.Pane, error) {
		return c.processQuery(ctx, c.width, c.height, q, c.cell)
	})
}

func (c *EvaluatorComponent[S]) onEvents(ctx context.Context, batch []evfx.EventGroup, out chan<- pfx.Pane, wg *sync.WaitGroup) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case evalIdle:
		c.state = evalProcessEvents
		c.startEventsLocked(ctx, batch, out, wg)
	case evalProcessQuery:
		// Queries are authoritative; events arriving mid-query are dropped.
	case evalProcessEvents:
		c.pending = append(c.pending, batch)
	}
}

func (c *EvaluatorComponent[S]) drainPending(ctx context.Context, out chan<- pfx.Pane, wg *sync.WaitGroup) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != evalIdle || len(c.pending) == 0 {
		return
	}
	batch := c.pending[0]
	c.pending = c.pending[1:]
	c.state = evalProcessEvents
	c.startEventsLocked(ctx, batch, out, wg)
}

// startEventsLocked must be called with c.mu held.
func (c *EvaluatorComponent[S]) startEventsLocked(ctx context.Context, batch []evfx.EventGroup, out chan<- pfx.Pane, wg *sync.WaitGroup) {
	c.launch(ctx, out, wg, func(ctx context.Context) (pfx.Pane, error) {
		return c.processEvents(ctx, c.width, c.height, batch, c.cell)
	})
}

func (c *EvaluatorComponent[S]) launch(ctx context.Context, out chan<- pfx.Pane, wg *sync.WaitGroup, run func(context.Context) (pfx.Pane, error)) {
	taskCtx, gen := c.task.begin(ctx)

	spinnerCtx, stopSpinner := context.WithCancel(taskCtx)
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.spinner.Run(spinnerCtx, out)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer stopSpinner()

		pane, err := run(taskCtx)
		if taskCtx.Err() != nil || !c.task.isCurrent(gen) {
			c.finish(gen)
			return
		}
		if err != nil {
			c.logger.Warn().Err(err).Msg("evaluator processor failed, no pane published")
			c.finish(gen)
			return
		}
		select {
		case out <- pane:
		case <-ctx.Done():
		}
		c.finish(gen)
	}()
}

// finish returns the state machine to Idle once the task that just
// completed is still the current generation (an aborted task's finish
// is a no-op; the superseding task already moved the state forward).
func (c *EvaluatorComponent[S]) finish(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.task.isCurrent(gen) {
		c.state = evalIdle
	}
}
