package compfx

import (
	"context"
	"sync"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/cellfx"
	"github.com/flinq/pfx/diagx"
	"github.com/flinq/pfx/evfx"
)

// Processor is the user-supplied asynchronous computation Loading and
// Evaluator components run per batch. It receives the cell so it can
// read/mutate domain state across the suspension points it awaits on;
// ctx is cancelled on supersession. Accepting cellfx.Cell rather than
// *cellfx.Snapshot directly lets a caller pass an *cellfx.AsyncSnapshot
// instead, when the processor's own suspension point (not just the
// cell's lock) needs to be ctx-aware.
type Processor[S cellfx.Cloner[S]] func(ctx context.Context, width, height int, batch []evfx.EventGroup, cell cellfx.Cell[S]) (pfx.Pane, error)

// LoadingComponent is the asynchronous component shape: at most one
// process task runs at a time, a spinner overlay covers the gap, and
// supersession aborts the in-flight task and rolls back the cell
// before the replacement starts — rollback on supersession is
// automatic here, not left to the caller's discretion.
type LoadingComponent[S cellfx.Cloner[S]] struct {
	cell      cellfx.Cell[S]
	process   Processor[S]
	sizeMu    sync.Mutex
	width     int
	height    int
	spinner   *Spinner
	task      versionedTask
	logger    *diagx.Logger
	runningMu sync.Mutex
	running   bool
}

// NewLoadingComponent creates a LoadingComponent over cell, running
// process for each batch it receives.
func NewLoadingComponent[S cellfx.Cloner[S]](cell cellfx.Cell[S], process Processor[S], width, height int) *LoadingComponent[S] {
	return &LoadingComponent[S]{
		cell:    cell,
		process: process,
		width:   width,
		height:  height,
		spinner: NewSpinner(),
		logger:  diagx.Default(),
	}
}

// Resize updates the dimensions used for future process calls.
func (c *LoadingComponent[S]) Resize(width, height int) {
	c.sizeMu.Lock()
	c.width, c.height = width, height
	c.sizeMu.Unlock()
}

func (c *LoadingComponent[S]) size() (int, int) {
	c.sizeMu.Lock()
	defer c.sizeMu.Unlock()
	return c.width, c.height
}

// rollbackState pops the cell's previous value into current.
func (c *LoadingComponent[S]) rollbackState() bool {
	return c.cell.Rollback()
}

// Run receives batches from in, supersedes any in-flight task on a new
// arrival, and publishes panes (spinner frames while running, the real
// result on completion) to out, until in closes or ctx is done.
func (c *LoadingComponent[S]) Run(ctx context.Context, in <-chan []evfx.EventGroup, out chan<- pfx.Pane) error {
	var wg sync.WaitGroup
	defer func() {
		c.task.abort()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-in:
			if !ok {
				return nil
			}
			c.supersede()
			taskCtx, gen := c.task.begin(ctx)
			wg.Add(1)
			go func(batch []evfx.EventGroup) {
				defer wg.Done()
				c.runOne(taskCtx, gen, batch, out)
			}(batch)
		}
	}
}

// supersede invokes rollback_state before launching a replacement task,
// only when a task is actually in flight.
func (c *LoadingComponent[S]) supersede() {
	c.runningMu.Lock()
	running := c.running
	c.runningMu.Unlock()
	if running {
		c.rollbackState()
	}
}

func (c *LoadingComponent[S]) runOne(ctx context.Context, gen uint64, batch []evfx.EventGroup, out chan<- pfx.Pane) {
	c.runningMu.Lock()
	c.running = true
	c.runningMu.Unlock()
	defer func() {
		c.runningMu.Lock()
		c.running = false
		c.runningMu.Unlock()
	}()

	spinnerCtx, stopSpinner := context.WithCancel(ctx)
	defer stopSpinner()
	go c.spinner.Run(spinnerCtx, out)

	width, height := c.size()
	pane, err := c.process(ctx, width, height, batch, c.cell)
	stopSpinner()

	if ctx.Err() != nil || !c.task.isCurrent(gen) {
		return
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("loading processor failed, no pane published")
		return
	}
	select {
	case out <- pane:
	case <-ctx.Done():
	}
}
