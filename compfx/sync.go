package compfx

import (
	"context"
	"sync"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/diagx"
	"github.com/flinq/pfx/evfx"
)

// SyncComponent is the non-suspending component shape: its event
// handler is total and never suspends, so the run loop is strict FIFO
// with no cancellation or spinner machinery at all.
type SyncComponent[S pfx.PaneFactory] struct {
	state   *S
	handler Handler[S]
	sizeMu  sync.Mutex
	width   int
	height  int
	logger  *diagx.Logger
}

// NewSyncComponent creates a SyncComponent over state, invoking handler
// for every batch it receives.
func NewSyncComponent[S pfx.PaneFactory](state *S, handler Handler[S], width, height int) *SyncComponent[S] {
	return &SyncComponent[S]{state: state, handler: handler, width: width, height: height, logger: diagx.Default()}
}

// Resize updates the dimensions used for future CreatePane calls.
func (c *SyncComponent[S]) Resize(width, height int) {
	c.sizeMu.Lock()
	c.width, c.height = width, height
	c.sizeMu.Unlock()
}

func (c *SyncComponent[S]) size() (int, int) {
	c.sizeMu.Lock()
	defer c.sizeMu.Unlock()
	return c.width, c.height
}

// Run receives batches from in and publishes one pane per batch to out,
// in strict arrival order, until in closes or ctx is done. Handler
// errors are absorbed and logged — the component still produces a pane
// for the current state.
func (c *SyncComponent[S]) Run(ctx context.Context, in <-chan []evfx.EventGroup, out chan<- pfx.Pane) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-in:
			if !ok {
				return nil
			}
			pane := c.processEvent(batch)
			select {
			case out <- pane:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (c *SyncComponent[S]) processEvent(batch []evfx.EventGroup) pfx.Pane {
	if c.handler != nil {
		if err := c.handler(batch, c.state); err != nil {
			c.logger.Warn().Err(err).Msg("sync handler failed, pane still produced")
		}
	}
	width, height := c.size()
	return (*c.state).CreatePane(width, height)
}
