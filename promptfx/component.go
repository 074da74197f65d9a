package promptfx

import (
	"context"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/evfx"
)

// Component is the single dispatch shape every component ultimately
// reduces to: Sync, Loading, and Evaluator components all become
// "pane-producing tasks over event-batch inputs" once wrapped this way.
// compfx's three concrete shapes each satisfy Component with a thin
// adapter; the orchestrator never distinguishes between them.
type Component interface {
	// Run consumes batches from in and publishes panes to out until in
	// closes or ctx is done. Returning a non-nil error is a
	// session-terminal failure.
	Run(ctx context.Context, in <-chan []evfx.EventGroup, out chan<- pfx.Pane) error
}

// Resizer is implemented by components whose pane dimensions can
// change after construction. The orchestrator type-asserts for it when
// a terminal resize arrives; components that don't implement it simply
// keep rendering at their original size.
type Resizer interface {
	Resize(width, height int)
}

// ComponentFunc adapts a plain function to Component.
type ComponentFunc func(ctx context.Context, in <-chan []evfx.EventGroup, out chan<- pfx.Pane) error

func (f ComponentFunc) Run(ctx context.Context, in <-chan []evfx.EventGroup, out chan<- pfx.Pane) error {
	return f(ctx, in, out)
}
