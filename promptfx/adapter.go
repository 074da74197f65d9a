package promptfx

import (
	"context"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/cellfx"
	"github.com/flinq/pfx/compfx"
	"github.com/flinq/pfx/evfx"
)

// EvaluatorAdapter wraps an EvaluatorComponent as a Component, binding
// its query track to queries (typically a debouncefx.Start output fed
// from a sibling Sync component's text) so the orchestrator's uniform
// per-slot event fan-out still applies to the events track.
func EvaluatorAdapter[S cellfx.Cloner[S]](eval *compfx.EvaluatorComponent[S], queries <-chan string) Component {
	return ComponentFunc(func(ctx context.Context, in <-chan []evfx.EventGroup, out chan<- pfx.Pane) error {
		return eval.Run(ctx, queries, in, out)
	})
}
