package examplefx

import (
	"context"
	"strings"
	"time"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/cellfx"
	"github.com/flinq/pfx/evfx"
)

// HeavyDelay is the artificial work duration the heavy processor sleeps
// for before publishing. Shortened here so the demo is actually usable
// interactively; still long enough that typing ahead reliably
// supersedes an in-flight run. A var, not a const, so tests can shrink
// it instead of waiting out the real delay.
var HeavyDelay = 2 * time.Second

// HeavyProcessor is the compfx.Processor for the demo's Loading-shaped
// component: it applies the same edit the fast Sync component applies,
// then "does work" (the artificial sleep) before publishing an
// upper-cased render. Rather than decoupling the two components via a
// dedicated channel carrying the editor's rendered text, it replays the
// identical event batch the orchestrator already fans to every
// component — avoiding a bespoke cross-component channel while keeping
// the same fast-echo/slow-uppercase shape.
func HeavyProcessor(ctx context.Context, width, height int, batch []evfx.EventGroup, cell cellfx.Cell[EditorState]) (pfx.Pane, error) {
	next := cell.Current()
	_ = EditHandler(batch, &next)

	select {
	case <-time.After(HeavyDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	upper := next.Clone()
	upper.Text = []rune(strings.ToUpper(string(upper.Text)))
	cell.Update(upper)
	return upper.CreatePane(width, height), nil
}
