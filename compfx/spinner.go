package compfx

import (
	"context"
	"time"

	"github.com/flinq/pfx"
)

// spinnerFrames is the fixed 10-element braille sequence used as the
// loading overlay's animation.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner drives the overlay pane Loading and Evaluator components
// publish while a computation is in flight. Each tick emits the next
// frame as a RawPane; the component swaps it in for its slot until the
// real result pane supersedes it.
type Spinner struct {
	interval time.Duration
}

// NewSpinner creates a Spinner with a 100ms frame interval.
func NewSpinner() *Spinner {
	return &Spinner{interval: 100 * time.Millisecond}
}

// Run ticks until ctx is done, sending the next frame to out on every
// tick. A send that can't proceed because ctx is done exits silently —
// a blocked spinner send terminates the spinner loop, never the
// runtime.
func (s *Spinner) Run(ctx context.Context, out chan<- pfx.Pane) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case out <- pfx.RawPane(spinnerFrames[frame]):
			case <-ctx.Done():
				return
			}
			frame = (frame + 1) % len(spinnerFrames)
		}
	}
}
