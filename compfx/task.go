package compfx

import (
	"context"
	"sync"
)

// versionedTask tracks the single in-flight background computation a
// Loading or Evaluator component may run at a time: at most one active
// task; supersession aborts the current one (best-effort, via context
// cancellation) before launching the next.
type versionedTask struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// begin aborts any task currently tracked and returns a context for the
// next one, along with that task's generation number.
func (t *versionedTask) begin(parent context.Context) (context.Context, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	t.gen++
	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel
	return ctx, t.gen
}

// abort cancels the currently tracked task, if any, without starting a
// replacement. Used on component shutdown.
func (t *versionedTask) abort() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// isCurrent reports whether gen is still the most recently begun
// generation — a completed task uses this to decide whether its result
// is still wanted or was superseded while it ran.
func (t *versionedTask) isCurrent(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen == gen
}
