package cellfx

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// AsyncSnapshot is the context-aware twin of Snapshot, for the case where
// the mutation passed to Modify itself awaits something (a channel
// receive, a user-supplied computation) — its lock acquisition is itself
// a suspension point. A plain sync.Mutex can't be held
// across such an await from a goroutine without blocking unrelated
// readers of Current for the whole duration, so the async-lock role is
// played by a weight-1 semaphore.Weighted, acquired and released with
// explicit Acquire/Release calls instead of Lock/Unlock — the second
// package this module draws from golang.org/x/sync, alongside errgroup
// in the orchestrator.
type AsyncSnapshot[T Cloner[T]] struct {
	mu       sync.Mutex // guards current/previous/hasPrev directly
	sem      *semaphore.Weighted
	current  T
	previous *T
	hasPrev  bool
}

// NewAsync creates an AsyncSnapshot with no previous value.
func NewAsync[T Cloner[T]](initial T) *AsyncSnapshot[T] {
	return &AsyncSnapshot[T]{sem: semaphore.NewWeighted(1), current: initial}
}

// Current returns a clone of the current value.
func (s *AsyncSnapshot[T]) Current() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Update sets previous := current, then current := next.
func (s *AsyncSnapshot[T]) Update(next T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	s.previous = &prev
	s.hasPrev = true
	s.current = next
}

// Rollback pops previous into current and returns true, or false if
// there is none.
func (s *AsyncSnapshot[T]) Rollback() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasPrev {
		return false
	}
	s.current = *s.previous
	s.previous = nil
	s.hasPrev = false
	return true
}

// Modify acquires the async lock, clones current out, awaits fn (which
// may itself block on ctx-aware work), publishes the result via Update,
// releases the lock, and returns fn's result. Returns ctx.Err() without
// calling fn if the semaphore can't be acquired before ctx is done.
func (s *AsyncSnapshot[T]) Modify(ctx context.Context, fn func(context.Context, T) (T, any, error)) (any, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	next, result, err := fn(ctx, s.Current())
	if err != nil {
		return nil, err
	}
	s.Update(next)
	return result, nil
}
