// Package cellfx provides a one-deep undoable state container, the
// Snapshot Cell: modify current and keep exactly one previous value for
// rollback.
package cellfx

import "sync"

// Cloner is satisfied by any state type a Snapshot can hold: it must be
// able to produce an independent copy of itself.
type Cloner[T any] interface {
	Clone() T
}

// Cell is the common one-deep undoable container contract both Snapshot
// and AsyncSnapshot satisfy. Code that only needs Current/Update/Rollback
// — not Snapshot's synchronous Modify or AsyncSnapshot's ctx-aware one —
// can accept either cell this way.
type Cell[T Cloner[T]] interface {
	Current() T
	Update(next T)
	Rollback() bool
}

// Snapshot holds a current value and at most one previous value. Update
// and Rollback are linearizable (serialized by mu); Modify is not (see
// AsyncSnapshot for the variant that exposes the non-linearizable await
// point explicitly).
type Snapshot[T Cloner[T]] struct {
	mu       sync.Mutex
	current  T
	previous *T
	hasPrev  bool
}

// New creates a Snapshot with no previous value.
func New[T Cloner[T]](initial T) *Snapshot[T] {
	return &Snapshot[T]{current: initial}
}

// Current returns a clone of the current value. Returning a clone, not a
// reference, keeps callers from mutating state behind the Snapshot's back
// between Current and the next Update.
func (s *Snapshot[T]) Current() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Update sets previous := current, then current := next.
func (s *Snapshot[T]) Update(next T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	s.previous = &prev
	s.hasPrev = true
	s.current = next
}

// Rollback pops previous into current and returns true, or returns false
// when there is no previous value. Rolling back twice in a row is a
// no-op after the first.
func (s *Snapshot[T]) Rollback() bool {
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

// Modify clones current out, applies fn, publishes the result via Update,
// and returns fn's second return value. Modify is NOT linearizable:
// correctness with concurrent modifiers is the caller's responsibility
// (the runtimes in this repo never run two modifiers over the same
// Snapshot at once).
func (s *Snapshot[T]) Modify(fn func(T) (T, any)) any {
	next, result := fn(s.Current())
	s.Update(next)
	return result
}
