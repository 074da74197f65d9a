// Package compfx implements three component shapes over a shared
// skeleton — Sync, Loading, and Evaluator — plus the spinner overlay
// and versioned-task-handle machinery their cancellation protocols
// share.
package compfx

import "github.com/flinq/pfx/evfx"

// Handler mutates domain state in response to one batch of grouped
// events. The core neither defines nor inspects what a Handler does
// with the batch; it only invokes the selected handler and absorbs any
// error it returns.
type Handler[S any] func(batch []evfx.EventGroup, state *S) error
