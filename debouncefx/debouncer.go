// Package debouncefx implements a generic debounce utility: given an
// input channel of T and a duration, retain only the last value seen,
// emitting it once the input goes quiet for that duration. The
// timer-reset-on-event loop generalizes evfx.Operator's coalescing
// pattern from RawEvent to any T, since the algorithm itself is
// type-agnostic.
package debouncefx

import (
	"context"
	"time"

	"github.com/flinq/pfx/internal/share"
)

// Config configures a Debouncer.
type Config struct {
	Delay time.Duration
}

// DefaultConfig returns the package defaults: a 200ms resize-debounce
// window (callers needing a longer query-debounce window pass WithDelay
// explicitly).
func DefaultConfig() Config {
	return Config{Delay: 200 * time.Millisecond}
}

// WithDelay overrides the quiescence window.
func WithDelay(d time.Duration) share.Option[Config] {
	return func(cfg *Config) { cfg.Delay = d }
}

// Start reads values from in and writes the most recent one to the
// returned channel each time in goes quiet for delay. Multipath per the
// rest of this module's constructors:
//   - Start(ctx, in)         // zero-config, uses defaults
//   - Start(ctx, in, config) // explicit Config struct
func Start[T any](ctx context.Context, in <-chan T, args ...any) <-chan T {
	cfg := share.Overload(args, DefaultConfig())
	return run(ctx, cfg, in)
}

// StartWith builds and runs a Debouncer using functional options only.
func StartWith[T any](ctx context.Context, in <-chan T, opts ...share.Option[Config]) <-chan T {
	cfg := DefaultConfig()
	share.ApplyOptions(&cfg, opts...)
	return run(ctx, cfg, in)
}

func run[T any](ctx context.Context, cfg Config, in <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)

		var (
			pending T
			has     bool
		)
		timer := time.NewTimer(cfg.Delay)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					if has {
						select {
						case out <- pending:
						case <-ctx.Done():
						}
					}
					return
				}
				pending = v
				has = true
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(cfg.Delay)
			case <-timer.C:
				if has {
					select {
					case out <- pending:
					case <-ctx.Done():
						return
					}
					has = false
				}
			}
		}
	}()
	return out
}
