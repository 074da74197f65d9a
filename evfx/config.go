package evfx

import (
	"context"
	"time"

	"github.com/flinq/pfx/internal/share"
)

// Config configures an Operator as a plain struct paired with
// functional options.
type Config struct {
	// Delay is the quiescence window: the Operator flushes its buffer
	// once no new RawEvent has arrived for this long.
	Delay time.Duration
}

// DefaultConfig returns the Operator defaults.
func DefaultConfig() Config {
	return Config{Delay: 100 * time.Millisecond}
}

// WithDelay overrides the quiescence window.
func WithDelay(d time.Duration) share.Option[Config] {
	return func(cfg *Config) { cfg.Delay = d }
}

// Start builds and runs an Operator over in, returning the channel of
// grouped batches. Multipath entry:
//   - Start(ctx, in)         // zero-config, uses defaults
//   - Start(ctx, in, config) // explicit Config struct
func Start(ctx context.Context, in <-chan RawEvent, args ...any) <-chan []EventGroup {
	cfg := share.Overload(args, DefaultConfig())
	return run(ctx, cfg, in)
}

// StartWith builds and runs an Operator using functional options only.
func StartWith(ctx context.Context, in <-chan RawEvent, opts ...share.Option[Config]) <-chan []EventGroup {
	cfg := DefaultConfig()
	share.ApplyOptions(&cfg, opts...)
	return run(ctx, cfg, in)
}

// OperatorBuilder is the fluent DSL path to configuring and starting an Operator.
type OperatorBuilder struct {
	config Config
}

// New creates an OperatorBuilder with default configuration.
func New() *OperatorBuilder {
	return &OperatorBuilder{config: DefaultConfig()}
}

func (b *OperatorBuilder) Delay(d time.Duration) *OperatorBuilder {
	b.config.Delay = d
	return b
}

// Start runs the configured Operator over in.
func (b *OperatorBuilder) Start(ctx context.Context, in <-chan RawEvent) <-chan []EventGroup {
	return run(ctx, b.config, in)
}

func run(ctx context.Context, cfg Config, in <-chan RawEvent) <-chan []EventGroup {
	out := make(chan []EventGroup)
	op := NewOperator(cfg.Delay, in, out)
	go func() {
		defer close(out)
		op.Run(ctx)
	}()
	return out
}
