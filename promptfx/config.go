package promptfx

import (
	"io"
	"os"
	"time"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/internal/share"
)

// Config configures an Orchestrator as a plain struct paired with
// functional options.
type Config struct {
	// Delay is the Event Operator's quiescence window (typ. 100ms).
	Delay time.Duration
	// Output is where the terminal session draws; defaults to os.Stdout.
	Output io.Writer
	// Terminal overrides the default raw-mode terminal session. Tests
	// supply an in-memory fake here.
	Terminal pfx.Terminal
}

// DefaultConfig returns the orchestrator defaults.
func DefaultConfig() Config {
	return Config{
		Delay:  100 * time.Millisecond,
		Output: os.Stdout,
	}
}

// WithDelay overrides the Operator's quiescence window.
func WithDelay(d time.Duration) share.Option[Config] {
	return func(cfg *Config) { cfg.Delay = d }
}

// WithOutput overrides the draw target.
func WithOutput(out io.Writer) share.Option[Config] {
	return func(cfg *Config) { cfg.Output = out }
}

// WithTerminal overrides the pfx.Terminal implementation entirely.
func WithTerminal(term pfx.Terminal) share.Option[Config] {
	return func(cfg *Config) { cfg.Terminal = term }
}

func resolveTerminal(cfg Config) pfx.Terminal {
	if cfg.Terminal != nil {
		return cfg.Terminal
	}
	return NewTerminal(cfg.Output)
}

// Run starts an Orchestrator over the given components and blocks until
// it terminates (Esc, upstream close, or error). Multipath entry:
//   - Run(components)         // zero-config, uses defaults
//   - Run(components, config) // explicit Config struct
func Run(components []Component, args ...any) error {
	cfg := share.Overload(args, DefaultConfig())
	return newOrchestrator(cfg, components).run()
}

// RunWith starts an Orchestrator using functional options only.
func RunWith(components []Component, opts ...share.Option[Config]) error {
	cfg := DefaultConfig()
	share.ApplyOptions(&cfg, opts...)
	return newOrchestrator(cfg, components).run()
}

// Builder is the fluent DSL path to configuring and starting an Orchestrator.
type Builder struct {
	config     Config
	components []Component
}

// New creates a Builder with default configuration.
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

func (b *Builder) Delay(d time.Duration) *Builder {
	b.config.Delay = d
	return b
}

func (b *Builder) Output(out io.Writer) *Builder {
	b.config.Output = out
	return b
}

func (b *Builder) Terminal(term pfx.Terminal) *Builder {
	b.config.Terminal = term
	return b
}

func (b *Builder) Components(components ...Component) *Builder {
	b.components = components
	return b
}

// Run starts the configured Orchestrator and blocks until it terminates.
func (b *Builder) Run() error {
	return newOrchestrator(b.config, b.components).run()
}
