package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock sets the source of tick timing.
func WithClock(c ports.Clock) Option {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithTickRate sets the wall-clock period between ticks.
// Zero runs ticks back to back, which headless simulations rely on.
func WithTickRate(rate time.Duration) Option {
	return func(r *Runner) {
		r.rate = rate
	}
}

// WithMaxTicks stops the loop after n ticks. Zero means no limit.
func WithMaxTicks(n uint64) Option {
	return func(r *Runner) {
		r.maxTicks = n
	}
}

// WithStore publishes snapshots for observers.
func WithStore(store ports.SnapshotStore) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithRunID sets the key snapshots are published under.
func WithRunID(id string) Option {
	return func(r *Runner) {
		if id != "" {
			r.runID = id
		}
	}
}

// WithSignals toggles SIGINT/SIGTERM handling.
func WithSignals(enabled bool) Option {
	return func(r *Runner) {
		r.signals = enabled
	}
}

// WithChangeHandler is called with the state diff whenever a tick changed the state.
func WithChangeHandler(fn func(domain.Tick, *domain.StateDiff)) Option {
	return func(r *Runner) {
		r.onChange = fn
	}
}
