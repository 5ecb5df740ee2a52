package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
)

// DefaultTickRate is the wall-clock period between ticks (60 Hz).
const DefaultTickRate = time.Second / 60

// Runner drives a TickDriver with a fixed time-step until it quits, the
// context is cancelled or the tick budget is spent.
//
// The runner is the single writer of the orchestrator. Observers get
// snapshots through the SnapshotStore, published only when the state changed.
type Runner struct {
	driver ports.TickDriver
	clock  ports.Clock
	logger *slog.Logger
	store  ports.SnapshotStore
	runID  string

	// rate is the wall-clock period between ticks. Zero ticks as fast as possible.
	rate     time.Duration
	maxTicks uint64
	signals  bool
	onChange func(domain.Tick, *domain.StateDiff)

	ticks uint64
	last  *domain.SceneState
}

// NewRunner creates a runner for driver. Without options it ticks at
// DefaultTickRate on a SystemClock, handles OS signals and publishes nothing.
func NewRunner(driver ports.TickDriver, opts ...Option) *Runner {
	r := &Runner{
		driver:  driver,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		rate:    DefaultTickRate,
		signals: true,
		runID:   "default",
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.clock == nil {
		r.clock = NewSystemClock()
	}
	return r
}

// Ticks returns how many ticks completed.
func (r *Runner) Ticks() uint64 { return r.ticks }

// RunID returns the identifier snapshots are published under.
func (r *Runner) RunID() string { return r.runID }

// Run executes the loop. It returns nil when the driver quits or the tick
// budget is spent, and the context error when interrupted.
func (r *Runner) Run(ctx context.Context) error {
	if r.driver == nil {
		return errors.New("runner: tick driver is required")
	}

	if r.signals {
		sm := NewSignalManager(ctx)
		defer sm.Stop()
		ctx = sm.Context()
	}

	var ticker *time.Ticker
	if r.rate > 0 {
		ticker = time.NewTicker(r.rate)
		defer ticker.Stop()
	}

	r.logger.Debug("run loop started", "run_id", r.runID, "rate", r.rate, "max_ticks", r.maxTicks)

	for {
		if r.driver.Done() {
			r.logger.Info("run finished", "run_id", r.runID, "ticks", r.ticks)
			return nil
		}
		if r.maxTicks > 0 && r.ticks >= r.maxTicks {
			r.logger.Debug("tick budget spent", "ticks", r.ticks)
			return nil
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return r.interrupted(ctx)
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			return r.interrupted(ctx)
		}

		tick := r.clock.Next()
		if err := r.driver.Tick(ctx, tick); err != nil {
			return fmt.Errorf("tick %d: %w", tick.Index, err)
		}
		r.ticks++

		if err := r.publish(ctx, tick); err != nil {
			return err
		}
	}
}

func (r *Runner) interrupted(ctx context.Context) error {
	r.logger.Info("run interrupted", "run_id", r.runID, "ticks", r.ticks, "err", ctx.Err())
	return ctx.Err()
}

// publish saves a snapshot when the state differs from the last published one.
func (r *Runner) publish(ctx context.Context, tick domain.Tick) error {
	state := r.driver.State()
	done := r.driver.Done()

	diff := domain.Diff(r.last, state)
	if diff == nil && !done {
		return nil
	}
	r.last = state

	if diff != nil {
		r.logger.Debug("state changed", "tick", tick.Index, "state", state.CurrState.String())
		if r.onChange != nil {
			r.onChange(tick, diff)
		}
	}

	if r.store == nil {
		return nil
	}
	snap := &domain.Snapshot{Tick: tick.Index, State: state, Done: done}
	if err := r.store.Save(ctx, r.runID, snap); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}
