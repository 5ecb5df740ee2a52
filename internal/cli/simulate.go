package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/puffin"
	"github.com/aretw0/puffin/internal/adapters/script"
	"github.com/aretw0/puffin/internal/config"
	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/runner"
)

// DefaultSimulationTicks bounds a simulation whose script never quits.
const DefaultSimulationTicks = 600

// SimulateOptions configures a headless scripted run.
type SimulateOptions struct {
	ConfigPath string
	Debug      bool
	JSON       bool
	Ticks      uint64
	Presses    []string
	Devices    []string
}

// Simulate runs the game without a terminal, replaying scripted input on a
// fixed clock, and writes the transition log to out.
func Simulate(ctx context.Context, opts SimulateOptions, out, errOut io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	logger := createLogger(errOut, cfg.Level(), opts.Debug)

	if opts.Ticks == 0 {
		opts.Ticks = DefaultSimulationTicks
	}

	player, err := script.Parse(opts.Presses, opts.Devices)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg.Snapshot, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	log := newTransitionLog(out, opts.JSON)
	engine, err := createEngine(cfg, opts.Debug, logger, nil,
		puffin.WithInput(player),
		puffin.WithLifecycleHooks(log.hooks()),
	)
	if err != nil {
		return err
	}

	runOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithTickRate(0),
		runner.WithClock(runner.NewFixedClock(cfg.TickRate)),
		runner.WithMaxTicks(opts.Ticks),
		runner.WithRunID(cfg.Snapshot.RunID),
	}
	if store != nil {
		runOpts = append(runOpts, runner.WithStore(store))
	}

	runErr := engine.Run(ctx, runOpts...)

	final := engine.State()
	log.finish(final, engine.Done())
	return handleExecutionError(runErr)
}

// logLine is one entry of the transition log in JSON mode.
type logLine struct {
	Tick   uint64 `json:"tick"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// transitionLog prints one line per lifecycle milestone.
type transitionLog struct {
	w    io.Writer
	enc  *json.Encoder
	last uint64
}

func newTransitionLog(w io.Writer, jsonMode bool) *transitionLog {
	l := &transitionLog{w: w}
	if jsonMode {
		l.enc = json.NewEncoder(w)
	}
	return l
}

func (l *transitionLog) line(tick uint64, kind, detail string) {
	l.last = tick
	if l.enc != nil {
		_ = l.enc.Encode(logLine{Tick: tick, Kind: kind, Detail: detail})
		return
	}
	fmt.Fprintf(l.w, "%6d  %-9s %s\n", tick, kind, detail)
}

func (l *transitionLog) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransitionBegin: func(_ context.Context, e *domain.TransitionInfo) {
			l.line(e.Tick.Index, "begin", e.Transition.String())
		},
		OnTransitionEnd: func(_ context.Context, e *domain.TransitionInfo) {
			l.line(e.Tick.Index, "end", e.Transition.NewState.String())
		},
		OnTransitionIgnored: func(_ context.Context, e *domain.TransitionInfo) {
			l.line(e.Tick.Index, "ignored", e.Err.Error())
		},
		OnDeviceChange: func(_ context.Context, e *domain.DispatchInfo) {
			l.line(e.Tick.Index, "device", e.Event.String())
		},
		OnEvent: func(_ context.Context, e *domain.DispatchInfo) {
			if e.Event.Kind() == domain.EventQuitGameRequested {
				l.line(e.Tick.Index, "quit", e.Source.String())
			}
		},
	}
}

func (l *transitionLog) finish(final *domain.SceneState, done bool) {
	status := "stopped"
	if done {
		status = "quit"
	}
	l.line(l.last, "final", fmt.Sprintf("%s %s %v", status, final.CurrState, final.ActiveScenes))
}
