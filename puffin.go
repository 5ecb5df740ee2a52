package puffin

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/puffin/internal/config"
	"github.com/aretw0/puffin/internal/runtime"
	"github.com/aretw0/puffin/internal/scenes"
	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/input"
	"github.com/aretw0/puffin/pkg/ports"
	"github.com/aretw0/puffin/pkg/registry"
	"github.com/aretw0/puffin/pkg/runner"
)

// Version is set at build time.
var Version = "dev"

// Engine is the high-level entry point for the puffin library.
// It wires the registry, the concrete scenes and the orchestrator from a
// configuration and implements ports.TickDriver.
type Engine struct {
	orch     *runtime.Orchestrator
	cfg      *config.Config
	registry *registry.Registry
	routes   map[domain.EventKind]runtime.Route

	source   ports.InputSource
	renderer ports.Renderer
	hooks    domain.LifecycleHooks
	initial  domain.SceneStateEnum
	onQuit   func()
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithConfig uses cfg instead of reading a file.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithInput sets the physical input source sampled every tick.
func WithInput(source ports.InputSource) Option {
	return func(e *Engine) {
		e.source = source
	}
}

// WithRenderer sets where frames are drawn. Defaults to a no-op renderer.
func WithRenderer(r ports.Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithInitialState overrides the configured initial state.
func WithInitialState(state domain.SceneStateEnum) Option {
	return func(e *Engine) {
		e.initial = state
	}
}

// WithQuitFunc is called once when the game asks to quit.
func WithQuitFunc(fn func()) Option {
	return func(e *Engine) {
		e.onQuit = fn
	}
}

// New initializes a new puffin Engine.
// The configuration is read from configPath unless WithConfig is given; an
// empty or missing path yields the built-in defaults.
func New(configPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if eng.cfg == nil {
		cfg := config.Default()
		if configPath != "" {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return nil, err
			}
		}
		eng.cfg = cfg
	}
	if eng.initial == domain.StateInvalid {
		eng.initial = eng.cfg.InitialState
	}

	reg, err := eng.cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("invalid states: %w", err)
	}
	routes, err := eng.cfg.Routes()
	if err != nil {
		return nil, fmt.Errorf("invalid navigation: %w", err)
	}
	eng.registry = reg
	eng.routes = eng.reachableRoutes(routes)

	state := input.NewState()
	set, err := scenes.NewSet(reg, state, eng.cfg.SceneOptions(), eng.logger)
	if err != nil {
		return nil, err
	}

	runtimeOpts := []runtime.Option{
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithInput(eng.source, state),
		runtime.WithRoutes(eng.routes),
		runtime.WithRenderer(eng.renderer),
	}
	if eng.onQuit != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithExitFunc(eng.onQuit))
	}

	eng.orch, err = runtime.New(reg, eng.initial, set, runtimeOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing orchestrator: %w", err)
	}
	return eng, nil
}

// reachableRoutes drops routes whose target is not registered, so a reduced
// registry can still use the default navigation table.
func (e *Engine) reachableRoutes(routes map[domain.EventKind]runtime.Route) map[domain.EventKind]runtime.Route {
	out := make(map[domain.EventKind]runtime.Route, len(routes))
	for kind, r := range routes {
		if _, err := e.registry.Lookup(r.To); err != nil {
			e.logger.Debug("route dropped, target not registered", "event", kind.String(), "to", r.To.String())
			continue
		}
		out[kind] = r
	}
	return out
}

// Tick runs one fixed time-step.
func (e *Engine) Tick(ctx context.Context, tick domain.Tick) error {
	return e.orch.Tick(ctx, tick)
}

// Done reports whether the game asked to quit.
func (e *Engine) Done() bool {
	return e.orch.Done()
}

// State returns a copy of the runtime scene state.
func (e *Engine) State() *domain.SceneState {
	return e.orch.State()
}

// Registry returns the scene state registry in use.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Routes returns a copy of the navigation table in use.
func (e *Engine) Routes() map[domain.EventKind]runtime.Route {
	out := make(map[domain.EventKind]runtime.Route, len(e.routes))
	for k, v := range e.routes {
		out[k] = v
	}
	return out
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Run drives the engine with a runner until quit, cancellation or the tick limit.
// The configured tick rate applies unless opts override it.
func (e *Engine) Run(ctx context.Context, opts ...runner.Option) error {
	base := []runner.Option{
		runner.WithLogger(e.logger),
		runner.WithTickRate(e.cfg.TickRate),
	}
	return runner.NewRunner(e, append(base, opts...)...).Run(ctx)
}
