package runtime

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/input"
	"github.com/aretw0/puffin/pkg/ports"
	"github.com/aretw0/puffin/pkg/registry"
	"github.com/aretw0/puffin/pkg/scene"
)

// Route maps a navigation event onto a transition target.
type Route struct {
	To   domain.SceneStateEnum
	Step float64
}

// DefaultRoutes returns the navigation table used by the game.
func DefaultRoutes() map[domain.EventKind]Route {
	return map[domain.EventKind]Route{
		domain.EventStartNewGameRequested: {To: domain.StateGame, Step: domain.SpeedMedium},
		domain.EventMainMenuRequested:     {To: domain.StateMainMenu, Step: domain.SpeedMedium},
		domain.EventOptionsMenuRequested:  {To: domain.StateOptionsMenu, Step: domain.SpeedMedium},
		domain.EventPauseGameRequested:    {To: domain.StateGamePaused, Step: domain.SpeedFast},
		domain.EventUnpauseGameRequested:  {To: domain.StateGame, Step: domain.SpeedFast},
	}
}

// Orchestrator is the per-tick driver. It owns the runtime scene state, updates
// the active scenes, resolves transition requests and draws.
//
// It is not safe for concurrent use: one goroutine drives all ticks.
type Orchestrator struct {
	registry *registry.Registry
	scenes   map[domain.SceneType]scene.Scene
	state    *domain.SceneState

	source   ports.InputSource
	input    *input.State
	renderer ports.Renderer
	routes   map[domain.EventKind]Route
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	exit     func()

	done bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *Orchestrator) {
		o.hooks = hooks
	}
}

// WithInput sets the input source and the state the scenes read.
// Both are sampled at the start of every tick.
func WithInput(source ports.InputSource, state *input.State) Option {
	return func(o *Orchestrator) {
		o.source = source
		if state != nil {
			o.input = state
		}
	}
}

// WithRenderer sets the renderer used by the draw pass.
func WithRenderer(r ports.Renderer) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.renderer = r
		}
	}
}

// WithRoutes replaces the navigation table.
func WithRoutes(routes map[domain.EventKind]Route) Option {
	return func(o *Orchestrator) {
		o.routes = routes
	}
}

// WithExitFunc is called once when a quit request is processed.
func WithExitFunc(fn func()) Option {
	return func(o *Orchestrator) {
		o.exit = fn
	}
}

// New creates an orchestrator in Steady(initial).
// Every scene type referenced by the registry must have exactly one instance.
func New(reg *registry.Registry, initial domain.SceneStateEnum, scenes []scene.Scene, opts ...Option) (*Orchestrator, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry is required")
	}

	o := &Orchestrator{
		registry: reg,
		scenes:   make(map[domain.SceneType]scene.Scene, len(scenes)),
		input:    input.NewState(),
		renderer: ports.NopRenderer{},
		routes:   DefaultRoutes(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}

	for _, s := range scenes {
		t := s.Type()
		if !t.Valid() {
			return nil, fmt.Errorf("scene with type %s", t)
		}
		if _, dup := o.scenes[t]; dup {
			return nil, fmt.Errorf("scene %s provided twice", t)
		}
		o.scenes[t] = s
	}
	for _, t := range reg.SceneTypes() {
		if _, ok := o.scenes[t]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrSceneNotFound, t)
		}
	}

	for kind, route := range o.routes {
		if !kind.IsNavigation() {
			return nil, fmt.Errorf("route for %s: not a navigation event", kind)
		}
		if _, err := reg.Lookup(route.To); err != nil {
			return nil, fmt.Errorf("route for %s: %w", kind, err)
		}
		if !(route.Step > 0) {
			return nil, fmt.Errorf("route for %s: %w", kind, domain.ErrInvalidStepAmount)
		}
	}

	def, err := reg.Lookup(initial)
	if err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}
	o.state = domain.NewSceneState(initial, def.Scenes())

	o.logger.Debug("orchestrator ready", "state", initial.String(), "scenes", len(o.scenes))
	return o, nil
}

// State returns a copy of the runtime scene state.
func (o *Orchestrator) State() *domain.SceneState {
	return o.state.Clone()
}

// Done reports whether a quit request was processed.
func (o *Orchestrator) Done() bool {
	return o.done
}

// Registry returns the registry the orchestrator was built with.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.registry
}

// Input returns the input state scenes should read.
func (o *Orchestrator) Input() ports.Input {
	return o.input
}

func (o *Orchestrator) sceneFor(t domain.SceneType) (scene.Scene, error) {
	s, ok := o.scenes[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSceneNotFound, t)
	}
	return s, nil
}
