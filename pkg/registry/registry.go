package registry

import (
	"fmt"
	"slices"

	"github.com/aretw0/puffin/pkg/domain"
)

// Definition pairs an abstract state with the ordered scenes active in it.
// The order is the draw order (back-to-front) and decides which scenes are old
// or new during a transition.
type Definition struct {
	State  domain.SceneStateEnum
	scenes []domain.SceneType
}

// Scenes returns a copy of the ordered scene set.
func (d Definition) Scenes() []domain.SceneType {
	return slices.Clone(d.scenes)
}

// Contains reports whether the scene is part of this state.
func (d Definition) Contains(t domain.SceneType) bool {
	return slices.Contains(d.scenes, t)
}

// Len returns the number of scenes in this state.
func (d Definition) Len() int {
	return len(d.scenes)
}

// Builder collects definitions during startup.
type Builder struct {
	defs  map[domain.SceneStateEnum]Definition
	order []domain.SceneStateEnum
}

// NewBuilder creates a new empty builder.
func NewBuilder() *Builder {
	return &Builder{
		defs: make(map[domain.SceneStateEnum]Definition),
	}
}

// Register adds a state definition. Each state may be registered once.
func (b *Builder) Register(state domain.SceneStateEnum, scenes ...domain.SceneType) error {
	if !state.Valid() {
		return fmt.Errorf("cannot register state %s", state)
	}
	if _, exists := b.defs[state]; exists {
		return fmt.Errorf("state %s already registered", state)
	}
	if len(scenes) == 0 {
		return fmt.Errorf("state %s has no scenes", state)
	}
	for i, s := range scenes {
		if !s.Valid() {
			return fmt.Errorf("state %s: invalid scene type %s", state, s)
		}
		if slices.Contains(scenes[:i], s) {
			return fmt.Errorf("state %s: scene %s listed twice", state, s)
		}
	}

	b.defs[state] = Definition{State: state, scenes: slices.Clone(scenes)}
	b.order = append(b.order, state)
	return nil
}

// Build freezes the collected definitions into a Registry.
// The builder must not be reused afterwards.
func (b *Builder) Build() (*Registry, error) {
	if len(b.defs) == 0 {
		return nil, fmt.Errorf("registry has no states")
	}
	r := &Registry{
		defs:  b.defs,
		order: b.order,
	}
	b.defs = nil
	b.order = nil
	return r, nil
}

// Registry maps abstract states to their scene sets.
// It is immutable, so concurrent reads need no locking.
type Registry struct {
	defs  map[domain.SceneStateEnum]Definition
	order []domain.SceneStateEnum
}

// Lookup returns the definition for a state.
// Returns domain.ErrUnregisteredSceneState if the state was never registered.
func (r *Registry) Lookup(state domain.SceneStateEnum) (Definition, error) {
	def, ok := r.defs[state]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", domain.ErrUnregisteredSceneState, state)
	}
	return def, nil
}

// MustLookup is like Lookup but panics for unregistered states.
func (r *Registry) MustLookup(state domain.SceneStateEnum) Definition {
	def, err := r.Lookup(state)
	if err != nil {
		panic(err)
	}
	return def
}

// States returns the registered states in registration order.
func (r *Registry) States() []domain.SceneStateEnum {
	return slices.Clone(r.order)
}

// SceneTypes returns every scene type referenced by any state, in first-seen order.
func (r *Registry) SceneTypes() []domain.SceneType {
	var out []domain.SceneType
	for _, state := range r.order {
		for _, s := range r.defs[state].scenes {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

// Default builds the registry used by the game.
// The paused state keeps the game scene active behind the pause overlay.
func Default() *Registry {
	b := NewBuilder()
	must(b.Register(domain.StateTitle, domain.SceneTitle))
	must(b.Register(domain.StateMainMenu, domain.SceneMainMenu))
	must(b.Register(domain.StateOptionsMenu, domain.SceneOptionsMenu))
	must(b.Register(domain.StateGame, domain.SceneGame))
	must(b.Register(domain.StateGamePaused, domain.SceneGame, domain.SceneGamePaused))
	r, err := b.Build()
	must(err)
	return r
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
