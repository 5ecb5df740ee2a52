package scene

import (
	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
)

// Scene is one independently updatable and drawable unit of the application.
// The orchestrator calls Update and Draw only while the scene is active, and
// the transition methods once per transition the scene takes part in.
type Scene interface {
	// Type returns the scene identity. Never domain.SceneUninitialized.
	Type() domain.SceneType

	// Update advances the scene by one tick and returns the events it emits.
	// It must not block.
	Update(tick domain.Tick) []domain.Event

	// Draw issues drawing calls into the frame. Not called while ShouldBeDrawn is false.
	Draw(frame ports.Frame, tick domain.Tick)

	// BeginTransition is called before the first StepTransition of a transition.
	BeginTransition(t domain.SceneTransition, tick domain.Tick)

	// StepTransition is called every tick with the cumulative progress in [0,1).
	StepTransition(degree float64, tick domain.Tick)

	// EndTransition is called once progress reaches 1.
	EndTransition(tick domain.Tick)

	// ShouldBeDrawn reports whether the draw pass should include this scene.
	ShouldBeDrawn() bool
}
