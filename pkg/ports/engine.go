package ports

import (
	"context"

	"github.com/aretw0/puffin/pkg/domain"
)

// TickDriver is the orchestrator as seen by the run loop.
type TickDriver interface {
	// Tick runs one fixed time-step: update, transition, events, draw.
	Tick(ctx context.Context, tick domain.Tick) error

	// Done reports whether a quit was requested.
	Done() bool

	// State returns a copy of the runtime scene state.
	State() *domain.SceneState
}

// Clock produces the tick timing passed to every scene.
type Clock interface {
	Next() domain.Tick
}
