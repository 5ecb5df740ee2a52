package scenes

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
	"github.com/aretw0/puffin/pkg/registry"
	"github.com/aretw0/puffin/pkg/scene"
)

// Game is the gameplay scene. It stays visible, frozen, under the pause overlay.
type Game struct {
	*scene.Base
	input ports.Input

	paused  bool
	overlay bool
	played  time.Duration
}

func NewGame(reg *registry.Registry, in ports.Input, logger *slog.Logger) (*Game, error) {
	b, err := scene.NewBase(domain.SceneGame, reg, logger)
	if err != nil {
		return nil, err
	}
	return &Game{Base: b, input: in}, nil
}

// Paused reports whether gameplay is frozen by the pause overlay.
func (s *Game) Paused() bool { return s.paused }

// Played returns the gameplay time accumulated while not paused.
func (s *Game) Played() time.Duration { return s.played }

func (s *Game) Update(tick domain.Tick) []domain.Event {
	if s.paused {
		return nil
	}
	s.played += tick.Elapsed

	switch {
	case s.input.IsTriggered(domain.ControlPause):
		return one(domain.EventPauseGameRequested)
	case s.input.IsTriggered(domain.ControlQuit):
		return one(domain.EventQuitGameRequested)
	}
	return nil
}

func (s *Game) Draw(frame ports.Frame, _ domain.Tick) {
	frame.DrawText(ports.Center, "Game scene", ports.ColorLightGreen, 1)
	frame.DrawText(ports.Anchor{X: 0.5, Y: 0.9}, fmt.Sprintf("played %s", s.played.Truncate(time.Second)), ports.ColorGray, 1)
	s.DrawFade(frame)
}

// BeginTransition keeps the scene untouched when it is part of both states
// (pausing and unpausing). Entering the game from elsewhere starts a new run.
// Leaving from the pause overlay fades the game out with it.
func (s *Game) BeginTransition(t domain.SceneTransition, tick domain.Tick) {
	if overlay(s.Registry(), domain.SceneGame, t) {
		s.overlay = true
		s.paused = t.NewState == domain.StateGamePaused
		return
	}
	if def, err := s.Registry().Lookup(t.NewState); err == nil && def.Contains(domain.SceneGame) {
		s.paused = false
		s.played = 0
	}
	s.BeginSplitTransition(t, tick)
}

func (s *Game) StepTransition(degree float64, tick domain.Tick) {
	if s.overlay {
		return
	}
	s.Base.StepTransition(degree, tick)
}

func (s *Game) EndTransition(tick domain.Tick) {
	if s.overlay {
		s.overlay = false
		return
	}
	s.Base.EndTransition(tick)
}
