package scenes

import (
	"log/slog"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
	"github.com/aretw0/puffin/pkg/registry"
	"github.com/aretw0/puffin/pkg/scene"
)

const (
	pauseBanner     = "-=[ PAUSE ]=-"
	bannerSpeed     = 0.01
	bannerAmplitude = 0.35
)

// GamePaused draws a bouncing banner over the frozen game. Pause or Confirm
// resumes, Back leaves for the main menu.
type GamePaused struct {
	*scene.Base
	input ports.Input

	offset    float64 // [-1,1]
	direction float64
	opacity   float64

	fade      scene.FadeState // linear fade used between the game and the overlay
	requested bool
}

func NewGamePaused(reg *registry.Registry, in ports.Input, logger *slog.Logger) (*GamePaused, error) {
	b, err := scene.NewBase(domain.SceneGamePaused, reg, logger)
	if err != nil {
		return nil, err
	}
	return &GamePaused{Base: b, input: in, direction: 1, opacity: 1}, nil
}

// Opacity returns the banner visibility in [0,1].
func (s *GamePaused) Opacity() float64 { return s.opacity }

// Offset returns the horizontal banner position in [-1,1].
func (s *GamePaused) Offset() float64 { return s.offset }

func (s *GamePaused) Update(_ domain.Tick) []domain.Event {
	var events []domain.Event
	switch {
	case s.requested, s.fade == scene.FadingIn, s.Fade() != scene.FadeNone:
	case s.input.IsTriggered(domain.ControlPause), s.input.IsTriggered(domain.ControlConfirm):
		s.requested = true
		t := domain.MustSceneTransition(domain.StateGamePaused, domain.StateGame, domain.SpeedFast)
		events = append(events, domain.NewTransitionEvent(t))
	case s.input.IsTriggered(domain.ControlBack):
		s.requested = true
		events = append(events, domain.MustEvent(domain.EventMainMenuRequested))
	case s.input.IsTriggered(domain.ControlQuit):
		events = append(events, domain.MustEvent(domain.EventQuitGameRequested))
	}

	if s.offset >= 1 {
		s.direction = -1
	} else if s.offset <= -1 {
		s.direction = 1
	}
	s.offset += bannerSpeed * s.direction
	return events
}

func (s *GamePaused) Draw(frame ports.Frame, _ domain.Tick) {
	if s.opacity > 0 {
		frame.FillScreen(ports.ColorBlack, 0.5*s.opacity)
	}
	at := ports.Anchor{X: 0.5 + bannerAmplitude*s.offset, Y: 0.25}
	frame.DrawText(at, pauseBanner, ports.ColorLightGreen, s.opacity)
	s.DrawFade(frame)
}

// BeginTransition uses a linear fade when moving between the game and the
// overlay, and the split default fade otherwise.
func (s *GamePaused) BeginTransition(t domain.SceneTransition, tick domain.Tick) {
	if t.NewState == domain.StateGamePaused {
		s.requested = false
	}
	if !overlay(s.Registry(), domain.SceneGame, t) {
		s.BeginSplitTransition(t, tick)
		return
	}
	if t.NewState == domain.StateGamePaused {
		// May still be hidden from an earlier fade out to the menu.
		s.Show()
		s.fade = scene.FadingIn
		s.opacity = 0
	} else {
		s.fade = scene.FadingOut
	}
}

func (s *GamePaused) StepTransition(degree float64, tick domain.Tick) {
	switch s.fade {
	case scene.FadingIn:
		s.opacity = degree
	case scene.FadingOut:
		s.opacity = 1 - degree
	default:
		s.Base.StepTransition(degree, tick)
	}
}

func (s *GamePaused) EndTransition(tick domain.Tick) {
	switch s.fade {
	case scene.FadingIn:
		s.opacity = 1
	case scene.FadingOut:
		s.opacity = 0
	default:
		s.Base.EndTransition(tick)
		return
	}
	s.fade = scene.FadeNone
}
