package scenes

import (
	"log/slog"
	"time"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
	"github.com/aretw0/puffin/pkg/registry"
	"github.com/aretw0/puffin/pkg/scene"
)

// Title shows the game name, then asks for the main menu once the delay has
// passed since its first update. Confirm skips the wait.
type Title struct {
	*scene.Base
	input ports.Input
	delay time.Duration

	started   bool
	startedAt time.Duration
	requested bool
}

func NewTitle(reg *registry.Registry, in ports.Input, delay time.Duration, logger *slog.Logger) (*Title, error) {
	b, err := scene.NewBase(domain.SceneTitle, reg, logger)
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultTitleDelay
	}
	return &Title{Base: b, input: in, delay: delay}, nil
}

func (s *Title) Update(tick domain.Tick) []domain.Event {
	if !s.started {
		s.started = true
		s.startedAt = tick.Total
	}
	if s.requested {
		return nil
	}

	skipped := s.input.IsTriggered(domain.ControlConfirm)
	if !skipped && tick.Total-s.startedAt < s.delay {
		return nil
	}

	s.requested = true
	s.Logger().Debug("leaving title", "skipped", skipped, "tick", tick.Index)
	t := domain.MustSceneTransition(domain.StateTitle, domain.StateMainMenu, domain.SpeedMedium)
	return []domain.Event{domain.NewTransitionEvent(t)}
}

func (s *Title) Draw(frame ports.Frame, _ domain.Tick) {
	frame.DrawText(ports.Center, "PURPLE PUFFIN", ports.ColorLightGreen, 1)
	frame.DrawText(ports.Anchor{X: 0.5, Y: 0.7}, "press confirm", ports.ColorGray, 1)
	s.DrawFade(frame)
}

// BeginTransition rearms the timer when the title comes back.
func (s *Title) BeginTransition(t domain.SceneTransition, tick domain.Tick) {
	if t.NewState == domain.StateTitle {
		s.started = false
		s.requested = false
	}
	s.Base.BeginTransition(t, tick)
}
