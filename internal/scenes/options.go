package scenes

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
	"github.com/aretw0/puffin/pkg/registry"
	"github.com/aretw0/puffin/pkg/scene"
)

const (
	maxVolume  = 100
	volumeStep = 5
)

// OptionsMenu adjusts the music volume with Left/Right. Back or Confirm
// returns to the main menu.
type OptionsMenu struct {
	*scene.Base
	input  ports.Input
	volume int
}

func NewOptionsMenu(reg *registry.Registry, in ports.Input, volume int, logger *slog.Logger) (*OptionsMenu, error) {
	b, err := scene.NewBase(domain.SceneOptionsMenu, reg, logger)
	if err != nil {
		return nil, err
	}
	return &OptionsMenu{Base: b, input: in, volume: clampVolume(volume)}, nil
}

// Volume returns the music volume in [0,100].
func (s *OptionsMenu) Volume() int { return s.volume }

func (s *OptionsMenu) Update(_ domain.Tick) []domain.Event {
	if s.Fade() != scene.FadeNone {
		return nil
	}
	switch {
	case s.input.IsTriggered(domain.ControlLeft):
		s.setVolume(s.volume - volumeStep)
	case s.input.IsTriggered(domain.ControlRight):
		s.setVolume(s.volume + volumeStep)
	case s.input.IsTriggered(domain.ControlBack), s.input.IsTriggered(domain.ControlConfirm):
		return one(domain.EventMainMenuRequested)
	}
	return nil
}

func (s *OptionsMenu) setVolume(v int) {
	v = clampVolume(v)
	if v != s.volume {
		s.volume = v
		s.Logger().Debug("music volume changed", "volume", v)
	}
}

func (s *OptionsMenu) Draw(frame ports.Frame, _ domain.Tick) {
	frame.DrawText(ports.Anchor{X: 0.5, Y: 0.3}, "Options", ports.ColorWhite, 1)
	frame.DrawText(ports.Center, fmt.Sprintf("< Music volume: %3d >", s.volume), ports.ColorLightGreen, 1)
	frame.DrawText(ports.Anchor{X: 0.5, Y: 0.7}, "Back to main menu", ports.ColorGray, 1)
	s.DrawFade(frame)
}

func clampVolume(v int) int {
	return min(max(v, 0), maxVolume)
}
