package scenes

import (
	"log/slog"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
	"github.com/aretw0/puffin/pkg/registry"
	"github.com/aretw0/puffin/pkg/scene"
)

// MenuItem is one selectable entry of the main menu.
type MenuItem struct {
	Label string
	Event domain.EventKind
}

// MainMenuItems are the entries of the main menu, top to bottom.
var MainMenuItems = []MenuItem{
	{Label: "Start New Game", Event: domain.EventStartNewGameRequested},
	{Label: "Options", Event: domain.EventOptionsMenuRequested},
	{Label: "Quit", Event: domain.EventQuitGameRequested},
}

// MainMenu moves a cursor with Up/Down and emits the selected entry's event on Confirm.
type MainMenu struct {
	*scene.Base
	input  ports.Input
	cursor int
}

func NewMainMenu(reg *registry.Registry, in ports.Input, logger *slog.Logger) (*MainMenu, error) {
	b, err := scene.NewBase(domain.SceneMainMenu, reg, logger)
	if err != nil {
		return nil, err
	}
	return &MainMenu{Base: b, input: in}, nil
}

// Cursor returns the index of the highlighted item.
func (s *MainMenu) Cursor() int { return s.cursor }

func (s *MainMenu) Update(_ domain.Tick) []domain.Event {
	// Input is ignored while the menu fades, so the press that opened it
	// does not also select an item.
	if s.Fade() != scene.FadeNone {
		return nil
	}
	n := len(MainMenuItems)
	switch {
	case s.input.IsTriggered(domain.ControlUp):
		s.cursor = (s.cursor + n - 1) % n
	case s.input.IsTriggered(domain.ControlDown):
		s.cursor = (s.cursor + 1) % n
	case s.input.IsTriggered(domain.ControlConfirm):
		item := MainMenuItems[s.cursor]
		s.Logger().Debug("menu item selected", "item", item.Label)
		return one(item.Event)
	case s.input.IsTriggered(domain.ControlQuit):
		return one(domain.EventQuitGameRequested)
	}
	return nil
}

func (s *MainMenu) Draw(frame ports.Frame, _ domain.Tick) {
	for i, item := range MainMenuItems {
		c := ports.ColorWhite
		label := "  " + item.Label
		if i == s.cursor {
			c = ports.ColorLightGreen
			label = "> " + item.Label
		}
		frame.DrawText(ports.Anchor{X: 0.5, Y: 0.4 + float64(i)*0.1}, label, c, 1)
	}
	s.DrawFade(frame)
}

// BeginTransition fades the menu over any state shape, so leaving the pause
// overlay for the menu fades the game out before the menu appears.
func (s *MainMenu) BeginTransition(t domain.SceneTransition, tick domain.Tick) {
	s.BeginSplitTransition(t, tick)
}
