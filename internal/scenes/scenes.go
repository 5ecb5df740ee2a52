// Package scenes holds the concrete scenes of the game: title, menus, gameplay
// and the pause overlay. Every scene reads controls through ports.Input and
// reports intent only by returning events from Update.
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

// DefaultTitleDelay is how long the title stays up before the main menu.
const DefaultTitleDelay = 2 * time.Second

// Options tunes the concrete scenes.
type Options struct {
	TitleDelay time.Duration
	Volume     int
}

// DefaultOptions returns the values the game ships with.
func DefaultOptions() Options {
	return Options{TitleDelay: DefaultTitleDelay, Volume: 50}
}

// NewSet builds one instance of every scene type, in the order of domain.AllSceneTypes.
func NewSet(reg *registry.Registry, in ports.Input, opts Options, logger *slog.Logger) ([]scene.Scene, error) {
	if in == nil {
		return nil, fmt.Errorf("scenes: input is required")
	}

	title, err := NewTitle(reg, in, opts.TitleDelay, logger)
	if err != nil {
		return nil, err
	}
	menu, err := NewMainMenu(reg, in, logger)
	if err != nil {
		return nil, err
	}
	options, err := NewOptionsMenu(reg, in, opts.Volume, logger)
	if err != nil {
		return nil, err
	}
	game, err := NewGame(reg, in, logger)
	if err != nil {
		return nil, err
	}
	paused, err := NewGamePaused(reg, in, logger)
	if err != nil {
		return nil, err
	}
	return []scene.Scene{title, menu, options, game, paused}, nil
}

// overlay reports whether t moves between two states that both contain st.
func overlay(reg *registry.Registry, st domain.SceneType, t domain.SceneTransition) bool {
	oldDef, err := reg.Lookup(t.OldState)
	if err != nil {
		return false
	}
	newDef, err := reg.Lookup(t.NewState)
	if err != nil {
		return false
	}
	return oldDef.Contains(st) && newDef.Contains(st)
}

func one(kind domain.EventKind) []domain.Event {
	return []domain.Event{domain.MustEvent(kind)}
}
