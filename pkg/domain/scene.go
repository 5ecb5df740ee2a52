package domain

import "fmt"

// SceneStateEnum names an abstract application state: a configuration of
// scenes that are active at the same time.
type SceneStateEnum int

const (
	StateInvalid SceneStateEnum = iota
	StateTitle
	StateMainMenu
	StateOptionsMenu
	StateGame
	StateGamePaused

	// StateTransitioning is held by the runtime state while a transition is in
	// flight. It is never the endpoint of a SceneTransition.
	StateTransitioning
)

var sceneStateNames = map[SceneStateEnum]string{
	StateInvalid:       "invalid",
	StateTitle:         "title",
	StateMainMenu:      "main_menu",
	StateOptionsMenu:   "options_menu",
	StateGame:          "game",
	StateGamePaused:    "game_paused",
	StateTransitioning: "transitioning",
}

func (s SceneStateEnum) String() string {
	if name, ok := sceneStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("scene_state(%d)", int(s))
}

// Valid reports whether s may be the endpoint of a transition or a registry key.
func (s SceneStateEnum) Valid() bool {
	return s > StateInvalid && s < StateTransitioning
}

// MarshalText implements encoding.TextMarshaler.
func (s SceneStateEnum) MarshalText() ([]byte, error) {
	if _, ok := sceneStateNames[s]; !ok {
		return nil, fmt.Errorf("unknown scene state %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SceneStateEnum) UnmarshalText(text []byte) error {
	for state, name := range sceneStateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown scene state %q", string(text))
}

// SceneType identifies one concrete scene implementation.
type SceneType int

const (
	// SceneUninitialized is the zero value. A constructed scene never keeps it.
	SceneUninitialized SceneType = iota
	SceneTitle
	SceneMainMenu
	SceneOptionsMenu
	SceneGame
	SceneGamePaused
)

var sceneTypeNames = map[SceneType]string{
	SceneUninitialized: "uninitialized",
	SceneTitle:         "title",
	SceneMainMenu:      "main_menu",
	SceneOptionsMenu:   "options_menu",
	SceneGame:          "game",
	SceneGamePaused:    "game_paused",
}

// AllSceneTypes lists every concrete scene type.
func AllSceneTypes() []SceneType {
	return []SceneType{SceneTitle, SceneMainMenu, SceneOptionsMenu, SceneGame, SceneGamePaused}
}

func (t SceneType) String() string {
	if name, ok := sceneTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("scene_type(%d)", int(t))
}

// Valid reports whether t names a concrete scene.
func (t SceneType) Valid() bool {
	return t > SceneUninitialized && t <= SceneGamePaused
}

// MarshalText implements encoding.TextMarshaler.
func (t SceneType) MarshalText() ([]byte, error) {
	if _, ok := sceneTypeNames[t]; !ok {
		return nil, fmt.Errorf("unknown scene type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SceneType) UnmarshalText(text []byte) error {
	for typ, name := range sceneTypeNames {
		if name == string(text) {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown scene type %q", string(text))
}
