package domain

import (
	"fmt"
)

// EventKind tags what happened during a tick.
type EventKind int

const (
	// EventUninitialized is the zero value. It never appears on a constructed Event.
	EventUninitialized EventKind = iota
	EventGamepadConnected
	EventGamepadDisconnected
	EventTransitionRequested
	EventStartNewGameRequested
	EventPauseGameRequested
	EventUnpauseGameRequested
	EventMainMenuRequested
	EventOptionsMenuRequested
	EventQuitGameRequested
)

var eventKindNames = map[EventKind]string{
	EventUninitialized:         "uninitialized",
	EventGamepadConnected:      "gamepad_connected",
	EventGamepadDisconnected:   "gamepad_disconnected",
	EventTransitionRequested:   "transition_requested",
	EventStartNewGameRequested: "start_new_game_requested",
	EventPauseGameRequested:    "pause_game_requested",
	EventUnpauseGameRequested:  "unpause_game_requested",
	EventMainMenuRequested:     "main_menu_requested",
	EventOptionsMenuRequested:  "options_menu_requested",
	EventQuitGameRequested:     "quit_game_requested",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event_kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) {
	if _, ok := eventKindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEventKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EventKind) UnmarshalText(text []byte) error {
	for kind, name := range eventKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidEventKind, string(text))
}

// IsNavigation reports whether the kind asks to move to another screen.
func (k EventKind) IsNavigation() bool {
	switch k {
	case EventStartNewGameRequested,
		EventPauseGameRequested,
		EventUnpauseGameRequested,
		EventMainMenuRequested,
		EventOptionsMenuRequested:
		return true
	}
	return false
}

// IsDevice reports whether the kind describes a gamepad connectivity change.
func (k EventKind) IsDevice() bool {
	return k == EventGamepadConnected || k == EventGamepadDisconnected
}

// Event is an immutable value describing something that happened during a tick.
// Only the payload relevant to its kind is populated.
type Event struct {
	kind         EventKind
	transition   *SceneTransition
	gamepadIndex int
}

// NewEvent builds an event for a kind that carries no payload.
func NewEvent(kind EventKind) (Event, error) {
	switch {
	case kind == EventUninitialized:
		return Event{}, fmt.Errorf("cannot construct event with kind %s: %w", kind, ErrInvalidEventKind)
	case kind == EventTransitionRequested, kind.IsDevice():
		return Event{}, fmt.Errorf("event kind %s: %w", kind, ErrMissingPayload)
	}
	if _, ok := eventKindNames[kind]; !ok {
		return Event{}, fmt.Errorf("cannot construct event with kind %s: %w", kind, ErrInvalidEventKind)
	}
	return Event{kind: kind}, nil
}

// MustEvent is like NewEvent but panics on error.
// Constructing an invalid event is a programming error.
func MustEvent(kind EventKind) Event {
	ev, err := NewEvent(kind)
	if err != nil {
		panic(err)
	}
	return ev
}

// NewTransitionEvent requests a move between two abstract states.
func NewTransitionEvent(t SceneTransition) Event {
	return Event{kind: EventTransitionRequested, transition: &t}
}

// NewGamepadConnectedEvent reports a newly connected device.
func NewGamepadConnectedEvent(index int) Event {
	return Event{kind: EventGamepadConnected, gamepadIndex: index}
}

// NewGamepadDisconnectedEvent reports a removed device.
func NewGamepadDisconnectedEvent(index int) Event {
	return Event{kind: EventGamepadDisconnected, gamepadIndex: index}
}

// Kind returns the event tag.
func (e Event) Kind() EventKind { return e.kind }

// Transition returns the requested transition for EventTransitionRequested.
func (e Event) Transition() (SceneTransition, bool) {
	if e.kind != EventTransitionRequested || e.transition == nil {
		return SceneTransition{}, false
	}
	return *e.transition, true
}

// GamepadIndex returns the device index for gamepad events.
func (e Event) GamepadIndex() (int, bool) {
	if !e.kind.IsDevice() {
		return 0, false
	}
	return e.gamepadIndex, true
}

func (e Event) String() string {
	switch {
	case e.kind == EventTransitionRequested && e.transition != nil:
		return fmt.Sprintf("%s{%s}", e.kind, e.transition)
	case e.kind.IsDevice():
		return fmt.Sprintf("%s{index: %d}", e.kind, e.gamepadIndex)
	}
	return e.kind.String()
}
