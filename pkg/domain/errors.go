package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidEventKind is returned when an event is built with the uninitialized
// (or an unknown) kind. It always indicates a programming error.
var ErrInvalidEventKind = errors.New("invalid event kind")

// ErrMissingPayload is returned by NewEvent for kinds that need a typed constructor.
var ErrMissingPayload = errors.New("event kind requires a payload")

// ErrUnregisteredSceneState is returned when a state has no registry entry.
var ErrUnregisteredSceneState = errors.New("unregistered scene state")

// ErrSceneNotFound is returned when an active scene type has no instance.
var ErrSceneNotFound = errors.New("scene not found")

// ErrOverlappingTransitionIgnored reports a transition request dropped because
// another transition was already in flight.
var ErrOverlappingTransitionIgnored = errors.New("overlapping transition ignored")

// ErrStaleTransition reports a request whose old state is not the current state.
var ErrStaleTransition = errors.New("transition does not start from the current state")

// ErrUnsupportedDefaultTransition reports that the default fade only handles
// one-old-scene-to-one-new-scene swaps.
var ErrUnsupportedDefaultTransition = errors.New("default transition supports only one-to-one scene swaps")

// ErrInvalidStepAmount is returned for a non-positive DegreeStepAmount.
var ErrInvalidStepAmount = errors.New("degree step amount must be positive")

// ErrInvalidTransitionState is returned when a transition endpoint is not a
// concrete application state.
var ErrInvalidTransitionState = errors.New("invalid transition state")

// ErrSnapshotNotFound is returned by snapshot stores before the first save.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// TransitionError describes a recoverable transition condition.
type TransitionError struct {
	Err      error
	InFlight *SceneTransition // nil unless a transition was running
	Ignored  SceneTransition
}

func (e *TransitionError) Error() string {
	if e.InFlight != nil {
		return fmt.Sprintf("%v: in flight [%s], ignored [%s]", e.Err, e.InFlight, e.Ignored)
	}
	return fmt.Sprintf("%v: ignored [%s]", e.Err, e.Ignored)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
