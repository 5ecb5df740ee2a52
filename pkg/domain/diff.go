package domain

import (
	"slices"
)

// StateDiff represents the changes between two runtime scene states.
// It is designed to be serialized to JSON for observers that only want deltas.
type StateDiff struct {
	// CurrState is set when the current state changed.
	CurrState *SceneStateEnum `json:"curr_state,omitempty"`

	// Activated and Deactivated list scenes that entered or left the active set.
	Activated   []SceneType `json:"activated,omitempty"`
	Deactivated []SceneType `json:"deactivated,omitempty"`

	// Transition is set when a transition started. TransitionCleared when one ended.
	Transition        *SceneTransition `json:"transition,omitempty"`
	TransitionCleared bool             `json:"transition_cleared,omitempty"`

	// Degree is set when the progress of the in-flight transition moved.
	Degree *float64 `json:"degree,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *SceneState) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{}

	if oldState == nil || oldState.CurrState != newState.CurrState {
		curr := newState.CurrState
		diff.CurrState = &curr
	}

	var oldScenes []SceneType
	if oldState != nil {
		oldScenes = oldState.ActiveScenes
	}
	diff.Activated, diff.Deactivated = diffScenes(oldScenes, newState.ActiveScenes)

	switch {
	case newState.Transition != nil && (oldState == nil || oldState.Transition == nil || *oldState.Transition != *newState.Transition):
		t := *newState.Transition
		diff.Transition = &t
	case newState.Transition == nil && oldState != nil && oldState.Transition != nil:
		diff.TransitionCleared = true
	}

	if newState.Transition != nil && (oldState == nil || oldState.TransitionDegree != newState.TransitionDegree) {
		d := newState.TransitionDegree
		diff.Degree = &d
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffScenes(old, new []SceneType) (activated, deactivated []SceneType) {
	for _, s := range new {
		if !slices.Contains(old, s) {
			activated = append(activated, s)
		}
	}
	for _, s := range old {
		if !slices.Contains(new, s) {
			deactivated = append(deactivated, s)
		}
	}
	return activated, deactivated
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.CurrState == nil &&
		len(d.Activated) == 0 &&
		len(d.Deactivated) == 0 &&
		d.Transition == nil &&
		!d.TransitionCleared &&
		d.Degree == nil
}
