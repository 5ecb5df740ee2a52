package domain

import "slices"

// SceneState is the mutable runtime record of which abstract state is current,
// which scenes are active and which transition, if any, is in flight.
// It is owned by the orchestrator; observers only ever see copies.
type SceneState struct {
	// CurrState is the steady state, or StateTransitioning while a transition runs.
	CurrState SceneStateEnum `json:"curr_state"`

	// ActiveScenes is ordered: draw order back-to-front, update order first-to-last.
	ActiveScenes []SceneType `json:"active_scenes"`

	// Transition is nil when no transition is in flight.
	Transition *SceneTransition `json:"transition,omitempty"`

	// TransitionDegree is the cumulative progress of Transition in [0,1].
	TransitionDegree float64 `json:"transition_degree"`

	// TransitionSteps counts the ticks Transition has advanced.
	TransitionSteps int `json:"transition_steps"`
}

// NewSceneState creates a steady state with the given active scenes.
func NewSceneState(state SceneStateEnum, scenes []SceneType) *SceneState {
	return &SceneState{
		CurrState:    state,
		ActiveScenes: slices.Clone(scenes),
	}
}

// IsTransitioning reports whether a transition is in flight.
func (s *SceneState) IsTransitioning() bool {
	return s.Transition != nil
}

// IsActive reports whether the scene is currently in the active set.
func (s *SceneState) IsActive(t SceneType) bool {
	return slices.Contains(s.ActiveScenes, t)
}

// Clone returns a deep copy.
func (s *SceneState) Clone() *SceneState {
	if s == nil {
		return nil
	}
	next := *s
	next.ActiveScenes = slices.Clone(s.ActiveScenes)
	if s.Transition != nil {
		t := *s.Transition
		next.Transition = &t
	}
	return &next
}

// Snapshot is a point-in-time copy of the runtime state published to observers.
type Snapshot struct {
	Tick  uint64      `json:"tick"`
	State *SceneState `json:"state"`
	Done  bool        `json:"done"`
}
