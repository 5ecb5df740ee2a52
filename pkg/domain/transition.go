package domain

import (
	"fmt"
	"math"
)

// Named transition speeds, expressed as the progress added per tick.
const (
	SpeedSlow   = 0.01
	SpeedMedium = 0.03
	SpeedFast   = 0.1
)

// CompletionTolerance absorbs float rounding so a transition always completes
// in a bounded number of ticks.
const CompletionTolerance = 1e-9

// MaxTicksToComplete caps TicksToComplete for vanishingly small steps.
const MaxTicksToComplete = math.MaxInt32

// TicksToComplete returns how many ticks a transition with the given step
// takes to finish, or 0 for an invalid step. The result never exceeds
// MaxTicksToComplete.
func TicksToComplete(step float64) int {
	if !(step > 0) {
		return 0
	}
	ratio := (1 - CompletionTolerance) / step
	if ratio >= MaxTicksToComplete {
		return MaxTicksToComplete
	}
	n := max(1, int(math.Ceil(ratio)))
	// Ceil can be off by one either way after rounding.
	if n > 1 && float64(n-1)*step >= 1-CompletionTolerance {
		n--
	}
	if float64(n)*step < 1-CompletionTolerance {
		n++
	}
	return n
}

// SceneTransition describes a requested move from one abstract state to another.
// It is immutable once built.
type SceneTransition struct {
	OldState SceneStateEnum `json:"old_state"`
	NewState SceneStateEnum `json:"new_state"`

	// DegreeStepAmount is added to the transition progress every tick. Always > 0.
	DegreeStepAmount float64 `json:"degree_step_amount"`
}

// NewSceneTransition validates and builds a transition.
func NewSceneTransition(oldState, newState SceneStateEnum, step float64) (SceneTransition, error) {
	t := SceneTransition{OldState: oldState, NewState: newState, DegreeStepAmount: step}
	if err := t.Validate(); err != nil {
		return SceneTransition{}, err
	}
	return t, nil
}

// MustSceneTransition is like NewSceneTransition but panics on error.
func MustSceneTransition(oldState, newState SceneStateEnum, step float64) SceneTransition {
	t, err := NewSceneTransition(oldState, newState, step)
	if err != nil {
		panic(err)
	}
	return t
}

// Validate checks the transition invariants.
func (t SceneTransition) Validate() error {
	if !(t.DegreeStepAmount > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidStepAmount, t.DegreeStepAmount)
	}
	if !t.OldState.Valid() {
		return fmt.Errorf("%w: old state %s", ErrInvalidTransitionState, t.OldState)
	}
	if !t.NewState.Valid() {
		return fmt.Errorf("%w: new state %s", ErrInvalidTransitionState, t.NewState)
	}
	return nil
}

func (t SceneTransition) String() string {
	return fmt.Sprintf("%s -> %s (step %g)", t.OldState, t.NewState, t.DegreeStepAmount)
}
