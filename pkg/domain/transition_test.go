package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSceneTransition(t *testing.T) {
	tests := []struct {
		name    string
		old     SceneStateEnum
		new     SceneStateEnum
		step    float64
		wantErr error
	}{
		{"valid", StateTitle, StateMainMenu, SpeedMedium, nil},
		{"zero step", StateTitle, StateMainMenu, 0, ErrInvalidStepAmount},
		{"negative step", StateTitle, StateMainMenu, -0.1, ErrInvalidStepAmount},
		{"transitioning as old", StateTransitioning, StateMainMenu, 0.1, ErrInvalidTransitionState},
		{"transitioning as new", StateTitle, StateTransitioning, 0.1, ErrInvalidTransitionState},
		{"invalid state", StateInvalid, StateGame, 0.1, ErrInvalidTransitionState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewSceneTransition(tt.old, tt.new, tt.step)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.old, tr.OldState)
			assert.Equal(t, tt.new, tr.NewState)
			assert.Equal(t, tt.step, tr.DegreeStepAmount)
		})
	}
}

func TestTransitionError(t *testing.T) {
	inFlight := MustSceneTransition(StateTitle, StateMainMenu, 0.5)
	ignored := MustSceneTransition(StateMainMenu, StateOptionsMenu, 0.5)

	err := &TransitionError{Err: ErrOverlappingTransitionIgnored, InFlight: &inFlight, Ignored: ignored}
	assert.ErrorIs(t, err, ErrOverlappingTransitionIgnored)
	assert.Contains(t, err.Error(), "title -> main_menu")
	assert.Contains(t, err.Error(), "main_menu -> options_menu")
}

func TestSceneState_Clone(t *testing.T) {
	tr := MustSceneTransition(StateTitle, StateMainMenu, 0.5)
	s := NewSceneState(StateTitle, []SceneType{SceneTitle})
	s.Transition = &tr

	c := s.Clone()
	c.ActiveScenes[0] = SceneGame
	c.Transition.NewState = StateGame

	assert.Equal(t, SceneTitle, s.ActiveScenes[0])
	assert.Equal(t, StateMainMenu, s.Transition.NewState)
	assert.True(t, s.IsTransitioning())
	assert.True(t, s.IsActive(SceneTitle))
}

func TestTicksToComplete(t *testing.T) {
	for step, want := range map[float64]int{
		SpeedSlow:   100,
		SpeedMedium: 34,
		SpeedFast:   10,
		0.3:         4,
		0.5:         2,
		1:           1,
		2:           1,
		0:           0,
		-0.1:        0,
	} {
		assert.Equal(t, want, TicksToComplete(step), "step %g", step)
	}
}

func TestTicksToComplete_TinySteps(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.Equal(t, MaxTicksToComplete, TicksToComplete(1e-300))
		assert.Equal(t, MaxTicksToComplete, TicksToComplete(math.SmallestNonzeroFloat64))
		assert.Equal(t, 1_000_000, TicksToComplete(1e-6))
		assert.Equal(t, 1, TicksToComplete(math.Inf(1)))
		assert.Equal(t, 0, TicksToComplete(math.NaN()))
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("TicksToComplete did not return")
	}
}
