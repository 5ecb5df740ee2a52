package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	title := StateTitle
	trans := StateTransitioning
	mainMenu := StateMainMenu
	tr := MustSceneTransition(StateTitle, StateMainMenu, 0.5)
	half := 0.5

	tests := []struct {
		name     string
		old      *SceneState
		new      *SceneState
		wantDiff *StateDiff // nil means we expect no diff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new:  NewSceneState(StateTitle, []SceneType{SceneTitle}),
			wantDiff: &StateDiff{
				CurrState: &title,
				Activated: []SceneType{SceneTitle},
			},
		},
		{
			name:     "No Changes",
			old:      NewSceneState(StateTitle, []SceneType{SceneTitle}),
			new:      NewSceneState(StateTitle, []SceneType{SceneTitle}),
			wantDiff: nil,
		},
		{
			name: "Transition Begins",
			old:  NewSceneState(StateTitle, []SceneType{SceneTitle}),
			new: &SceneState{
				CurrState:    StateTransitioning,
				ActiveScenes: []SceneType{SceneTitle, SceneMainMenu},
				Transition:   &tr,
			},
			wantDiff: &StateDiff{
				CurrState:  &trans,
				Activated:  []SceneType{SceneMainMenu},
				Transition: &tr,
			},
		},
		{
			name: "Transition Steps",
			old: &SceneState{
				CurrState:    StateTransitioning,
				ActiveScenes: []SceneType{SceneTitle, SceneMainMenu},
				Transition:   &tr,
			},
			new: &SceneState{
				CurrState:        StateTransitioning,
				ActiveScenes:     []SceneType{SceneTitle, SceneMainMenu},
				Transition:       &tr,
				TransitionDegree: 0.5,
				TransitionSteps:  1,
			},
			wantDiff: &StateDiff{Degree: &half},
		},
		{
			name: "Transition Ends",
			old: &SceneState{
				CurrState:        StateTransitioning,
				ActiveScenes:     []SceneType{SceneTitle, SceneMainMenu},
				Transition:       &tr,
				TransitionDegree: 0.5,
			},
			new: NewSceneState(StateMainMenu, []SceneType{SceneMainMenu}),
			wantDiff: &StateDiff{
				CurrState:         &mainMenu,
				Deactivated:       []SceneType{SceneTitle},
				TransitionCleared: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantDiff == nil {
				if got != nil {
					t.Errorf("Diff() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Diff() = nil, want %+v", tt.wantDiff)
			}
			if !equalPtr(got.CurrState, tt.wantDiff.CurrState) {
				t.Errorf("Diff().CurrState = %v, want %v", got.CurrState, tt.wantDiff.CurrState)
			}
			if !reflect.DeepEqual(got.Activated, tt.wantDiff.Activated) {
				t.Errorf("Diff().Activated = %v, want %v", got.Activated, tt.wantDiff.Activated)
			}
			if !reflect.DeepEqual(got.Deactivated, tt.wantDiff.Deactivated) {
				t.Errorf("Diff().Deactivated = %v, want %v", got.Deactivated, tt.wantDiff.Deactivated)
			}
			if !equalPtr(got.Transition, tt.wantDiff.Transition) {
				t.Errorf("Diff().Transition = %v, want %v", got.Transition, tt.wantDiff.Transition)
			}
			if got.TransitionCleared != tt.wantDiff.TransitionCleared {
				t.Errorf("Diff().TransitionCleared = %v, want %v", got.TransitionCleared, tt.wantDiff.TransitionCleared)
			}
			if !equalPtr(got.Degree, tt.wantDiff.Degree) {
				t.Errorf("Diff().Degree = %v, want %v", got.Degree, tt.wantDiff.Degree)
			}
		})
	}
}

func TestDiffJSONSerialization(t *testing.T) {
	t.Run("Unchanged Fields Omitted", func(t *testing.T) {
		s1 := NewSceneState(StateGame, []SceneType{SceneGame})
		s2 := NewSceneState(StateGamePaused, []SceneType{SceneGame, SceneGamePaused})

		diff := Diff(s1, s2)
		if diff == nil {
			t.Fatal("Expected diff, got nil")
		}
		bytes, _ := json.Marshal(diff)
		if strings.Contains(string(bytes), `"deactivated"`) {
			t.Errorf("JSON should not contain 'deactivated' when empty, got: %s", string(bytes))
		}
		if !strings.Contains(string(bytes), `"activated":["game_paused"]`) {
			t.Errorf("JSON should name activated scenes, got: %s", string(bytes))
		}
	})
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
