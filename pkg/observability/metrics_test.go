package observability

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_GamepadsNeverNegative(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	h := m.Hooks()
	ctx := context.Background()
	change := func(e domain.Event) { h.OnDeviceChange(ctx, &domain.DispatchInfo{Event: e}) }

	change(domain.NewGamepadDisconnectedEvent(3))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Gamepads), "disconnect without connect")

	change(domain.NewGamepadConnectedEvent(1))
	change(domain.NewGamepadConnectedEvent(1))
	change(domain.NewGamepadConnectedEvent(2))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Gamepads), "indices are counted once")

	change(domain.NewGamepadDisconnectedEvent(1))
	change(domain.NewGamepadDisconnectedEvent(1))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Gamepads))
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	h := m.Hooks()
	ctx := context.Background()

	tr := domain.MustSceneTransition(domain.StateTitle, domain.StateMainMenu, 0.5)
	state := domain.NewSceneState(domain.StateTransitioning, []domain.SceneType{domain.SceneTitle, domain.SceneMainMenu})

	h.OnEvent(ctx, &domain.DispatchInfo{Source: domain.SceneTitle, Event: domain.NewTransitionEvent(tr)})
	h.OnEvent(ctx, &domain.DispatchInfo{Event: domain.NewGamepadConnectedEvent(0)})
	h.OnDeviceChange(ctx, &domain.DispatchInfo{Event: domain.NewGamepadConnectedEvent(0)})
	h.OnTransitionBegin(ctx, &domain.TransitionInfo{Tick: domain.Tick{Index: 1}, Transition: tr})
	h.OnTick(ctx, &domain.TickInfo{Tick: domain.Tick{Index: 1}, State: state})
	h.OnTransitionStep(ctx, &domain.TransitionInfo{Tick: domain.Tick{Index: 2}, Transition: tr, Degree: 0.5})

	assert.Equal(t, 0.5, testutil.ToFloat64(m.TransitionDegree))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActiveScenes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Gamepads))

	h.OnTransitionEnd(ctx, &domain.TransitionInfo{Tick: domain.Tick{Index: 3}, Transition: tr, Degree: 1})
	h.OnTransitionIgnored(ctx, &domain.TransitionInfo{Err: &domain.TransitionError{Err: domain.ErrOverlappingTransitionIgnored}})
	h.OnTransitionIgnored(ctx, &domain.TransitionInfo{Err: fmt.Errorf("wrapped: %w", domain.ErrStaleTransition)})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Ticks))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TransitionDegree))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Events.WithLabelValues("transition_requested", "title")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Events.WithLabelValues("gamepad_connected", "input")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("title", "main_menu", "started")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("title", "main_menu", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransitionsIgnored.WithLabelValues("overlap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransitionsIgnored.WithLabelValues("stale")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TransitionTicks))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestIgnoreReason(t *testing.T) {
	assert.Equal(t, "overlap", IgnoreReason(domain.ErrOverlappingTransitionIgnored))
	assert.Equal(t, "stale", IgnoreReason(domain.ErrStaleTransition))
	assert.Equal(t, "invalid", IgnoreReason(domain.ErrInvalidStepAmount))
}
