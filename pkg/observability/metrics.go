package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "puffin"

// Metrics holds the collectors updated by the orchestrator hooks.
type Metrics struct {
	Ticks              prometheus.Counter
	Events             *prometheus.CounterVec
	Transitions        *prometheus.CounterVec
	TransitionsIgnored *prometheus.CounterVec
	TransitionDegree   prometheus.Gauge
	TransitionTicks    prometheus.Histogram
	ActiveScenes       prometheus.Gauge
	Gamepads           prometheus.Gauge

	beganAt uint64
	pads    map[int]struct{} // connected gamepad indices
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total number of completed ticks.",
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Events collected from scenes and input, by kind and source scene.",
		}, []string{"kind", "source"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Scene transitions by origin, target and phase.",
		}, []string{"from", "to", "phase"}),
		TransitionsIgnored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_ignored_total",
			Help:      "Transition requests dropped, by reason.",
		}, []string{"reason"}),
		TransitionDegree: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transition_degree",
			Help:      "Progress of the in-flight transition, 0 when steady.",
		}),
		TransitionTicks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transition_ticks",
			Help:      "Ticks from transition start to completion.",
			Buckets:   []float64{1, 2, 5, 10, 20, 34, 50, 100},
		}),
		ActiveScenes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_scenes",
			Help:      "Number of scenes updated on the last tick.",
		}),
		Gamepads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gamepads_connected",
			Help:      "Gamepads currently connected.",
		}),
		pads: make(map[int]struct{}),
	}

	for _, c := range []prometheus.Collector{
		m.Ticks, m.Events, m.Transitions, m.TransitionsIgnored,
		m.TransitionDegree, m.TransitionTicks, m.ActiveScenes, m.Gamepads,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(_ context.Context, info *domain.TickInfo) {
			m.Ticks.Inc()
			m.ActiveScenes.Set(float64(len(info.State.ActiveScenes)))
		},
		OnEvent: func(_ context.Context, info *domain.DispatchInfo) {
			source := "input"
			if info.Source != domain.SceneUninitialized {
				source = info.Source.String()
			}
			m.Events.WithLabelValues(info.Event.Kind().String(), source).Inc()
		},
		OnTransitionBegin: func(_ context.Context, info *domain.TransitionInfo) {
			m.beganAt = info.Tick.Index
			m.TransitionDegree.Set(0)
			m.transition(info, "started")
		},
		OnTransitionStep: func(_ context.Context, info *domain.TransitionInfo) {
			m.TransitionDegree.Set(info.Degree)
		},
		OnTransitionEnd: func(_ context.Context, info *domain.TransitionInfo) {
			m.TransitionDegree.Set(0)
			m.TransitionTicks.Observe(float64(info.Tick.Index - m.beganAt))
			m.transition(info, "completed")
		},
		OnTransitionIgnored: func(_ context.Context, info *domain.TransitionInfo) {
			m.TransitionsIgnored.WithLabelValues(IgnoreReason(info.Err)).Inc()
		},
		OnDeviceChange: func(_ context.Context, info *domain.DispatchInfo) {
			idx, ok := info.Event.GamepadIndex()
			if !ok {
				return
			}
			// Repeated connects and unknown disconnects leave the count alone.
			if info.Event.Kind() == domain.EventGamepadConnected {
				m.pads[idx] = struct{}{}
			} else {
				delete(m.pads, idx)
			}
			m.Gamepads.Set(float64(len(m.pads)))
		},
	}
}

func (m *Metrics) transition(info *domain.TransitionInfo, phase string) {
	m.Transitions.WithLabelValues(
		info.Transition.OldState.String(),
		info.Transition.NewState.String(),
		phase,
	).Inc()
}

// IgnoreReason maps a dropped-transition error onto a short label value.
func IgnoreReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrOverlappingTransitionIgnored):
		return "overlap"
	case errors.Is(err, domain.ErrStaleTransition):
		return "stale"
	default:
		return "invalid"
	}
}
