package domain

import (
	"context"
)

// TickInfo is reported after every completed tick.
type TickInfo struct {
	Tick  Tick
	State *SceneState // copy, safe to retain
}

// DispatchInfo describes one event collected during a tick.
type DispatchInfo struct {
	Tick Tick

	// Source is the emitting scene, or SceneUninitialized for input-sourced events.
	Source SceneType
	Event  Event
}

// TransitionInfo describes a step of the transition lifecycle.
type TransitionInfo struct {
	Tick       Tick
	Transition SceneTransition
	Degree     float64

	// Err is set for OnTransitionIgnored and wraps the reason.
	Err error
}

// LifecycleHooks defines callbacks for orchestrator observability.
// All hooks run synchronously on the tick goroutine.
type LifecycleHooks struct {
	OnTick              func(context.Context, *TickInfo)
	OnEvent             func(context.Context, *DispatchInfo)
	OnTransitionBegin   func(context.Context, *TransitionInfo)
	OnTransitionStep    func(context.Context, *TransitionInfo)
	OnTransitionEnd     func(context.Context, *TransitionInfo)
	OnTransitionIgnored func(context.Context, *TransitionInfo)
	OnDeviceChange      func(context.Context, *DispatchInfo)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTick:              chain(h.OnTick, other.OnTick),
		OnEvent:             chain(h.OnEvent, other.OnEvent),
		OnTransitionBegin:   chain(h.OnTransitionBegin, other.OnTransitionBegin),
		OnTransitionStep:    chain(h.OnTransitionStep, other.OnTransitionStep),
		OnTransitionEnd:     chain(h.OnTransitionEnd, other.OnTransitionEnd),
		OnTransitionIgnored: chain(h.OnTransitionIgnored, other.OnTransitionIgnored),
		OnDeviceChange:      chain(h.OnDeviceChange, other.OnDeviceChange),
	}
}

func chain[T any](a, b func(context.Context, T)) func(context.Context, T) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, v T) {
		a(ctx, v)
		b(ctx, v)
	}
}
