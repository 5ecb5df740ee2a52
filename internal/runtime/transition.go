package runtime

import (
	"context"
	"slices"

	"github.com/aretw0/puffin/pkg/domain"
)

// advance runs the state machine for this tick.
//
//	Steady(S)        --candidate T, T.OldState == S--> Transitioning(T, 0)
//	Transitioning(T) --tick, d+step < 1-->             Transitioning(T, d+step)
//	Transitioning(T) --tick, d+step >= 1-->            Steady(T.NewState)
//	Transitioning(T) --candidate T2-->                 unchanged, T2 dropped
func (o *Orchestrator) advance(ctx context.Context, run *tickRun) error {
	if o.state.IsTransitioning() {
		if run.candidate != nil {
			t, _ := run.candidate.event.Transition()
			o.ignore(ctx, run, t, domain.ErrOverlappingTransitionIgnored, o.state.Transition)
		}
		return o.step(ctx, run)
	}

	if run.candidate == nil {
		return nil
	}
	t, _ := run.candidate.event.Transition()
	return o.request(ctx, run, t)
}

// request begins t if the machine is steady in t.OldState; otherwise t is dropped.
func (o *Orchestrator) request(ctx context.Context, run *tickRun, t domain.SceneTransition) error {
	if err := t.Validate(); err != nil {
		o.logger.WarnContext(ctx, "invalid transition request ignored", "transition", t.String(), "err", err)
		o.emitTransition(ctx, o.hooks.OnTransitionIgnored, run.tick, t, 0, err)
		return nil
	}
	if o.state.IsTransitioning() {
		o.ignore(ctx, run, t, domain.ErrOverlappingTransitionIgnored, o.state.Transition)
		return nil
	}
	if t.OldState != o.state.CurrState {
		o.ignore(ctx, run, t, domain.ErrStaleTransition, nil)
		return nil
	}
	return o.begin(ctx, run, t)
}

// begin enters Transitioning(t, 0). The active set becomes the old scenes
// followed by the new scenes not already present.
func (o *Orchestrator) begin(ctx context.Context, run *tickRun, t domain.SceneTransition) error {
	oldDef, err := o.registry.Lookup(t.OldState)
	if err != nil {
		return err
	}
	newDef, err := o.registry.Lookup(t.NewState)
	if err != nil {
		return err
	}

	active := oldDef.Scenes()
	var newcomers []domain.SceneType
	for _, s := range newDef.Scenes() {
		if !slices.Contains(active, s) {
			active = append(active, s)
			newcomers = append(newcomers, s)
		}
	}
	for _, s := range active {
		if _, err := o.sceneFor(s); err != nil {
			return err
		}
	}

	o.state.CurrState = domain.StateTransitioning
	o.state.ActiveScenes = active
	o.state.Transition = &t
	o.state.TransitionDegree = 0
	o.state.TransitionSteps = 0

	o.logger.InfoContext(ctx, "transition started",
		"tick", run.tick.Index,
		"from", t.OldState.String(),
		"to", t.NewState.String(),
		"step", t.DegreeStepAmount,
	)

	for _, s := range active {
		o.scenes[s].BeginTransition(t, run.tick)
	}
	o.emitTransition(ctx, o.hooks.OnTransitionBegin, run.tick, t, 0, nil)

	return o.update(ctx, run, newcomers)
}

// step advances the in-flight transition by one tick.
// Degree is derived from the step count so rounding does not accumulate.
func (o *Orchestrator) step(ctx context.Context, run *tickRun) error {
	t := *o.state.Transition
	o.state.TransitionSteps++
	degree := float64(o.state.TransitionSteps) * t.DegreeStepAmount

	if degree >= 1-domain.CompletionTolerance {
		return o.end(ctx, run, t)
	}

	o.state.TransitionDegree = degree
	for _, s := range o.state.ActiveScenes {
		o.scenes[s].StepTransition(degree, run.tick)
	}
	o.logger.DebugContext(ctx, "transition step", "tick", run.tick.Index, "degree", degree)
	o.emitTransition(ctx, o.hooks.OnTransitionStep, run.tick, t, degree, nil)
	return nil
}

// end finishes t and resets the active set to exactly the new state's scenes.
func (o *Orchestrator) end(ctx context.Context, run *tickRun, t domain.SceneTransition) error {
	newDef, err := o.registry.Lookup(t.NewState)
	if err != nil {
		return err
	}

	for _, s := range o.state.ActiveScenes {
		o.scenes[s].EndTransition(run.tick)
	}

	steps := o.state.TransitionSteps
	o.state.CurrState = t.NewState
	o.state.ActiveScenes = newDef.Scenes()
	o.state.Transition = nil
	o.state.TransitionDegree = 0
	o.state.TransitionSteps = 0

	o.logger.InfoContext(ctx, "transition finished",
		"tick", run.tick.Index,
		"state", t.NewState.String(),
		"steps", steps,
	)
	o.emitTransition(ctx, o.hooks.OnTransitionEnd, run.tick, t, 1, nil)
	return nil
}

// ignoreDuplicate drops a transition request that lost the per-tick tie-break.
func (o *Orchestrator) ignoreDuplicate(ctx context.Context, run *tickRun, t domain.SceneTransition) {
	inFlight := o.state.Transition
	if inFlight == nil && run.candidate != nil {
		c, _ := run.candidate.event.Transition()
		inFlight = &c
	}
	o.ignore(ctx, run, t, domain.ErrOverlappingTransitionIgnored, inFlight)
}

func (o *Orchestrator) ignore(ctx context.Context, run *tickRun, t domain.SceneTransition, reason error, inFlight *domain.SceneTransition) {
	err := &domain.TransitionError{Err: reason, Ignored: t}
	if inFlight != nil {
		c := *inFlight
		err.InFlight = &c
	}
	o.logger.WarnContext(ctx, "transition request ignored", "tick", run.tick.Index, "err", err)
	o.emitTransition(ctx, o.hooks.OnTransitionIgnored, run.tick, t, o.state.TransitionDegree, err)
}
