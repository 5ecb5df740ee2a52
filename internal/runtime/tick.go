package runtime

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/puffin/pkg/domain"
)

// pending is an event waiting to be processed, with the scene that emitted it.
type pending struct {
	source domain.SceneType
	event  domain.Event
}

// tickRun carries the per-tick working set.
type tickRun struct {
	tick      domain.Tick
	candidate *pending
	queue     []pending
}

// Tick runs one fixed time-step:
//  1. sample input and device connectivity
//  2. update every active scene, in registry order
//  3. flatten the emitted events, keeping scene order and emission order
//  4. take the first transition request as the candidate
//  5. run the transition state machine
//  6. process the remaining events
//  7. draw every active scene that should be drawn
//
// Errors are fatal configuration problems; recoverable conditions are logged.
// After a quit request Tick does nothing.
func (o *Orchestrator) Tick(ctx context.Context, tick domain.Tick) error {
	if o.done {
		return nil
	}
	run := &tickRun{tick: tick}

	if err := o.poll(ctx, run); err != nil {
		return err
	}

	// Iterate over a copy: a transition may rewrite the active set mid-tick.
	if err := o.update(ctx, run, slices.Clone(o.state.ActiveScenes)); err != nil {
		return err
	}

	run.candidate, run.queue = extractCandidate(run.queue)

	if err := o.advance(ctx, run); err != nil {
		return err
	}

	stop, err := o.dispatch(ctx, run)
	if err != nil || stop {
		return err
	}

	if err := o.draw(tick); err != nil {
		return err
	}

	o.emitTick(ctx, tick)
	return nil
}

// poll samples the input source and queues device changes as events.
func (o *Orchestrator) poll(ctx context.Context, run *tickRun) error {
	if o.source == nil {
		o.input.Sample(nil)
		return nil
	}

	sample, err := o.source.Poll(ctx)
	if err != nil {
		return fmt.Errorf("poll input: %w", err)
	}
	o.input.Sample(sample.Pressed)

	for _, d := range sample.Devices {
		o.enqueue(ctx, run, domain.SceneUninitialized, d.Event())
	}
	return nil
}

// update calls Update on the given scenes and queues their events.
func (o *Orchestrator) update(ctx context.Context, run *tickRun, scenes []domain.SceneType) error {
	for _, t := range scenes {
		s, err := o.sceneFor(t)
		if err != nil {
			return err
		}
		for _, ev := range s.Update(run.tick) {
			o.enqueue(ctx, run, t, ev)
		}
	}
	return nil
}

func (o *Orchestrator) enqueue(ctx context.Context, run *tickRun, source domain.SceneType, ev domain.Event) {
	run.queue = append(run.queue, pending{source: source, event: ev})
	if o.hooks.OnEvent != nil {
		o.hooks.OnEvent(ctx, &domain.DispatchInfo{Tick: run.tick, Source: source, Event: ev})
	}
}

// extractCandidate removes the first transition request from events.
// Scenes are updated in registry order, so the earliest scene wins; later
// requests in the same tick are dropped during dispatch.
func extractCandidate(events []pending) (*pending, []pending) {
	for i, p := range events {
		if p.event.Kind() == domain.EventTransitionRequested {
			rest := make([]pending, 0, len(events)-1)
			rest = append(rest, events[:i]...)
			rest = append(rest, events[i+1:]...)
			return &p, rest
		}
	}
	return nil, events
}

// dispatch processes the queued events in emission order. Events queued while
// dispatching (updates of scenes that just joined) are processed too.
// It returns true when a quit request stopped the tick.
func (o *Orchestrator) dispatch(ctx context.Context, run *tickRun) (bool, error) {
	for i := 0; i < len(run.queue); i++ {
		p := run.queue[i]
		kind := p.event.Kind()

		switch {
		case kind == domain.EventQuitGameRequested:
			o.logger.InfoContext(ctx, "quit requested", "tick", run.tick.Index, "source", p.source.String())
			o.done = true
			if o.exit != nil {
				o.exit()
			}
			return true, nil

		case kind == domain.EventTransitionRequested:
			t, _ := p.event.Transition()
			o.ignoreDuplicate(ctx, run, t)

		case kind.IsNavigation():
			if err := o.navigate(ctx, run, p); err != nil {
				return false, err
			}

		case kind.IsDevice():
			idx, _ := p.event.GamepadIndex()
			o.logger.InfoContext(ctx, "gamepad connectivity changed",
				"tick", run.tick.Index,
				"index", idx,
				"connected", kind == domain.EventGamepadConnected,
			)
			if o.hooks.OnDeviceChange != nil {
				o.hooks.OnDeviceChange(ctx, &domain.DispatchInfo{Tick: run.tick, Source: p.source, Event: p.event})
			}

		default:
			o.logger.WarnContext(ctx, "unhandled event", "kind", kind.String(), "source", p.source.String())
		}
	}
	return false, nil
}

// navigate turns a navigation event into a transition request through the route table.
func (o *Orchestrator) navigate(ctx context.Context, run *tickRun, p pending) error {
	kind := p.event.Kind()
	route, ok := o.routes[kind]
	if !ok {
		o.logger.DebugContext(ctx, "navigation event has no route", "kind", kind.String(), "source", p.source.String())
		return nil
	}

	from := o.state.CurrState
	if o.state.IsTransitioning() {
		from = o.state.Transition.NewState
	} else if from == route.To {
		o.logger.DebugContext(ctx, "navigation target is the current state", "kind", kind.String(), "state", from.String())
		return nil
	}

	t := domain.SceneTransition{OldState: from, NewState: route.To, DegreeStepAmount: route.Step}
	return o.request(ctx, run, t)
}

// draw runs the draw pass over the active scenes in registry order.
func (o *Orchestrator) draw(tick domain.Tick) error {
	frame, err := o.renderer.BeginFrame()
	if err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	for _, t := range o.state.ActiveScenes {
		s, err := o.sceneFor(t)
		if err != nil {
			return err
		}
		if !s.ShouldBeDrawn() {
			continue
		}
		s.Draw(frame, tick)
	}
	if err := frame.End(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	return nil
}
