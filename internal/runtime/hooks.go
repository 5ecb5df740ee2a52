package runtime

import (
	"context"

	"github.com/aretw0/puffin/pkg/domain"
)

func (o *Orchestrator) emitTransition(ctx context.Context, hook func(context.Context, *domain.TransitionInfo), tick domain.Tick, t domain.SceneTransition, degree float64, err error) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.TransitionInfo{
		Tick:       tick,
		Transition: t,
		Degree:     degree,
		Err:        err,
	})
}

func (o *Orchestrator) emitTick(ctx context.Context, tick domain.Tick) {
	if o.hooks.OnTick == nil {
		return
	}
	o.hooks.OnTick(ctx, &domain.TickInfo{
		Tick:  tick,
		State: o.state.Clone(),
	})
}
