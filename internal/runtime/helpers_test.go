package runtime

import (
	"context"
	"testing"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
	"github.com/aretw0/puffin/pkg/registry"
	"github.com/aretw0/puffin/pkg/scene"
	"github.com/stretchr/testify/require"
)

// fakeScene records every call the orchestrator makes and emits scripted events.
type fakeScene struct {
	*scene.Base

	emit    map[uint64][]domain.Event
	updates []uint64
	draws   []uint64
	begins  []domain.SceneTransition
	steps   []float64
	ends    int
}

func newFakeScene(t *testing.T, reg *registry.Registry, st domain.SceneType) *fakeScene {
	t.Helper()
	b, err := scene.NewBase(st, reg, nil)
	require.NoError(t, err)
	return &fakeScene{Base: b, emit: map[uint64][]domain.Event{}}
}

func (f *fakeScene) on(tick uint64, evs ...domain.Event) *fakeScene {
	f.emit[tick] = append(f.emit[tick], evs...)
	return f
}

func (f *fakeScene) Update(tick domain.Tick) []domain.Event {
	f.updates = append(f.updates, tick.Index)
	return f.emit[tick.Index]
}

func (f *fakeScene) Draw(_ ports.Frame, tick domain.Tick) {
	f.draws = append(f.draws, tick.Index)
}

func (f *fakeScene) BeginTransition(t domain.SceneTransition, tick domain.Tick) {
	f.begins = append(f.begins, t)
	f.Base.BeginTransition(t, tick)
}

func (f *fakeScene) StepTransition(degree float64, tick domain.Tick) {
	f.steps = append(f.steps, degree)
	f.Base.StepTransition(degree, tick)
}

func (f *fakeScene) EndTransition(tick domain.Tick) {
	f.ends++
	f.Base.EndTransition(tick)
}

type fixture struct {
	orch   *Orchestrator
	scenes map[domain.SceneType]*fakeScene
	tick   uint64
}

func newFixture(t *testing.T, initial domain.SceneStateEnum, setup func(map[domain.SceneType]*fakeScene), opts ...Option) *fixture {
	t.Helper()
	reg := registry.Default()

	fakes := make(map[domain.SceneType]*fakeScene)
	var list []scene.Scene
	for _, st := range domain.AllSceneTypes() {
		f := newFakeScene(t, reg, st)
		fakes[st] = f
		list = append(list, f)
	}
	if setup != nil {
		setup(fakes)
	}

	o, err := New(reg, initial, list, opts...)
	require.NoError(t, err)
	return &fixture{orch: o, scenes: fakes}
}

// step runs the next tick, starting at index 1.
func (fx *fixture) step(t *testing.T) {
	t.Helper()
	fx.tick++
	require.NoError(t, fx.orch.Tick(context.Background(), domain.Tick{Index: fx.tick}))
}

func (fx *fixture) run(t *testing.T, n int) {
	t.Helper()
	for range n {
		fx.step(t)
	}
}

func transitionEvent(from, to domain.SceneStateEnum, step float64) domain.Event {
	return domain.NewTransitionEvent(domain.MustSceneTransition(from, to, step))
}

// scriptedSource replays one sample per poll.
type scriptedSource struct {
	samples []ports.InputSample
	polls   int
}

func (s *scriptedSource) Poll(context.Context) (ports.InputSample, error) {
	s.polls++
	if len(s.samples) == 0 {
		return ports.InputSample{}, nil
	}
	next := s.samples[0]
	s.samples = s.samples[1:]
	return next, nil
}

// countingRenderer counts frames and reports whether each was closed.
type countingRenderer struct {
	begun, ended int
}

func (r *countingRenderer) BeginFrame() (ports.Frame, error) {
	r.begun++
	return &countingFrame{r: r}, nil
}

type countingFrame struct{ r *countingRenderer }

func (f *countingFrame) FillScreen(ports.Color, float64)                {}
func (f *countingFrame) DrawText(ports.Anchor, string, ports.Color, float64) {}
func (f *countingFrame) End() error {
	f.r.ended++
	return nil
}
