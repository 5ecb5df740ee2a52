package runner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeDriver switches to the scheduled state on the given ticks and quits at quitAt.
type fakeDriver struct {
	state    *domain.SceneState
	schedule map[uint64]domain.SceneStateEnum
	quitAt   uint64
	failAt   uint64
	ticks    []domain.Tick
	done     bool
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		state:    domain.NewSceneState(domain.StateTitle, []domain.SceneType{domain.SceneTitle}),
		schedule: map[uint64]domain.SceneStateEnum{},
	}
}

func (d *fakeDriver) Tick(_ context.Context, tick domain.Tick) error {
	if d.failAt != 0 && tick.Index == d.failAt {
		return domain.ErrSceneNotFound
	}
	d.ticks = append(d.ticks, tick)
	if st, ok := d.schedule[tick.Index]; ok {
		d.state.CurrState = st
	}
	if d.quitAt != 0 && tick.Index == d.quitAt {
		d.done = true
	}
	return nil
}

func (d *fakeDriver) Done() bool                { return d.done }
func (d *fakeDriver) State() *domain.SceneState { return d.state.Clone() }

type recordingStore struct {
	mu    sync.Mutex
	saved []*domain.Snapshot
}

func (s *recordingStore) Save(_ context.Context, _ string, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, snap)
	return nil
}

func (s *recordingStore) Load(context.Context, string) (*domain.Snapshot, error) {
	return nil, domain.ErrSnapshotNotFound
}
func (s *recordingStore) Delete(context.Context, string) error   { return nil }
func (s *recordingStore) List(context.Context) ([]string, error) { return nil, nil }

func (s *recordingStore) ticks() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uint64
	for _, snap := range s.saved {
		out = append(out, snap.Tick)
	}
	return out
}

func headless(opts ...Option) []Option {
	return append([]Option{
		WithClock(NewFixedClock(10 * time.Millisecond)),
		WithTickRate(0),
		WithSignals(false),
	}, opts...)
}

func TestRunner_StopsOnQuit(t *testing.T) {
	d := newFakeDriver()
	d.quitAt = 5

	r := NewRunner(d, headless()...)
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, uint64(5), r.Ticks())
	require.Len(t, d.ticks, 5)
	assert.Equal(t, 50*time.Millisecond, d.ticks[4].Total)
}

func TestRunner_MaxTicks(t *testing.T) {
	d := newFakeDriver()
	r := NewRunner(d, headless(WithMaxTicks(3))...)
	require.NoError(t, r.Run(context.Background()))
	assert.Len(t, d.ticks, 3)
}

func TestRunner_PublishesOnlyChanges(t *testing.T) {
	d := newFakeDriver()
	d.schedule[3] = domain.StateMainMenu
	d.schedule[6] = domain.StateGame
	d.quitAt = 8

	store := &recordingStore{}
	var changes []uint64
	r := NewRunner(d, headless(
		WithStore(store),
		WithRunID("test"),
		WithChangeHandler(func(tick domain.Tick, _ *domain.StateDiff) {
			changes = append(changes, tick.Index)
		}),
	)...)
	require.NoError(t, r.Run(context.Background()))

	if diff := cmp.Diff([]uint64{1, 3, 6, 8}, store.ticks()); diff != "" {
		t.Errorf("published ticks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint64{1, 3, 6}, changes); diff != "" {
		t.Errorf("change ticks mismatch (-want +got):\n%s", diff)
	}
	last := store.saved[len(store.saved)-1]
	assert.True(t, last.Done)
	assert.Equal(t, domain.StateGame, last.State.CurrState)
	assert.Equal(t, "test", r.RunID())
}

func TestRunner_TickErrorIsWrapped(t *testing.T) {
	d := newFakeDriver()
	d.failAt = 2

	r := NewRunner(d, headless()...)
	err := r.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
	assert.Contains(t, err.Error(), "tick 2")
}

func TestRunner_CancelStopsPacedLoop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	d := newFakeDriver()
	r := NewRunner(d,
		WithClock(NewFixedClock(time.Millisecond)),
		WithTickRate(time.Millisecond),
		WithSignals(false),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.NotZero(t, r.Ticks())
}

func TestRunner_RequiresDriver(t *testing.T) {
	assert.Error(t, NewRunner(nil, headless()...).Run(context.Background()))
}

func TestFixedClock(t *testing.T) {
	c := NewFixedClock(20 * time.Millisecond)
	first := c.Next()
	second := c.Next()

	assert.Equal(t, domain.Tick{Index: 1, Elapsed: 20 * time.Millisecond, Total: 20 * time.Millisecond}, first)
	assert.Equal(t, domain.Tick{Index: 2, Elapsed: 20 * time.Millisecond, Total: 40 * time.Millisecond}, second)
	assert.Equal(t, DefaultTickRate, NewFixedClock(0).Next().Elapsed)
}

func TestSystemClock(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	offsets := []time.Duration{0, 16 * time.Millisecond, 40 * time.Millisecond}
	c := NewSystemClock()
	i := 0
	c.now = func() time.Time {
		now := base.Add(offsets[i])
		i++
		return now
	}

	assert.Equal(t, domain.Tick{Index: 1}, c.Next())
	assert.Equal(t, domain.Tick{Index: 2, Elapsed: 16 * time.Millisecond, Total: 16 * time.Millisecond}, c.Next())
	assert.Equal(t, domain.Tick{Index: 3, Elapsed: 24 * time.Millisecond, Total: 40 * time.Millisecond}, c.Next())
}
