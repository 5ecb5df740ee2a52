package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	newSnapshot := func(tick uint64) *domain.Snapshot {
		tr := domain.MustSceneTransition(domain.StateTitle, domain.StateMainMenu, 0.5)
		state := domain.NewSceneState(domain.StateTransitioning, []domain.SceneType{domain.SceneTitle, domain.SceneMainMenu})
		state.Transition = &tr
		state.TransitionDegree = 0.5
		state.TransitionSteps = 1
		return &domain.Snapshot{Tick: tick, State: state}
	}

	t.Run("Save and Load", func(t *testing.T) {
		snap := newSnapshot(7)
		require.NoError(t, store.Save(ctx, runID, snap), "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, uint64(7), loaded.Tick)
		assert.Equal(t, domain.StateTransitioning, loaded.State.CurrState)
		assert.Equal(t, snap.State.ActiveScenes, loaded.State.ActiveScenes)
		require.NotNil(t, loaded.State.Transition)
		assert.Equal(t, *snap.State.Transition, *loaded.State.Transition)
		assert.InDelta(t, 0.5, loaded.State.TransitionDegree, 1e-9)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, runID, newSnapshot(8)))
		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, uint64(8), loaded.Tick)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, runID, newSnapshot(1)))
		require.NoError(t, store.Delete(ctx, runID), "Delete should not return error")

		_, err := store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		_ = store.Save(ctx, id1, newSnapshot(1))
		_ = store.Save(ctx, id2, newSnapshot(1))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
