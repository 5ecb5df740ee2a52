package ports

import (
	"context"

	"github.com/aretw0/puffin/pkg/domain"
)

// SnapshotStore publishes runtime snapshots to observers outside the tick loop.
// The run loop is the only writer; readers never touch the orchestrator.
type SnapshotStore interface {
	// Save stores the latest snapshot for a run.
	Save(ctx context.Context, runID string, snap *domain.Snapshot) error

	// Load retrieves the latest snapshot for a run.
	// Returns domain.ErrSnapshotNotFound if nothing was saved yet.
	Load(ctx context.Context, runID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a run.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of all runs with a snapshot.
	List(ctx context.Context) ([]string, error)
}
