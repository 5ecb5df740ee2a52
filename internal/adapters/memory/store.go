package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/puffin/pkg/domain"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use: the run loop writes while the HTTP server reads.
type Store struct {
	data map[string]*domain.Snapshot
	mu   sync.RWMutex
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		data: make(map[string]*domain.Snapshot),
	}
}

// Save keeps a deep copy of the snapshot.
func (s *Store) Save(_ context.Context, runID string, snap *domain.Snapshot) error {
	copied := clone(snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[runID] = copied
	return nil
}

// Load returns a copy so callers cannot mutate the stored snapshot.
func (s *Store) Load(_ context.Context, runID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[runID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return clone(snap), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(_ context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}

// List returns the run IDs in lexical order.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]string, 0, len(s.data))
	for id := range s.data {
		runs = append(runs, id)
	}
	sort.Strings(runs)
	return runs, nil
}

func clone(snap *domain.Snapshot) *domain.Snapshot {
	c := *snap
	if snap.State != nil {
		c.State = snap.State.Clone()
	}
	return &c
}
