package store

import (
	"context"
	"sort"
	"sync"

	"github.com/planekit/regiontree/pkg/errors"
)

// MemoryStore implements RunStore in process memory. Used by tests and
// by servers running without a database; runs do not survive restarts.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]Run
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]Run)}
}

// Save persists a run in memory.
func (s *MemoryStore) Save(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// Get retrieves a run by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return Run{}, errors.New(errors.ErrCodeRunNotFound, "run %s not found", id)
	}
	return run, nil
}

// List returns the most recent runs, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	runs := make([]Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	s.mu.RUnlock()

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements RunStore.
var _ RunStore = (*MemoryStore)(nil)
