package store

import (
	"errors"
	"sync"

	"github.com/i474232898/bikeshare-analytics/internal/rental"
)

var (
	// ErrNotLoaded is returned before the first dataset has been saved.
	ErrNotLoaded = errors.New("dataset not loaded")
)

// MemoryStore is a concurrency-safe holder of the current dataset snapshot.
// Datasets are never mutated after Save; readers keep the pointer they got.
type MemoryStore struct {
	mu      sync.RWMutex
	current *rental.Dataset
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the current snapshot. A nil dataset is ignored.
func (s *MemoryStore) Save(ds *rental.Dataset) {
	if ds == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ds
}

// Current returns the current snapshot.
func (s *MemoryStore) Current() (*rental.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNotLoaded
	}
	return s.current, nil
}
