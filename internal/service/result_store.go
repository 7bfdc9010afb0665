package service

import (
	"sync"

	"github.com/google/uuid"

	"grnflow/internal/domain"
)

// ResultStore holds recent batch results in memory for later export and
// append requests. Bounded: when capacity is exceeded the oldest batch is
// evicted. Results are stored once and never mutated, so readers share the
// stored value.
type ResultStore struct {
	mu       sync.RWMutex
	capacity int
	order    []uuid.UUID
	results  map[uuid.UUID]*domain.BatchResult
}

// NewResultStore creates a store keeping at most capacity batches.
func NewResultStore(capacity int) *ResultStore {
	if capacity < 1 {
		capacity = 1
	}
	return &ResultStore{
		capacity: capacity,
		results:  make(map[uuid.UUID]*domain.BatchResult),
	}
}

// Put stores a batch result, evicting the oldest batch when full.
func (s *ResultStore) Put(result *domain.BatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.results[result.ID]; !ok {
		s.order = append(s.order, result.ID)
	}
	s.results[result.ID] = result

	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}
}

// Get returns the batch with the given ID or domain.ErrBatchNotFound.
func (s *ResultStore) Get(id uuid.UUID) (*domain.BatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[id]
	if !ok {
		return nil, domain.ErrBatchNotFound
	}
	return result, nil
}

// Len returns the number of stored batches.
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
