package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/ostia/pkg/domain"
)

// Store implements ports.TrainingStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.TrainingSet
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.TrainingSet),
	}
}

// Save persists a copy of the training set in memory.
func (s *Store) Save(ctx context.Context, set *domain.TrainingSet) error {
	copied := set.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[set.Name] = copied
	return nil
}

// Load retrieves a copy of the training set, so callers can't mutate the store.
func (s *Store) Load(ctx context.Context, name string) (*domain.TrainingSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.data[name]
	if !ok {
		return nil, domain.ErrTrainingSetNotFound
	}
	ret := set.Clone()
	return &ret, nil
}

// Delete removes the training set.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored training set names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
