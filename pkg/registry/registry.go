// Package registry keeps learned transducers in process memory so that
// servers can learn once and apply many times.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/ostia/pkg/domain"
)

// ErrModelNotFound is returned when a model id is unknown.
var ErrModelNotFound = errors.New("model not found")

// Model is a learned transducer with the training set it came from.
type Model struct {
	ID          string
	Name        string
	CreatedAt   time.Time
	TrainingSet domain.TrainingSet
	Transducer  *domain.Transducer
}

// Registry manages learned models. Models are never persisted.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*Model
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		models: make(map[string]*Model),
	}
}

// Register stores a learned transducer under a fresh id and returns the model.
func (r *Registry) Register(set domain.TrainingSet, t *domain.Transducer) *Model {
	m := &Model{
		ID:          uuid.NewString(),
		Name:        set.Name,
		CreatedAt:   time.Now(),
		TrainingSet: set.Clone(),
		Transducer:  t,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[m.ID] = m
	return m
}

// Get looks up a model by id.
func (r *Registry) Get(id string) (*Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, id)
	}
	return m, nil
}

// Apply runs the model's transducer on w. Transducers are read-only once
// registered, so concurrent Apply calls are safe.
func (r *Registry) Apply(id string, w domain.Word) (domain.Word, error) {
	m, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return m.Transducer.Apply(w)
}

// Delete removes a model. Deleting an unknown id is not an error.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.models, id)
}

// List returns all models, oldest first.
func (r *Registry) List() []*Model {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Model, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
