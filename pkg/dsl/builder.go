package dsl

import (
	"fmt"

	"github.com/aretw0/ostia/pkg/adapters/memory"
	"github.com/aretw0/ostia/pkg/domain"
)

// Builder manages the construction of several named training sets.
type Builder struct {
	order []string
	sets  map[string]*SetBuilder
}

// New creates a new training set builder.
func New() *Builder {
	return &Builder{
		sets: make(map[string]*SetBuilder),
	}
}

// Add creates a new training set.
// If the set already exists, it returns the existing builder.
func (b *Builder) Add(name string) *SetBuilder {
	if sb, ok := b.sets[name]; ok {
		return sb
	}
	sb := NewSet(name)
	b.sets[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build compiles the training sets into a memory Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	sets := make([]domain.TrainingSet, 0, len(b.order))
	for _, name := range b.order {
		set, err := b.sets[name].Build()
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}

	loader, err := memory.NewFromSets(sets...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
