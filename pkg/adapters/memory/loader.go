package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/ostia/pkg/domain"
)

// Loader implements ports.TrainingLoader over a fixed set of training sets.
type Loader struct {
	sets map[string]domain.TrainingSet
}

// NewLoader creates a Loader from samples keyed by name. Alphabets are
// inferred from each sample.
func NewLoader(samples map[string]domain.Sample) *Loader {
	sets := make(map[string]domain.TrainingSet, len(samples))
	for name, sample := range samples {
		sets[name] = domain.TrainingSet{Name: name, Sample: sample}.WithInferredAlphabets()
	}
	return &Loader{sets: sets}
}

// NewFromSets creates a Loader from complete training sets.
// This improves DX for tests and embedded use.
func NewFromSets(sets ...domain.TrainingSet) (*Loader, error) {
	data := make(map[string]domain.TrainingSet, len(sets))
	for _, s := range sets {
		if s.Name == "" {
			return nil, fmt.Errorf("training set missing name")
		}
		if _, dup := data[s.Name]; dup {
			return nil, fmt.Errorf("duplicate training set name: %s", s.Name)
		}
		data[s.Name] = s.Clone()
	}
	return &Loader{sets: data}, nil
}

// Load retrieves a copy of the training set.
func (l *Loader) Load(ctx context.Context, name string) (*domain.TrainingSet, error) {
	set, ok := l.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTrainingSetNotFound, name)
	}
	ret := set.Clone()
	return &ret, nil
}

// List returns all available training set names.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.sets))
	for k := range l.sets {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
