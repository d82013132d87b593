package ports

import (
	"context"

	"github.com/aretw0/ostia/pkg/domain"
)

// TrainingStore defines the interface for persisting training sets.
// Learned transducers are never persisted; they are relearned from the sample.
type TrainingStore interface {
	TrainingLoader

	// Save persists the training set under set.Name, replacing any previous version.
	Save(ctx context.Context, set *domain.TrainingSet) error

	// Delete removes a training set. Deleting a missing set is not an error.
	Delete(ctx context.Context, name string) error
}
