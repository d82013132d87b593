package ports

import (
	"context"

	"github.com/aretw0/ostia/pkg/domain"
)

// TrainingLoader defines how training sets are retrieved by name.
// This allows the storage layer (Loam, FS, Memory, Redis) to be decoupled.
type TrainingLoader interface {
	// Load retrieves a training set by name.
	// Returns domain.ErrTrainingSetNotFound if no such set exists.
	Load(ctx context.Context, name string) (*domain.TrainingSet, error)

	// List returns the names of all available training sets.
	List(ctx context.Context) ([]string, error)
}
