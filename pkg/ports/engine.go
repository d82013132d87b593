package ports

import "github.com/aretw0/ostia/pkg/domain"

// Learner infers a subsequential transducer from a training set.
// The HTTP and MCP adapters depend on this interface rather than on a concrete learner.
type Learner interface {
	Learn(set domain.TrainingSet) (*domain.Transducer, error)
}
