package ostia

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/ostia/internal/learner"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/ports"
)

// Learner is the high-level entry point of the library.
// It wraps the internal learner and provides a simplified API for consumers.
type Learner struct {
	learner *learner.Learner
	loader  ports.TrainingLoader
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	verify  bool
}

// Option defines a functional option for configuring the Learner.
type Option func(*Learner)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(l *Learner) {
		l.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the learner.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Learner) {
		l.logger = logger
	}
}

// WithVerification re-checks every learned transducer against its sample
// before returning it.
func WithVerification(enabled bool) Option {
	return func(l *Learner) {
		l.verify = enabled
	}
}

// WithLoader sets the source used by LearnNamed.
func WithLoader(loader ports.TrainingLoader) Option {
	return func(l *Learner) {
		l.loader = loader
	}
}

// New initializes a new Learner.
func New(opts ...Option) *Learner {
	l := &Learner{}
	for _, opt := range opts {
		opt(l)
	}

	// Never pass a nil logger down; the internal learner would keep its own default.
	if l.logger == nil {
		l.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	l.learner = learner.New(
		learner.WithLogger(l.logger),
		learner.WithLifecycleHooks(l.hooks),
		learner.WithVerification(l.verify),
	)
	return l
}

// Learn infers a subsequential transducer from the training set. Alphabets
// left empty are inferred from the sample.
func (l *Learner) Learn(set domain.TrainingSet) (*domain.Transducer, error) {
	return l.learner.Learn(set.WithInferredAlphabets())
}

// LearnNamed loads a training set from the configured loader and learns it.
func (l *Learner) LearnNamed(ctx context.Context, name string) (*domain.Transducer, error) {
	if l.loader == nil {
		return nil, fmt.Errorf("no training loader configured (use WithLoader)")
	}
	set, err := l.loader.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load training set %s: %w", name, err)
	}
	return l.Learn(*set)
}

// Loader returns the underlying TrainingLoader, if any.
func (l *Learner) Loader() ports.TrainingLoader {
	return l.loader
}

// Learn infers a transducer from a sample over the given alphabets using a
// default Learner.
func Learn(sample domain.Sample, in, out domain.Alphabet) (*domain.Transducer, error) {
	return New().Learn(domain.TrainingSet{InputAlphabet: in, OutputAlphabet: out, Sample: sample})
}
