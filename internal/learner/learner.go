// Package learner implements OSTIA, the onward subsequential transducer
// inference algorithm: prefix-tree construction, onward normalisation and
// red/blue state merging with rollback.
package learner

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/ostia/internal/validator"
	"github.com/aretw0/ostia/pkg/domain"
)

// Learner infers transducers from training sets.
type Learner struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	verify bool
}

// Option configures a Learner.
type Option func(*Learner)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Learner) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(l *Learner) {
		l.hooks = hooks
	}
}

// WithVerification re-checks the learned transducer against the sample
// before returning it.
func WithVerification(enabled bool) Option {
	return func(l *Learner) {
		l.verify = enabled
	}
}

// New creates a Learner.
func New(opts ...Option) *Learner {
	l := &Learner{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Learn runs validation, tree construction, onward normalisation and state
// merging, in that order. Any error aborts learning; no partial transducer
// is returned.
func (l *Learner) Learn(set domain.TrainingSet) (*domain.Transducer, error) {
	logger := l.logger
	if set.Name != "" {
		logger = logger.With("training_set", set.Name)
	}

	if err := validator.ValidateSample(set); err != nil {
		return nil, fmt.Errorf("invalid training set: %w", err)
	}

	start := time.Now()
	t, err := BuildTree(set.Sample, set.InputAlphabet, set.OutputAlphabet)
	if err != nil {
		return nil, fmt.Errorf("failed to build prefix tree: %w", err)
	}
	l.phaseDone(logger, domain.PhaseTree, t, start)

	start = time.Now()
	if err := Onward(t); err != nil {
		return nil, fmt.Errorf("failed to make tree onward: %w", err)
	}
	l.phaseDone(logger, domain.PhaseOnward, t, start)

	start = time.Now()
	m := newMerger(t, logger, l.hooks)
	if err := m.run(); err != nil {
		return nil, fmt.Errorf("failed to merge states: %w", err)
	}
	l.phaseDone(logger, domain.PhaseMerge, t, start,
		"attempts", m.stats.attempts,
		"merges", m.stats.merges,
		"rollbacks", m.stats.rollbacks,
		"promotions", m.stats.promotions,
	)

	start = time.Now()
	t.Compact()
	l.phaseDone(logger, domain.PhaseCompact, t, start)

	if l.verify {
		if err := validator.VerifyTransducer(t, set.Sample); err != nil {
			return nil, fmt.Errorf("learned transducer failed verification: %w", err)
		}
	}
	return t, nil
}

// Merge runs only the merging stage over an onward prefix-tree transducer.
func (l *Learner) Merge(t *domain.Transducer) error {
	return newMerger(t, l.logger, l.hooks).run()
}

func (l *Learner) phaseDone(logger *slog.Logger, phase domain.Phase, t *domain.Transducer, start time.Time, attrs ...any) {
	d := time.Since(start)
	logger.Info("phase complete", append([]any{"phase", phase, "states", t.NumStates(), "duration", d}, attrs...)...)
	if l.hooks.OnPhase != nil {
		l.hooks.OnPhase(&domain.PhaseEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPhase},
			Phase:     phase,
			States:    t.NumStates(),
			Duration:  d,
		})
	}
}
