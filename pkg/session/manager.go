package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/ostia/internal/logging"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates access to training sets, ensuring safe concurrent updates.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.TrainingStore

	mu    sync.Mutex            // guards locks
	locks map[string]*lockEntry // active locks by training set name

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets how long a distributed lock survives a crashed holder.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Manager over the given training store.
func NewManager(store ports.TrainingStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu, and then call release(name) after unlocking.
func (m *Manager) acquire(name string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		entry = &lockEntry{}
		m.locks[name] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, name)
	}
}

// Load retrieves a training set from the store.
func (m *Manager) Load(ctx context.Context, name string) (*domain.TrainingSet, error) {
	var set *domain.TrainingSet
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		set, err = m.store.Load(ctx, name)
		return err
	})
	return set, err
}

// LoadOrCreate loads a training set, creating an empty one with the given
// alphabets if it does not exist yet.
func (m *Manager) LoadOrCreate(ctx context.Context, name string, in, out domain.Alphabet) (*domain.TrainingSet, error) {
	var set *domain.TrainingSet
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		set, err = m.loadOrNew(ctx, name, in, out)
		if err != nil || len(set.Sample) > 0 {
			return err
		}
		if err := m.store.Save(ctx, set); err != nil {
			return fmt.Errorf("failed to initialize training set: %w", err)
		}
		return nil
	})
	return set, err
}

// Append adds pairs to a training set, creating it if needed, and returns the
// updated set. Pairs already present are skipped. A pair whose input is
// already mapped to a different output is rejected with an
// *domain.InconsistentSampleError and nothing is saved.
func (m *Manager) Append(ctx context.Context, name string, pairs ...domain.Pair) (*domain.TrainingSet, error) {
	var set *domain.TrainingSet
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		set, err = m.loadOrNew(ctx, name, nil, nil)
		if err != nil {
			return err
		}

		known := make(map[string]domain.Word, len(set.Sample))
		for _, p := range set.Sample {
			known[p.Input.Key()] = p.Output
		}
		added := 0
		for _, p := range pairs {
			prev, ok := known[p.Input.Key()]
			if ok && !prev.Equal(p.Output) {
				return &domain.InconsistentSampleError{Input: p.Input.Clone(), First: prev.Clone(), Second: p.Output.Clone()}
			}
			if ok {
				continue
			}
			known[p.Input.Key()] = p.Output
			set.Sample = append(set.Sample, domain.Pair{Input: p.Input.Clone(), Output: p.Output.Clone()})
			added++
		}

		m.logger.Debug("appended pairs", "training_set", name, "added", added, "size", len(set.Sample))
		return m.store.Save(ctx, set)
	})
	return set, err
}

func (m *Manager) loadOrNew(ctx context.Context, name string, in, out domain.Alphabet) (*domain.TrainingSet, error) {
	set, err := m.store.Load(ctx, name)
	if err == nil {
		return set, nil
	}
	if !errors.Is(err, domain.ErrTrainingSetNotFound) {
		return nil, fmt.Errorf("failed to check training set existence: %w", err)
	}
	return &domain.TrainingSet{Name: name, InputAlphabet: in, OutputAlphabet: out}, nil
}

// Save persists the training set under its name.
func (m *Manager) Save(ctx context.Context, set *domain.TrainingSet) error {
	return m.WithLock(ctx, set.Name, func(ctx context.Context) error {
		return m.store.Save(ctx, set)
	})
}

// Delete removes the training set from the store.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.WithLock(ctx, name, func(ctx context.Context) error {
		return m.store.Delete(ctx, name)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying training store.
func (m *Manager) Store() ports.TrainingStore {
	return m.store
}

// WithLock executes a function while holding the lock for the training set.
func (m *Manager) WithLock(ctx context.Context, name string, fn func(context.Context) error) error {
	entry := m.acquire(name)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(name)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, name, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"training_set", name,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
