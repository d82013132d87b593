package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/internal/logging"
	"github.com/aretw0/ostia/pkg/adapters/file"
	"github.com/aretw0/ostia/pkg/adapters/loam"
	"github.com/aretw0/ostia/pkg/adapters/memory"
	"github.com/aretw0/ostia/pkg/adapters/redis"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/observability"
	"github.com/aretw0/ostia/pkg/ports"
	"github.com/aretw0/ostia/pkg/session"
)

// Store backends selectable with --store.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreLoam   = "loam"
)

// Options carries the persistent flags shared by every command.
type Options struct {
	Debug     bool
	Store     string
	Dir       string
	RedisAddr string
	RedisDB   int
}

// Backend bundles the training-set source a command works against.
type Backend struct {
	Loader ports.TrainingLoader
	// Store is nil for read-only backends (loam).
	Store  ports.TrainingStore
	locker ports.DistributedLocker
	close  func() error
}

// Close releases backend connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Sessions wraps the writable store in a session manager, using a Redis
// lock when the store is shared.
func (b *Backend) Sessions(logger *slog.Logger) (*session.Manager, error) {
	if b.Store == nil {
		return nil, fmt.Errorf("store backend is read-only")
	}
	opts := []session.Option{session.WithLogger(logger)}
	if b.locker != nil {
		opts = append(opts, session.WithLocker(b.locker))
	}
	return session.NewManager(b.Store, opts...), nil
}

// OpenBackend initializes the store selected by opts.Store.
func OpenBackend(opts Options) (*Backend, error) {
	switch opts.Store {
	case "", StoreFile:
		s := file.New(opts.Dir)
		return &Backend{Loader: s, Store: s}, nil
	case StoreMemory:
		s := memory.NewStore()
		return &Backend{Loader: s, Store: s}, nil
	case StoreRedis:
		s := redis.New(opts.RedisAddr, os.Getenv("OSTIA_REDIS_PASSWORD"), opts.RedisDB)
		return &Backend{
			Loader: s,
			Store:  s,
			locker: redis.NewLocker(s.Client(), "ostia:"),
			close:  s.Close,
		}, nil
	case StoreLoam:
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		l, err := loam.Open(dir)
		if err != nil {
			return nil, err
		}
		return &Backend{Loader: l}, nil
	}
	return nil, fmt.Errorf("unknown store %q (supported: %s, %s, %s, %s)", opts.Store, StoreFile, StoreMemory, StoreRedis, StoreLoam)
}

// NewLearner creates the learner used by the commands. Debug mode logs every
// merge step; metrics, when given, are always attached.
func NewLearner(opts Options, logger *slog.Logger, loader ports.TrainingLoader, metrics *observability.Metrics) *ostia.Learner {
	hooks := domain.LifecycleHooks{}
	if opts.Debug {
		hooks = hooks.Combine(observability.LoggingHooks(logger))
	}
	if metrics != nil {
		hooks = hooks.Combine(metrics.Hooks())
	}

	learnerOpts := []ostia.Option{
		ostia.WithLogger(logger),
		ostia.WithLifecycleHooks(hooks),
		ostia.WithVerification(true),
	}
	if loader != nil {
		learnerOpts = append(learnerOpts, ostia.WithLoader(loader))
	}
	return ostia.New(learnerOpts...)
}

// NewLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from the rewritten words on Stdout).
func NewLogger(debug bool, stderr io.Writer) *slog.Logger {
	if !debug {
		return logging.NewNop()
	}
	return logging.NewWithWriter(stderr, logging.FormatText, logging.Level(debug))
}
