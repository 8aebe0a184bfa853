package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/taskglow/taskglow/internal/dependencies/clock"
	"github.com/taskglow/taskglow/internal/dependencies/identity"
	"github.com/taskglow/taskglow/internal/dependencies/random"
	"github.com/taskglow/taskglow/internal/services/credentials"
	"github.com/taskglow/taskglow/internal/services/session"
	"github.com/taskglow/taskglow/internal/services/tasks"
	"github.com/taskglow/taskglow/internal/storage"
	"github.com/taskglow/taskglow/internal/storage/memory"
	redisstorage "github.com/taskglow/taskglow/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Identity identity.Generator

	// Services
	CredentialsService *credentials.Service
	SessionService     *session.Service
	TaskService        *tasks.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	idgen := identity.New(rnd)

	// Create services
	credentialsService := credentials.New(store, idgen, logger)
	sessionService := session.New(store, credentialsService, logger)
	taskService := tasks.New(store, clk, idgen, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		Identity:           idgen,
		CredentialsService: credentialsService,
		SessionService:     sessionService,
		TaskService:        taskService,
	}
}
