package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskglow/taskglow/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
//
// Each logical key maps to one JSON blob, written whole per Set, so the
// last-writer-wins semantics match the in-memory backend. Change
// notifications go over a pub/sub channel, which is how separate processes
// sharing the store observe each other's writes.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) Get(ctx context.Context, key string, out any) (bool, error) {
	data, err := s.client.Get(ctx, s.storageKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, out); err != nil {
		// Corrupt data is treated as absence
		return false, nil
	}
	return true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	// Write and notify in one pipeline
	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.storageKey(key), data, 0)
	pipe.Publish(ctx, s.changeChannel(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.storageKey(key))
	pipe.Publish(ctx, s.changeChannel(), key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) Watch(ctx context.Context) (<-chan storage.ChangeEvent, error) {
	pubsub := s.client.Subscribe(ctx, s.changeChannel())

	// Confirm the subscription before returning so callers don't miss
	// writes made right after Watch
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	events := make(chan storage.ChangeEvent)
	go func() {
		defer close(events)
		defer func() { _ = pubsub.Close() }()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case events <- storage.ChangeEvent{Key: msg.Payload}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

// storageKey namespaces a logical key under the configured prefix
func (s *Storage) storageKey(key string) string {
	return s.cfg.KeyPrefix + ":" + key
}

// changeChannel returns the pub/sub channel carrying change notifications
func (s *Storage) changeChannel() string {
	return s.cfg.KeyPrefix + ":changes"
}
