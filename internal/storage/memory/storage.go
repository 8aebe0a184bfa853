package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/taskglow/taskglow/internal/storage"
)

// watchBuffer is the per-watcher channel capacity; events beyond it are
// dropped rather than blocking writers
const watchBuffer = 16

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu       sync.RWMutex
	values   map[string]json.RawMessage
	watchers map[int]chan storage.ChangeEvent
	nextID   int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		values:   make(map[string]json.RawMessage),
		watchers: make(map[int]chan storage.ChangeEvent),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) Get(ctx context.Context, key string, out any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
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

	s.mu.Lock()
	s.values[key] = data
	s.mu.Unlock()

	s.notify(key)
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	_, existed := s.values[key]
	delete(s.values, key)
	s.mu.Unlock()

	if existed {
		s.notify(key)
	}
	return nil
}

func (s *Storage) Watch(ctx context.Context) (<-chan storage.ChangeEvent, error) {
	ch := make(chan storage.ChangeEvent, watchBuffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

// SetRaw stores raw bytes at key without JSON encoding. Tests use it to
// simulate corrupt stored data.
func (s *Storage) SetRaw(key string, data []byte) {
	s.mu.Lock()
	s.values[key] = json.RawMessage(data)
	s.mu.Unlock()

	s.notify(key)
}

func (s *Storage) notify(key string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.watchers {
		select {
		case ch <- storage.ChangeEvent{Key: key}:
		default:
			// Watcher is not keeping up; it must re-read on its next event
		}
	}
}
