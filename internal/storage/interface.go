package storage

import "context"

// ChangeEvent describes a mutation to a stored key, delivered to watchers so
// other contexts can re-read state they cache.
type ChangeEvent struct {
	Key string
}

// Store is the durable, JSON-serializing key-value store underlying all
// application state. Writes replace the whole value at a key, so a single Set
// is the unit of atomicity; concurrent writers to the same key are
// last-writer-wins.
type Store interface {
	// Get decodes the value stored at key into out. It returns false when the
	// key is absent or when the stored data cannot be decoded; callers treat
	// both as absence rather than failure.
	Get(ctx context.Context, key string, out any) (bool, error)

	// Set stores the JSON encoding of value at key, replacing any previous
	// value. The write is durable before Set returns.
	Set(ctx context.Context, key string, value any) error

	// Delete removes the value at key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Watch returns a channel of change notifications for every key in the
	// store. The channel is closed when ctx is cancelled. Notifications are
	// best-effort: a slow consumer may miss events and should re-read rather
	// than replay.
	Watch(ctx context.Context) (<-chan ChangeEvent, error)
}
