package ports

import "context"

// Storage is the durable key-value store the session writes through to.
// Values survive process restarts; the store is a plain last-writer-wins
// map with no multi-key atomicity.
type Storage interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
