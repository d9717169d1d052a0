package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get unmarshals the cached value into value and reports whether it was present.
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key builds the cache key of a single entity, e.g. "job:42".
func Key(resource string, id string) string {
	return resource + ":" + id
}
