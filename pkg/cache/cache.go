package cache

import (
	"context"
	"time"
)

// Cache is the contract the service layer talks to.
// Implementations: Redis (internal/infrastructure/cache), no-op for tests.
type Cache interface {
	// Get reads key into dest (JSON-unmarshalled).
	// found=false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON-marshalled) with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
