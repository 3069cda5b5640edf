package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied request keys so a repeated
// submission maps back to the result of the first one.
type IdempotencyStore interface {
	// Claim atomically reserves key for an in-flight request.
	// Returns false if the key is already claimed or completed.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Complete records the result ID for a claimed key
	Complete(ctx context.Context, key, resultID string, ttl time.Duration) error

	// Lookup returns the stored result ID. found is false for unknown or
	// expired keys; an empty resultID with found=true means still in flight.
	Lookup(ctx context.Context, key string) (resultID string, found bool, err error)

	// Release drops a claim so the request can be retried
	Release(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}
