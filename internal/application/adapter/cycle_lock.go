// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// CycleLock serializes reminder cycles: at most one cycle runs at a time for
// a given key, including across replicas when backed by Redis.
type CycleLock interface {
	// Acquire attempts to take the lease. It returns false when another
	// holder already owns it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release drops the lease.
	Release(ctx context.Context, key string) error
}
