// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/money-saver/backend/internal/application/adapter"
)

// RedisCycleLock implements adapter.CycleLock on a Redis SETNX lease, so at
// most one replica runs a reminder cycle at a time.
type RedisCycleLock struct {
	client *redis.Client
}

// NewRedisCycleLock creates a new Redis-backed cycle lock.
func NewRedisCycleLock(client *redis.Client) *RedisCycleLock {
	return &RedisCycleLock{
		client: client,
	}
}

// Acquire attempts to take the lease. The TTL bounds how long a crashed
// holder can block the next cycle.
func (l *RedisCycleLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, "1", ttl).Result()
}

// Release drops the lease.
func (l *RedisCycleLock) Release(ctx context.Context, key string) error {
	return l.client.Del(ctx, key).Err()
}

// InProcessCycleLock implements adapter.CycleLock within a single process,
// for deployments that run without Redis.
type InProcessCycleLock struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

// NewInProcessCycleLock creates a new in-process cycle lock.
func NewInProcessCycleLock() *InProcessCycleLock {
	return &InProcessCycleLock{
		held:  make(map[string]time.Time),
		clock: time.Now,
	}
}

// Acquire attempts to take the lease. An expired lease counts as free.
func (l *InProcessCycleLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if expiry, ok := l.held[key]; ok && now.Before(expiry) {
		return false, nil
	}
	l.held[key] = now.Add(ttl)
	return true, nil
}

// Release drops the lease.
func (l *InProcessCycleLock) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.CycleLock = (*RedisCycleLock)(nil)
	_ adapter.CycleLock = (*InProcessCycleLock)(nil)
)
