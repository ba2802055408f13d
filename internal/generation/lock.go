package generation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker guards against concurrent double submission: one in-flight
// generation per user per domain, the server-side mirror of the
// disabled submit button.
type Locker interface {
	TryAcquire(ctx context.Context, domain string, ownerID uuid.UUID) (bool, error)
	Release(ctx context.Context, domain string, ownerID uuid.UUID) error
	Held(ctx context.Context, domain string, ownerID uuid.UUID) (bool, error)
}

// =====================================================
// REDIS LOCKER
// =====================================================

type redisLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisLocker uses SETNX with a TTL safety net: a crashed request
// cannot wedge the user's form forever.
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) Locker {
	return &redisLocker{rdb: rdb, ttl: ttl}
}

func lockKey(domain string, ownerID uuid.UUID) string {
	return fmt.Sprintf("inflight:%s:%s", domain, ownerID)
}

func (l *redisLocker) TryAcquire(ctx context.Context, domain string, ownerID uuid.UUID) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, lockKey(domain, ownerID), "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire in-flight lock: %w", err)
	}
	return ok, nil
}

func (l *redisLocker) Release(ctx context.Context, domain string, ownerID uuid.UUID) error {
	if err := l.rdb.Del(ctx, lockKey(domain, ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to release in-flight lock: %w", err)
	}
	return nil
}

func (l *redisLocker) Held(ctx context.Context, domain string, ownerID uuid.UUID) (bool, error) {
	n, err := l.rdb.Exists(ctx, lockKey(domain, ownerID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check in-flight lock: %w", err)
	}
	return n > 0, nil
}

// =====================================================
// IN-MEMORY LOCKER
// =====================================================

type memoryLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewMemoryLocker() Locker {
	return &memoryLocker{held: make(map[string]bool)}
}

func (l *memoryLocker) TryAcquire(ctx context.Context, domain string, ownerID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := lockKey(domain, ownerID)
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *memoryLocker) Release(ctx context.Context, domain string, ownerID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, lockKey(domain, ownerID))
	return nil
}

func (l *memoryLocker) Held(ctx context.Context, domain string, ownerID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held[lockKey(domain, ownerID)], nil
}
