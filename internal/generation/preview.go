package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Preview is a generated artifact held transiently until the user saves
// or discards it. One current preview per user per domain: generating
// again replaces it.
type Preview struct {
	ID        uuid.UUID       `json:"id"`
	Domain    string          `json:"domain"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// PreviewStore keeps the current preview per user per domain.
type PreviewStore interface {
	Put(ctx context.Context, p *Preview) error
	Get(ctx context.Context, domain string, ownerID uuid.UUID) (*Preview, error)
	Delete(ctx context.Context, domain string, ownerID uuid.UUID) error
}

// =====================================================
// REDIS PREVIEW STORE
// =====================================================

type redisPreviewStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisPreviewStore stores previews with a TTL: an abandoned preview
// expires on its own instead of lingering forever.
func NewRedisPreviewStore(rdb *redis.Client, ttl time.Duration) PreviewStore {
	return &redisPreviewStore{rdb: rdb, ttl: ttl}
}

func previewKey(domain string, ownerID uuid.UUID) string {
	return fmt.Sprintf("preview:%s:%s", domain, ownerID)
}

func (s *redisPreviewStore) Put(ctx context.Context, p *Preview) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preview: %w", err)
	}

	if err := s.rdb.Set(ctx, previewKey(p.Domain, p.OwnerID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store preview: %w", err)
	}
	return nil
}

func (s *redisPreviewStore) Get(ctx context.Context, domain string, ownerID uuid.UUID) (*Preview, error) {
	data, err := s.rdb.Get(ctx, previewKey(domain, ownerID)).Bytes()
	if err == redis.Nil {
		return nil, ErrPreviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preview: %w", err)
	}

	p := &Preview{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preview: %w", err)
	}
	return p, nil
}

func (s *redisPreviewStore) Delete(ctx context.Context, domain string, ownerID uuid.UUID) error {
	if err := s.rdb.Del(ctx, previewKey(domain, ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete preview: %w", err)
	}
	return nil
}

// =====================================================
// IN-MEMORY PREVIEW STORE
// =====================================================
// Used by tests and by single-process deployments without Redis.

type memoryPreviewStore struct {
	mu   sync.RWMutex
	data map[string]*Preview
}

func NewMemoryPreviewStore() PreviewStore {
	return &memoryPreviewStore{data: make(map[string]*Preview)}
}

func (s *memoryPreviewStore) Put(ctx context.Context, p *Preview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[previewKey(p.Domain, p.OwnerID)] = p
	return nil
}

func (s *memoryPreviewStore) Get(ctx context.Context, domain string, ownerID uuid.UUID) (*Preview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[previewKey(domain, ownerID)]
	if !ok {
		return nil, ErrPreviewNotFound
	}
	return p, nil
}

func (s *memoryPreviewStore) Delete(ctx context.Context, domain string, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, previewKey(domain, ownerID))
	return nil
}
