package realtime

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix = "feed:"
	cursorPrefix  = "refresh:"
)

// Feed is the change-feed fabric: writers publish "table changed"
// events, list views subscribe per table. Ordering between feed events
// and the post-save refresh counter is not guaranteed; both sides of a
// write converge on the same refetch.
type Feed struct {
	rdb    *redis.Client
	window time.Duration
}

func NewFeed(rdb *redis.Client, debounce time.Duration) *Feed {
	return &Feed{rdb: rdb, window: debounce}
}

// Publish broadcasts a change event for a table.
func (f *Feed) Publish(ctx context.Context, table string) error {
	payload := time.Now().UTC().Format(time.RFC3339Nano)
	if err := f.rdb.Publish(ctx, channelPrefix+table, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event for %s: %w", table, err)
	}
	return nil
}

// Bump increments the owner-scoped refresh counter for a table. List
// views compare cursors to decide whether to refetch; a save bumps the
// counter in addition to the feed event (idempotent double refresh).
func (f *Feed) Bump(ctx context.Context, ownerID uuid.UUID, table string) (int64, error) {
	key := fmt.Sprintf("%s%s:%s", cursorPrefix, table, ownerID)
	n, err := f.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to bump refresh counter for %s: %w", table, err)
	}
	return n, nil
}

// Cursor returns the current refresh counter for a table (0 if never bumped).
func (f *Feed) Cursor(ctx context.Context, ownerID uuid.UUID, table string) (int64, error) {
	key := fmt.Sprintf("%s%s:%s", cursorPrefix, table, ownerID)
	n, err := f.rdb.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read refresh counter for %s: %w", table, err)
	}
	return n, nil
}

// Subscription is one module's set of open change-feed channels.
// Close releases every channel; a closed subscription delivers no
// further events and its Events channel is closed.
type Subscription struct {
	pubsub *redis.PubSub
	co     *Coalescer
	once   sync.Once
	err    error
}

// Events delivers coalesced change events across all subscribed tables.
func (s *Subscription) Events() <-chan Event {
	return s.co.Events()
}

// Close tears down every channel the subscription opened.
func (s *Subscription) Close() error {
	s.once.Do(func() {
		s.err = s.pubsub.Close()
	})
	return s.err
}

// Subscribe opens one change-feed channel per table. Every subscription
// is independent: re-subscribing yields fresh channels with no stale
// handlers.
func (f *Feed) Subscribe(ctx context.Context, tables ...string) (*Subscription, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("at least one table is required")
	}

	channels := make([]string, 0, len(tables))
	for _, t := range tables {
		channels = append(channels, channelPrefix+t)
	}

	pubsub := f.rdb.Subscribe(ctx, channels...)

	// Confirm the subscription before handing it out
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to change feed: %w", err)
	}

	co := NewCoalescer(f.window)
	go func() {
		for msg := range pubsub.Channel() {
			co.Notify(strings.TrimPrefix(msg.Channel, channelPrefix))
		}
		// pubsub closed: release the coalescer so Events() closes too
		co.Close()
	}()

	return &Subscription{pubsub: pubsub, co: co}, nil
}
