package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"contentstudio-backend/internal/shared/response"
)

// Limiters for users who stopped generating are dropped after this long.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterPool struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
	rps       rate.Limit
	burst     int
}

func newLimiterPool(requestsPerMinute int) *limiterPool {
	return &limiterPool{
		entries:   make(map[string]*limiterEntry),
		lastSweep: time.Now(),
		rps:       rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:     requestsPerMinute,
	}
}

func (p *limiterPool) get(userID string, now time.Time) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if now.Sub(p.lastSweep) >= limiterIdleTTL {
		p.sweep(now)
	}

	e, ok := p.entries[userID]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(p.rps, p.burst)}
		p.entries[userID] = e
	}
	e.lastSeen = now
	return e.limiter
}

// sweep drops idle entries. Caller holds p.mu.
func (p *limiterPool) sweep(now time.Time) {
	for id, e := range p.entries {
		if now.Sub(e.lastSeen) >= limiterIdleTTL {
			delete(p.entries, id)
		}
	}
	p.lastSweep = now
}

func (p *limiterPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// GenerationRateLimit caps provider calls per user (plan quota). Burst
// equals the per-minute budget so short bursts inside the quota pass.
func GenerationRateLimit(requestsPerMinute int) gin.HandlerFunc {
	pool := newLimiterPool(requestsPerMinute)

	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			// AuthMiddleware runs first; nothing to key on otherwise
			c.Next()
			return
		}

		if !pool.get(userID, time.Now()).Allow() {
			response.TooManyRequests(c, "generation quota exceeded, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
