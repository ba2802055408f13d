package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterPoolEvictsIdleUsers(t *testing.T) {
	pool := newLimiterPool(20)
	start := time.Now()

	pool.get("idle-user", start)
	pool.get("active-user", start)
	require.Equal(t, 2, pool.size())

	// Active user keeps generating; the idle one never comes back.
	pool.get("active-user", start.Add(limiterIdleTTL-time.Minute))

	pool.get("new-user", start.Add(limiterIdleTTL+time.Minute))
	assert.Equal(t, 2, pool.size())

	pool.mu.Lock()
	_, idleKept := pool.entries["idle-user"]
	_, activeKept := pool.entries["active-user"]
	pool.mu.Unlock()
	assert.False(t, idleKept)
	assert.True(t, activeKept)
}

func TestLimiterPoolReusesLimiterAcrossCalls(t *testing.T) {
	pool := newLimiterPool(2)
	now := time.Now()

	l := pool.get("dana", now)
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, pool.get("dana", now).Allow())

	// A different user has their own quota.
	assert.True(t, pool.get("pat", now).Allow())
}
