package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T) (*RateLimiter, *time.Time) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter()
	rl.now = func() time.Time { return now }
	t.Cleanup(rl.Stop)
	return rl, &now
}

func TestAllow_WithinLimit(t *testing.T) {
	rl, _ := newTestLimiter(t)
	rl.SetPolicy("cron", 3, time.Minute)

	d := rl.Allow("cron", "10.0.0.1")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)

	rl.Allow("cron", "10.0.0.1")
	d = rl.Allow("cron", "10.0.0.1")
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
}

func TestAllow_ExceededThenWindowSlides(t *testing.T) {
	rl, now := newTestLimiter(t)
	rl.SetPolicy("cron", 2, time.Minute)

	assert.True(t, rl.Allow("cron", "k").Allowed)
	*now = now.Add(20 * time.Second)
	assert.True(t, rl.Allow("cron", "k").Allowed)

	d := rl.Allow("cron", "k")
	assert.False(t, d.Allowed)
	assert.Equal(t, 40*time.Second, d.RetryAfter)

	*now = now.Add(40 * time.Second)
	assert.True(t, rl.Allow("cron", "k").Allowed, "first attempt left the window")
}

func TestAllow_KeysAndNamespacesAreIsolated(t *testing.T) {
	rl, _ := newTestLimiter(t)
	rl.SetPolicy("cron", 1, time.Minute)
	rl.SetPolicy("webhook", 1, time.Minute)

	assert.True(t, rl.Allow("cron", "a").Allowed)
	assert.False(t, rl.Allow("cron", "a").Allowed)
	assert.True(t, rl.Allow("cron", "b").Allowed)
	assert.True(t, rl.Allow("webhook", "a").Allowed)
}

func TestAllow_UnknownNamespaceDenied(t *testing.T) {
	rl, _ := newTestLimiter(t)
	assert.False(t, rl.Allow("nope", "k").Allowed)
}

func TestReset(t *testing.T) {
	rl, _ := newTestLimiter(t)
	rl.SetPolicy("cron", 1, time.Minute)

	rl.Allow("cron", "k")
	assert.False(t, rl.Allow("cron", "k").Allowed)
	rl.Reset("cron", "k")
	assert.True(t, rl.Allow("cron", "k").Allowed)
}

func TestCleanup(t *testing.T) {
	rl, now := newTestLimiter(t)
	rl.SetPolicy("cron", 5, time.Minute)

	rl.Allow("cron", "old")
	*now = now.Add(50 * time.Second)
	rl.Allow("cron", "recent")
	*now = now.Add(15 * time.Second)

	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.attempts, "cron:old")
	assert.Contains(t, rl.attempts, "cron:recent")
}

func TestAllow_Concurrent(t *testing.T) {
	rl, _ := newTestLimiter(t)
	rl.SetPolicy("cron", 50, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("cron", "k").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}
