package ratelimiter

import (
	"strings"
	"sync"
	"time"
)

// Policy allows MaxAttempts within any sliding Window
type Policy struct {
	MaxAttempts int
	Window      time.Duration
}

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed   bool
	Remaining int
	// RetryAfter is zero when Allowed
	RetryAfter time.Duration
}

// RateLimiter keeps a sliding log of attempts per namespace:key.
//
//	rl := ratelimiter.NewRateLimiter()
//	rl.SetPolicy("cron", 6, time.Minute)
//
//	if d := rl.Allow("cron", clientIP); !d.Allowed {
//	    w.Header().Set("Retry-After", ...)
//	}
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	policies map[string]Policy
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter and starts its cleanup goroutine
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		attempts: make(map[string][]time.Time),
		policies: make(map[string]Policy),
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	go rl.cleanupLoop(time.Minute)

	return rl
}

// SetPolicy configures a namespace. Call it before Allow.
func (rl *RateLimiter) SetPolicy(namespace string, maxAttempts int, window time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.policies[namespace] = Policy{MaxAttempts: maxAttempts, Window: window}
}

// Allow records an attempt if the key is under its limit. A namespace
// without a policy is always denied.
func (rl *RateLimiter) Allow(namespace, key string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, ok := rl.policies[namespace]
	if !ok {
		return Decision{Allowed: false}
	}

	now := rl.now()
	compositeKey := namespace + ":" + key
	valid := prune(rl.attempts[compositeKey], now.Add(-policy.Window))

	if len(valid) >= policy.MaxAttempts {
		rl.attempts[compositeKey] = valid
		retry := valid[0].Add(policy.Window).Sub(now)
		if retry < time.Second {
			retry = time.Second
		}
		return Decision{Allowed: false, RetryAfter: retry}
	}

	valid = append(valid, now)
	rl.attempts[compositeKey] = valid

	return Decision{Allowed: true, Remaining: policy.MaxAttempts - len(valid)}
}

// Reset forgets the attempts of one key
func (rl *RateLimiter) Reset(namespace, key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.attempts, namespace+":"+key)
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// prune drops attempts at or before cutoff. Attempts are appended in time
// order so the survivors are a suffix.
func prune(attempts []time.Time, cutoff time.Time) []time.Time {
	for i, t := range attempts {
		if t.After(cutoff) {
			return attempts[i:]
		}
	}
	return nil
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for compositeKey, list := range rl.attempts {
		namespace, _, _ := strings.Cut(compositeKey, ":")
		policy, ok := rl.policies[namespace]
		if !ok {
			delete(rl.attempts, compositeKey)
			continue
		}
		if valid := prune(list, now.Add(-policy.Window)); len(valid) == 0 {
			delete(rl.attempts, compositeKey)
		} else {
			rl.attempts[compositeKey] = valid
		}
	}
}
