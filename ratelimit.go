package jwt

import (
	"sync"
	"time"
)

// RateLimiter bounds token issuance per key (typically the subject claim)
// using a refilling bucket per key. Safe for concurrent use.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	rate    int
	window  time.Duration
	maxKeys int
	closed  bool
}

type rateBucket struct {
	remaining  int
	lastRefill time.Time
}

// maxRateBuckets caps the number of tracked keys; the stalest bucket is
// evicted beyond it.
const maxRateBuckets = 10000

// NewRateLimiter allows at most rate requests per key and window. Non-positive
// arguments fall back to 100 per minute.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	if rate <= 0 {
		rate = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		buckets: make(map[string]*rateBucket),
		rate:    rate,
		window:  window,
		maxKeys: maxRateBuckets,
	}
}

// Allow reports whether one more request for key fits the limit. An empty
// key is always denied.
func (rl *RateLimiter) Allow(key string) bool {
	if key == "" {
		return false
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.closed {
		return false
	}

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok {
		if len(rl.buckets) >= rl.maxKeys {
			rl.evictStalest()
		}
		rl.buckets[key] = &rateBucket{remaining: rl.rate - 1, lastRefill: now}
		return true
	}

	if elapsed := now.Sub(b.lastRefill); elapsed >= rl.window {
		b.remaining = rl.rate
		b.lastRefill = now
	} else if elapsed > 0 {
		refill := int(float64(rl.rate) * float64(elapsed) / float64(rl.window))
		if refill > 0 {
			b.remaining = min(b.remaining+refill, rl.rate)
			b.lastRefill = now
		}
	}

	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}

// Reset clears the limit state for key.
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, key)
}

// Close releases all buckets; subsequent Allow calls are denied. Safe to
// call more than once.
func (rl *RateLimiter) Close() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.closed = true
	rl.buckets = nil
}

func (rl *RateLimiter) evictStalest() {
	var (
		stalest string
		oldest  time.Time
	)
	for key, b := range rl.buckets {
		if stalest == "" || b.lastRefill.Before(oldest) {
			stalest = key
			oldest = b.lastRefill
		}
	}
	delete(rl.buckets, stalest)
}
