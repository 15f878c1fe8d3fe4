package utils

import (
	"math/rand"
	"sync"
	"time"
)

// RateLimiter spaces outgoing requests by a base delay plus random jitter,
// so page loads never fire on a fixed cadence
type RateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	delay    time.Duration
	jitter   time.Duration
}

// NewRateLimiter creates a RateLimiter with base delay and max jitter in milliseconds
func NewRateLimiter(delayMs, jitterMs int) *RateLimiter {
	return &RateLimiter{
		delay:  time.Duration(delayMs) * time.Millisecond,
		jitter: time.Duration(jitterMs) * time.Millisecond,
	}
}

// Wait blocks until enough time has passed since the last request
func (r *RateLimiter) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := r.delay
	if r.jitter > 0 {
		wanted += time.Duration(rand.Int63n(int64(r.jitter)))
	}

	elapsed := time.Since(r.lastCall)
	if elapsed < wanted {
		time.Sleep(wanted - elapsed)
	}
	r.lastCall = time.Now()
}
