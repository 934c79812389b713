// Package ratelimit counts failed login attempts per account in a transient
// map, so lockouts decay on their own as the limiter is exercised: each Hit
// or Allowed call ticks the map's clock, and a counter older than the
// configured lifetime simply falls away the next time it is touched.
package ratelimit

import (
	"sync"

	"transientmap"
)

// Limiter tracks attempt counts per key. Safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	attempts *transientmap.Map[string, int]
	max      int
}

// New returns a limiter that blocks a key after max hits, with counters
// expiring after lifetime ticks of limiter activity.
func New(max int, lifetime uint64) *Limiter {
	return &Limiter{
		attempts: transientmap.New[string, int](lifetime),
		max:      max,
	}
}

// Hit records a failed attempt for key and returns the updated count.
// Re-insertion resets the counter's age, so a key under sustained abuse
// stays counted for as long as the abuse lasts.
func (l *Limiter) Hit(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	count, _ := l.attempts.Get(key)
	count++
	l.attempts.Insert(key, count)
	return count
}

// Allowed reports whether key is still under the attempt limit.
func (l *Limiter) Allowed(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	count, ok := l.attempts.Get(key)
	return !ok || count < l.max
}

// Reset clears the counter for key, typically after a successful login.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts.Remove(key)
}
