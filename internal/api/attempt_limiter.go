package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	tokenFailureLimit  = 20
	tokenFailureWindow = 5 * time.Minute
)

// attemptLimiter blocks a key once it has limit failures inside window.
type attemptLimiter struct {
	limit  int
	window time.Duration

	mu        sync.Mutex
	failures  map[string][]time.Time
	lastSweep time.Time
}

func newAttemptLimiter(limit int, window time.Duration) *attemptLimiter {
	return &attemptLimiter{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

func (limiter *attemptLimiter) blocked(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	return len(limiter.recentLocked(key, now)) >= limiter.limit
}

func (limiter *attemptLimiter) recordFailure(key string, now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	if now.Sub(limiter.lastSweep) >= limiter.window {
		limiter.sweepLocked(now)
	}
	limiter.failures[key] = append(limiter.recentLocked(key, now), now)
}

// sweepLocked forgets every key whose failures have all left the window. It
// runs at most once per window so clients that never come back do not pile up.
func (limiter *attemptLimiter) sweepLocked(now time.Time) {
	for key := range limiter.failures {
		limiter.recentLocked(key, now)
	}
	limiter.lastSweep = now
}

// recentLocked drops failures older than the window and forgets keys with
// none left.
func (limiter *attemptLimiter) recentLocked(key string, now time.Time) []time.Time {
	threshold := now.Add(-limiter.window)
	kept := limiter.failures[key][:0:0]
	for _, at := range limiter.failures[key] {
		if at.After(threshold) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(limiter.failures, key)
		return nil
	}
	limiter.failures[key] = kept
	return kept
}

// requestLimiterKey keys failures by client address.
func requestLimiterKey(c *fiber.Ctx) string {
	if ip := strings.TrimSpace(c.IP()); ip != "" {
		return ip
	}
	return "unknown"
}
