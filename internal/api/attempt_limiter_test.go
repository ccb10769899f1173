package api

import (
	"testing"
	"time"
)

func TestAttemptLimiterSlidingWindow(t *testing.T) {
	limiter := newAttemptLimiter(3, time.Minute)
	start := time.Date(2026, time.October, 21, 9, 0, 0, 0, time.UTC)

	for index := 0; index < 3; index++ {
		limiter.recordFailure("client", start.Add(time.Duration(index)*time.Second))
	}
	if !limiter.blocked("client", start.Add(3*time.Second)) {
		t.Fatal("expected limit to be reached")
	}
	if limiter.blocked("other", start.Add(3*time.Second)) {
		t.Fatal("expected keys to be independent")
	}
	if limiter.blocked("client", start.Add(time.Minute+time.Second)) {
		t.Fatal("expected the oldest failure to fall out of the window")
	}
	if limiter.blocked("client", start.Add(2*time.Minute)) {
		t.Fatal("expected all failures to expire")
	}
	if _, ok := limiter.failures["client"]; ok {
		t.Fatal("expected expired key to be forgotten")
	}
}

func TestAttemptLimiterForgetsClientsThatStopFailing(t *testing.T) {
	limiter := newAttemptLimiter(3, time.Minute)
	start := time.Date(2026, time.October, 21, 9, 0, 0, 0, time.UTC)

	for index, key := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		limiter.recordFailure(key, start.Add(time.Duration(index)*time.Second))
	}
	if len(limiter.failures) != 3 {
		t.Fatalf("expected 3 tracked clients, got %d", len(limiter.failures))
	}

	limiter.recordFailure("10.0.0.4", start.Add(2*time.Minute))
	if len(limiter.failures) != 1 {
		t.Fatalf("expected only the latest client to be tracked, got %d", len(limiter.failures))
	}
	if _, ok := limiter.failures["10.0.0.4"]; !ok {
		t.Fatal("expected the latest failure to be kept")
	}
}
