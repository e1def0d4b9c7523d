package web

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	current := time.Unix(1000, 0)
	rl.now = func() time.Time { return current }

	if !rl.allow("1.2.3.4") || !rl.allow("1.2.3.4") {
		t.Fatal("requests within the limit must pass")
	}
	if rl.allow("1.2.3.4") {
		t.Error("request over the limit must be rejected")
	}

	// Other clients have their own window.
	if !rl.allow("5.6.7.8") {
		t.Error("independent client must not share the window")
	}

	// A new window resets the count.
	current = current.Add(time.Minute)
	if !rl.allow("1.2.3.4") {
		t.Error("request in a fresh window must pass")
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl := newRateLimiter(10, time.Minute)
	current := time.Unix(1000, 0)
	rl.now = func() time.Time { return current }

	rl.allow("1.2.3.4")
	rl.allow("5.6.7.8")

	current = current.Add(time.Minute)
	rl.allow("5.6.7.8") // fresh window for this client

	current = current.Add(90 * time.Second)
	if removed := rl.sweep(); removed != 1 {
		t.Errorf("sweep removed %d windows, want 1", removed)
	}
	if len(rl.clients) != 1 {
		t.Errorf("expected 1 client left, got %d", len(rl.clients))
	}
}
