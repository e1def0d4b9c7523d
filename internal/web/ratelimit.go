package web

import (
	"net/http"
	"sync"
	"time"
)

// rateLimiter is a fixed-window request counter per client IP. The clock
// is a field so tests can drive window expiry without sleeping.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
	now     func() time.Time
}

type clientWindow struct {
	count   int
	started time.Time
}

// newRateLimiter creates a limiter allowing limit requests per window.
func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// allow records a request for the client and reports whether it is within
// the limit for the current window.
func (rl *rateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.clients[client]
	if !ok || now.Sub(w.started) >= rl.window {
		rl.clients[client] = &clientWindow{count: 1, started: now}
		return true
	}
	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// sweep drops windows that ended more than one window ago. The server
// calls this on a ticker so the map does not grow unbounded.
func (rl *rateLimiter) sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-2 * rl.window)
	removed := 0
	for client, w := range rl.clients {
		if w.started.Before(cutoff) {
			delete(rl.clients, client)
			removed++
		}
	}
	return removed
}

// middleware rate limits by client IP. RemoteAddr is already rewritten by
// chi's RealIP middleware when the request came through a proxy.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr) {
			w.Header().Set("Retry-After", "60")
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
