package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Zecser/Catering-and-Tourism/internal/http/response"
)

// Limiter is a fixed-window counter keyed by caller identity.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}

type FailureMode string

const (
	// FailOpen lets traffic through when the limiter backend is down.
	FailOpen FailureMode = "fail_open"
	// FailClosed rejects traffic when the limiter backend is down.
	FailClosed FailureMode = "fail_closed"
)

type RateLimiter struct {
	limiter Limiter
	limit   int
	window  time.Duration
	mode    FailureMode
	keyFunc func(r *http.Request) string
}

func NewRateLimiter(limiter Limiter, limit int, window time.Duration, mode FailureMode) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		limit:   limit,
		window:  window,
		mode:    mode,
		keyFunc: clientIPKey,
	}
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, retryAfter, err := rl.limiter.Allow(r.Context(), rl.keyFunc(r), rl.limit, rl.window)
			if err != nil {
				if rl.mode == FailOpen {
					next.ServeHTTP(w, r)
					return
				}
				response.Error(w, r, http.StatusServiceUnavailable, "RATE_LIMITED", "Rate limiter unavailable", nil)
				return
			}
			if !allowed {
				if retryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds()+0.5)))
				}
				response.Error(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIPKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type fixedWindow struct {
	count       int
	windowStart time.Time
}

type localFixedWindowLimiter struct {
	mu    sync.Mutex
	store map[string]*fixedWindow
}

// NewLocalFixedWindowLimiter is the single-process fallback used when no
// Redis address is configured.
func NewLocalFixedWindowLimiter() Limiter {
	return &localFixedWindowLimiter{store: make(map[string]*fixedWindow)}
}

func (l *localFixedWindowLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.store[key]
	if !ok || now.Sub(w.windowStart) >= window {
		l.store[key] = &fixedWindow{count: 1, windowStart: now}
		l.evictStale(now, window)
		return true, 0, nil
	}
	if w.count >= limit {
		return false, window - now.Sub(w.windowStart), nil
	}
	w.count++
	return true, 0, nil
}

func (l *localFixedWindowLimiter) evictStale(now time.Time, window time.Duration) {
	for key, w := range l.store {
		if now.Sub(w.windowStart) >= 2*window {
			delete(l.store, key)
		}
	}
}
