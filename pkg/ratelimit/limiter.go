// Package ratelimit throttles API clients with per-key token buckets.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	pkgerrors "coursegraph/pkg/errors"
)

// idleAfter is how long an untouched bucket survives before cleanup
const idleAfter = time.Hour

// TokenBucketLimiter grants perMinute requests per key with bursts up to burst
type TokenBucketLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perMinute int
	burst     float64
	rate      float64 // tokens per second
	now       func() time.Time
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewTokenBucketLimiter creates a limiter. A non-positive perMinute disables limiting.
func NewTokenBucketLimiter(perMinute, burst int) *TokenBucketLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucketLimiter{
		buckets:   make(map[string]*bucket),
		perMinute: perMinute,
		burst:     float64(burst),
		rate:      float64(perMinute) / 60,
		now:       time.Now,
	}
}

// Enabled reports whether the limiter throttles at all
func (l *TokenBucketLimiter) Enabled() bool {
	return l.perMinute > 0
}

// Allow takes one token from key's bucket
func (l *TokenBucketLimiter) Allow(key string) bool {
	if !l.Enabled() {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, lastSeen: now}
		l.buckets[key] = b
	}

	b.tokens += now.Sub(b.lastSeen).Seconds() * l.rate
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Reset forgets key's bucket
func (l *TokenBucketLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// Run removes idle buckets every interval until ctx is done
func (l *TokenBucketLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *TokenBucketLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleAfter {
			delete(l.buckets, key)
		}
	}
}

// ErrorWriter renders a rejected request
type ErrorWriter interface {
	Handle(w http.ResponseWriter, r *http.Request, err error)
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
// It expects chi's RealIP to have normalised RemoteAddr.
func (l *TokenBucketLimiter) Middleware(errs ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !l.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow("ip:" + clientIP(r)) {
				w.Header().Set("Retry-After", "60")
				errs.Handle(w, r, pkgerrors.NewRateLimitError(l.perMinute, "minute"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
