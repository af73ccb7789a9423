package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// limiterSet hands out one token bucket per key. Entries idle for 30 minutes
// are swept every 10 minutes until ctx is done.
type limiterSet[K comparable] struct {
	mu       sync.Mutex
	limiters map[K]*limiterEntry
	rps      rate.Limit
	burst    int
}

func newLimiterSet[K comparable](ctx context.Context, requestsPerSecond float64, burst int) *limiterSet[K] {
	s := &limiterSet[K]{
		limiters: make(map[K]*limiterEntry),
		rps:      rate.Limit(requestsPerSecond),
		burst:    burst,
	}
	go s.sweep(ctx)
	return s
}

func (s *limiterSet[K]) sweep(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			cutoff := time.Now().Add(-30 * time.Minute)
			for k, e := range s.limiters {
				if e.lastAccess.Before(cutoff) {
					delete(s.limiters, k)
				}
			}
			s.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (s *limiterSet[K]) allow(key K) bool {
	s.mu.Lock()
	e, ok := s.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.limiters[key] = e
	}
	e.lastAccess = time.Now()
	s.mu.Unlock()
	return e.limiter.Allow()
}

func tooManyRequests(w http.ResponseWriter) {
	http.Error(w, `{"title":"Too Many Requests","status":429,"detail":"rate limit exceeded"}`, http.StatusTooManyRequests)
}

// RateLimitByIP applies per-IP rate limiting for unauthenticated endpoints
// such as session creation. Chain it after chi's RealIP.
func RateLimitByIP(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	set := newLimiterSet[string](ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !set.allow(r.RemoteAddr) {
				tooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit applies per-tenant rate limiting. Requests without a tenant in
// context pass through.
func RateLimit(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	set := newLimiterSet[uuid.UUID](ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID, ok := TenantIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			if !set.allow(tenantID) {
				tooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
