package server

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/Fukolomka/Sitea/internal/auth"
	"github.com/Fukolomka/Sitea/internal/logger"
)

// OpenRateLimiter throttles case openings per user with a token bucket.
// Idle buckets are evicted so memory stays bounded.
type OpenRateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

// NewOpenRateLimiter allows perSecond openings with the given burst. A
// non-positive rate disables limiting.
func NewOpenRateLimiter(perSecond float64, burst int) *OpenRateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &OpenRateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](limiterCacheSize, nil, limiterIdleTTL),
		limit:    limit,
		burst:    burst,
	}
}

// Allow reports whether key may open another case now
func (l *OpenRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.limiters.Get(key)
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Add(key, lim)
	}
	l.mu.Unlock()
	return lim.Allow()
}

// Middleware keys the limiter by the authenticated user, falling back to the
// client IP. It must run after AuthMiddleware.
func (l *OpenRateLimiter) Middleware(trustedProxies []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + extractIP(r, trustedProxies)
			if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
				key = "user:" + claims.UserID()
			}

			if !l.Allow(key) {
				logger.FromContext(r.Context()).Warn(LogMsgOpenRateLimited, "key", key)
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(1))
				writeError(w, http.StatusTooManyRequests, ErrMsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
