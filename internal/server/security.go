package server

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Fukolomka/Sitea/internal/auth"
	"github.com/Fukolomka/Sitea/internal/logger"
)

// TokenVerifier validates session tokens
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware requires a valid session token from the cookie or the
// Authorization header and stores its claims on the request context.
func AuthMiddleware(verifier TokenVerifier, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"ip", ip,
					"error", err)

				writeError(w, http.StatusUnauthorized, ErrMsgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin rejects authenticated users without the ADMIN role. It must
// run after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
			return
		}
		if !claims.Role.IsAdmin() {
			logger.FromContext(r.Context()).Warn(LogMsgForbidden,
				"path", r.URL.Path,
				"user_id", claims.UserID(),
				"role", claims.Role)
			writeError(w, http.StatusForbidden, ErrMsgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SuspiciousActivityDetector counts requests and failed logins per client IP
// in fixed windows of activityWindow. Counters live in a bounded LRU so a
// flood of distinct addresses cannot grow memory without limit.
type SuspiciousActivityDetector struct {
	mu       sync.Mutex
	activity *expirable.LRU[string, *ipActivity]
	now      func() time.Time
}

type ipActivity struct {
	windowStart time.Time
	requests    int
	failedAuth  int
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		activity: expirable.NewLRU[string, *ipActivity](limiterCacheSize, nil, activityWindow),
		now:      time.Now,
	}
}

// entry returns the live window for ip, starting a new one when the previous
// window has elapsed. Caller must hold the mutex.
func (s *SuspiciousActivityDetector) entry(ip string) *ipActivity {
	now := s.now()
	a, ok := s.activity.Get(ip)
	if !ok || now.Sub(a.windowStart) > activityWindow {
		a = &ipActivity{windowStart: now}
		s.activity.Add(ip, a)
	}
	return a
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.entry(ip)
	a.failedAuth++
	if a.failedAuth >= failedAuthAlertCount {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", a.failedAuth)
	}
}

// FailedAuthCount returns the failures recorded for ip in the current window
func (s *SuspiciousActivityDetector) FailedAuthCount(ip string) int {
	return s.counts(ip).failedAuth
}

// RequestCount returns the requests recorded for ip in the current window
func (s *SuspiciousActivityDetector) RequestCount(ip string) int {
	return s.counts(ip).requests
}

func (s *SuspiciousActivityDetector) counts(ip string) ipActivity {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activity.Peek(ip)
	if !ok || s.now().Sub(a.windowStart) > activityWindow {
		return ipActivity{}
	}
	return *a
}

// RecordRequest counts a request and reports whether ip is still under the
// per-window ceiling.
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.entry(ip)
	a.requests++
	if a.requests <= maxRequestsPerWindow {
		return true
	}
	if a.requests%highRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", a.requests)
	}
	return false
}

// SecurityLoggingMiddleware enforces the per-IP request ceiling
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)

			if !detector.RecordRequest(ip) {
				writeError(w, http.StatusTooManyRequests, ErrMsgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address from request.
// It only trusts X-Forwarded-For if the request comes from a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	isTrusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			isTrusted = true
			break
		}
	}

	if isTrusted {
		forwarded := r.Header.Get(HeaderForwardedFor)
		if forwarded != "" {
			// Rightmost entry is the hop that reached the trusted proxy.
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes the API error envelope
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"success":false,"error":"` + message + `"}` + "\n"))
}
