package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// sweepEvery is how many Allow calls pass between sweeps of idle keys
const sweepEvery = 1024

// checkinLimiter allows up to limit hits per key inside a sliding window
type checkinLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	calls  int
	now    func() time.Time
}

func newCheckinLimiter(limit int, window time.Duration) *checkinLimiter {
	return &checkinLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// recent drops hits older than cutoff, reusing the slice
func recent(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, h := range hits {
		if h.After(cutoff) {
			kept = append(kept, h)
		}
	}
	return kept
}

func (l *checkinLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	l.calls++
	if l.calls%sweepEvery == 0 {
		for k, hits := range l.hits {
			if hits = recent(hits, cutoff); len(hits) == 0 {
				delete(l.hits, k)
			} else {
				l.hits[k] = hits
			}
		}
	}

	hits := recent(l.hits[key], cutoff)
	if len(hits) >= l.limit {
		l.hits[key] = hits
		return false
	}

	l.hits[key] = append(hits, now)
	return true
}

// RateLimitCheckins creates middleware for check-in endpoints.
// Requests are counted per client IP and user. A limit of zero disables it.
func RateLimitCheckins(limit int, window time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	if limit <= 0 {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	limiter := newCheckinLimiter(limit, window)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)
			user := r.Header.Get(UserHeader)

			if !limiter.allow(ip + "|" + user) {
				slog.Warn("check-in rate limit exceeded",
					"ip", ip,
					"user_id", user,
					"path", r.URL.Path,
				)
				writeError(w, http.StatusTooManyRequests, "too many check-ins, please try again later")
				return
			}

			next(w, r)
		}
	}
}

// getClientIP prefers the first proxy-reported address over RemoteAddr
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
