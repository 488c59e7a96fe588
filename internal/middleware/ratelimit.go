package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long a client's limiter survives without requests.
// Idle limiters are swept at most once per idleLimiterTTL.
const idleLimiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
	limit     rate.Limit
	burst     int
	log       *slog.Logger
	now       func() time.Time
}

// NewRateLimiter allows perMinute requests per client per minute, with
// bursts of up to perMinute requests.
func NewRateLimiter(perMinute int, log *slog.Logger) *RateLimiter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &RateLimiter{
		clients: map[string]*clientLimiter{},
		limit:   rate.Limit(perMinute) / 60,
		burst:   perMinute,
		log:     log,
		now:     time.Now,
	}
}

// Handler rejects requests over the limit with 429.
// Wire it after chimiddleware.RealIP so RemoteAddr is the client address.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.allow(ip) {
			l.log.WarnContext(r.Context(), "rate limit exceeded",
				"ip", ip,
				"method", r.Method,
				"path", r.URL.Path,
			)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	switch {
	case l.lastSweep.IsZero():
		l.lastSweep = now
	case now.Sub(l.lastSweep) >= idleLimiterTTL:
		l.sweep(now)
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// sweep drops limiters idle for longer than idleLimiterTTL. l.mu must be held.
func (l *RateLimiter) sweep(now time.Time) {
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) > idleLimiterTTL {
			delete(l.clients, k)
		}
	}
	l.lastSweep = now
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
