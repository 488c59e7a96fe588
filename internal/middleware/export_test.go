package middleware

import "time"

// IdleLimiterTTL exposes idleLimiterTTL to the external test package.
const IdleLimiterTTL = idleLimiterTTL

// SetClock replaces the limiter's time source.
func (l *RateLimiter) SetClock(now func() time.Time) { l.now = now }

// Tracked returns the number of clients that currently hold a limiter.
func (l *RateLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
