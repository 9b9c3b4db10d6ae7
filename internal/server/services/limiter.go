package services

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter hands out a token bucket per email address. A nil limiter or a
// non-positive rate allows everything.
type LoginLimiter struct {
	mu        sync.Mutex
	perMinute int
	buckets   map[string]*rate.Limiter
}

func NewLoginLimiter(perMinute int) *LoginLimiter {
	return &LoginLimiter{perMinute: perMinute, buckets: make(map[string]*rate.Limiter)}
}

// Allow consumes one attempt for email.
func (l *LoginLimiter) Allow(email string) bool {
	if l == nil || l.perMinute <= 0 {
		return true
	}

	key := strings.ToLower(email)

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute)
		l.buckets[key] = b
	}
	l.mu.Unlock()

	return b.Allow()
}
