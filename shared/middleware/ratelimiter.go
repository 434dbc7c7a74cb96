package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/itchan-dev/hoots/shared/utils"
	"golang.org/x/time/rate"
)

type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// UserRateLimiter keeps a token bucket per identity.
// Buckets idle for longer than ttl are dropped by Cleanup.
type UserRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*userLimiter
	limit    rate.Limit
	burst    int
	ttl      time.Duration
}

func NewUserRateLimiter(rps float64, burst int, ttl time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		limiters: make(map[string]*userLimiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
	}
}

func (l *UserRateLimiter) Allow(identity string) bool {
	l.mu.Lock()
	ul, ok := l.limiters[identity]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[identity] = ul
	}
	ul.lastAccess = time.Now()
	l.mu.Unlock()

	return ul.limiter.Allow()
}

// Cleanup removes buckets that were not used for ttl.
func (l *UserRateLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	threshold := time.Now().Add(-l.ttl)
	for id, ul := range l.limiters {
		if ul.lastAccess.Before(threshold) {
			delete(l.limiters, id)
		}
	}
}

// StartCleanup runs Cleanup every interval until stop is closed.
func (l *UserRateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}

func (l *UserRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func RateLimit(rl *UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Possible if user was authorized with previous middleware
func GetUserIDFromContext(r *http.Request) (string, error) {
	user := GetUserFromContext(r)
	if user == nil {
		return "", errors.New("Can't get user id")
	}
	return fmt.Sprintf("user_%d", user.Id), nil
}
