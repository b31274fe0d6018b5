package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter hands out one token-bucket limiter per key. The router keys it
// by client IP, the verification coordinator keys a second instance by email
// to throttle artifact issuance
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	rps     rate.Limit
	burst   int
}

func NewKeyedLimiter(rps rate.Limit, burst int, ttl, cleanupInterval time.Duration) *KeyedLimiter {
	if cleanupInterval == 0 {
		cleanupInterval = time.Minute
	}
	if ttl == 0 {
		ttl = 3 * time.Minute
	}

	k := &KeyedLimiter{
		entries: make(map[string]*entry),
		rps:     rps,
		burst:   burst,
	}

	go k.cleanup(ttl, cleanupInterval)

	return k
}

func (k *KeyedLimiter) Allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, exists := k.entries[key]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(k.rps, k.burst)}
		k.entries[key] = e
	}

	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

func (k *KeyedLimiter) cleanup(ttl, interval time.Duration) {
	for {
		time.Sleep(interval)

		k.mu.Lock()
		for key, e := range k.entries {
			if time.Since(e.lastSeen) > ttl {
				delete(k.entries, key)
			}
		}
		k.mu.Unlock()
	}
}

type RateLimiterConfig struct {
	RequestsPerSecond int
	Burst             int
	CleanupInterval   time.Duration
	TTL               time.Duration
}

func RateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	visitors := NewKeyedLimiter(
		rate.Limit(config.RequestsPerSecond),
		config.Burst,
		config.TTL,
		config.CleanupInterval,
	)

	return func(c *gin.Context) {
		if !visitors.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			return
		}

		c.Next()
	}
}
