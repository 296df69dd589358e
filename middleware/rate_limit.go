package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiterConfig struct {
	RequestsPerSecond int
	Burst             int
	CleanupInterval   time.Duration
	TTL               time.Duration
}

type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	cfg      RateLimiterConfig
}

func (r *rateLimiter) get(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[ip]
	if !ok {
		v = &visitor{
			limiter: rate.NewLimiter(rate.Limit(r.cfg.RequestsPerSecond), r.cfg.Burst),
		}
		r.visitors[ip] = v
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (r *rateLimiter) cleanup() {
	for {
		time.Sleep(r.cfg.CleanupInterval)

		r.mu.Lock()
		for ip, v := range r.visitors {
			if time.Since(v.lastSeen) > r.cfg.TTL {
				delete(r.visitors, ip)
			}
		}
		r.mu.Unlock()
	}
}

// RateLimiterMiddleware limits each client IP to a token bucket. Used on
// the unauthenticated auth endpoints, everything else sits behind a session
func RateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	if config.CleanupInterval == 0 {
		config.CleanupInterval = time.Minute
	}
	if config.TTL == 0 {
		config.TTL = 3 * time.Minute
	}

	r := &rateLimiter{
		visitors: make(map[string]*visitor),
		cfg:      config,
	}

	go r.cleanup()

	return func(c *gin.Context) {
		if !r.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			return
		}

		c.Next()
	}
}
