// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/money-saver/backend/internal/domain/error"
	"github.com/money-saver/backend/internal/integration/entrypoint/dto"
)

// Fallbacks when the configured values are missing or non-positive.
const (
	fallbackMaxAttempts = 5
	fallbackWindow      = 1 * time.Minute
)

// clientWindow counts requests from one client within the current window.
type clientWindow struct {
	count       int
	windowStart time.Time
}

// RateLimiter limits requests per client IP over a fixed window. State lives
// in memory, so limits apply per instance.
type RateLimiter struct {
	mu          sync.Mutex
	clients     map[string]*clientWindow
	maxAttempts int
	window      time.Duration
}

// NewRateLimiter creates a rate limiter allowing maxAttempts requests per
// client within each window. Non-positive values fall back to 5 per minute.
func NewRateLimiter(maxAttempts int, window time.Duration) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = fallbackMaxAttempts
	}
	if window <= 0 {
		window = fallbackWindow
	}
	return &RateLimiter{
		clients:     make(map[string]*clientWindow),
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Middleware returns a Gin handler that rejects clients over the limit with
// 429. The test environments bypass it so scenario suites can hammer the
// sync endpoint.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		key := c.ClientIP()
		if key == "" {
			key = c.Request.RemoteAddr
		}

		if !rl.allow(key, time.Now()) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow records a request for the key at the given time and reports whether
// it stays within the limit.
func (rl *RateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[key]
	if !ok || now.Sub(cw.windowStart) >= rl.window {
		rl.clients[key] = &clientWindow{count: 1, windowStart: now}
		return true
	}

	if cw.count >= rl.maxAttempts {
		return false
	}
	cw.count++
	return true
}

// Reset clears all recorded clients.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.clients = make(map[string]*clientWindow)
}

// Cleanup drops clients whose window has passed. Call it periodically to
// keep the map from growing without bound.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, cw := range rl.clients {
		if now.Sub(cw.windowStart) >= rl.window {
			delete(rl.clients, key)
		}
	}
}
