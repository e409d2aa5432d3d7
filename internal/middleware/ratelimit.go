// File: internal/middleware/ratelimit.go
package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dresai/dresai/internal/ratelimit"
)

// RateLimit rejects requests from clients that exceed the limiter's window.
func RateLimit(limiter *ratelimit.MemoryRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, resetAt := limiter.Allow(ratelimit.GetClientIP(r))
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", resetAt.UTC().Format(time.RFC1123))
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many requests, slow down.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
