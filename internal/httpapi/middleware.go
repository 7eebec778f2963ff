package httpapi

import (
	"net/http"
	"strconv"

	"github.com/vntrieu/darts/internal/ratelimit"
	"github.com/vntrieu/darts/internal/websocket"
)

// RateLimitMiddleware returns a middleware that limits by key extracted from the request (e.g. IP).
// When over limit, responds with 429 and optional Retry-After header.
func RateLimitMiddleware(limiter ratelimit.Limiter, keyFunc func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				key = "unknown"
			}
			allowed, retryAfter := limiter.Allow(key)
			if !allowed {
				if retryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				}
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitKeyByIP returns the client IP, keyed the same way as scoreboard connects.
func RateLimitKeyByIP(r *http.Request) string {
	return websocket.RateLimitKeyFromRequest(r)
}

// DefaultMaxBodyBytes caps JSON request bodies. Match and player payloads are tiny.
const DefaultMaxBodyBytes = 64 << 10

// LimitRequestBody returns middleware that limits request body size; decoding an over-size body fails.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
