package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

// Limiter is satisfied by repository.RateLimiter.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, time.Duration, error)
}

// RateLimit caps requests per client IP over a sliding window. Limiter
// failures let the request through.
func RateLimit(limiter Limiter, limit int64, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			logger := LoggerFromContext(r.Context())
			ip := clientIP(r)

			allowed, retryAfter, err := limiter.Allow(r.Context(), "api_rate:"+ip, limit, window)
			if err != nil {
				logger.Error("Rate limit check failed", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				seconds := int(retryAfter.Round(time.Second).Seconds())
				logger.Warn("API rate limit exceeded", slog.String("ip", ip))
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				response.Error(w, errors.TooManyRequestsError("Too many requests, please try again later."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
