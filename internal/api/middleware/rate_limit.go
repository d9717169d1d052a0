package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/entity-api/internal/errors"
	repository "github.com/aaravmahajanofficial/entity-api/internal/repositories"
	"github.com/aaravmahajanofficial/entity-api/internal/utils/response"
)

// RateLimit rejects clients that exceed the sliding window with 429.
// Limiter failures let the request through.
func RateLimit(limiter repository.RateLimitRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			logger := LoggerFromContext(r.Context())
			client := clientKey(r)

			result, err := limiter.CheckRateLimit(r.Context(), client)
			if err != nil {
				logger.Error("Rate limit check failed, allowing request", slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				seconds := int(result.RetryAfter.Seconds())
				if seconds < 1 {
					seconds = 1
				}

				logger.Warn("Rate limit exceeded", slog.String("client", client))
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				response.Error(w, errors.TooManyRequestsError("Too many requests, please try again later"))
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
