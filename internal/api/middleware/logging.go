package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type logContextKey string

// LoggerKey holds the request-scoped *slog.Logger in a request context.
const LoggerKey = logContextKey("logger")

const RequestIDHeader = "X-Request-ID"

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()

		// Correlation ID
		correlationID := r.Header.Get(RequestIDHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, correlationID)

		// every log line of this request carries these fields
		requestLogger := slog.Default().With(
			slog.String("correlation_id", correlationID),
			slog.String("http_method", r.Method),
			slog.String("http_path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
		)

		requestLogger.Debug("Incoming request")

		ctx := context.WithValue(r.Context(), LoggerKey, requestLogger)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r.WithContext(ctx))

		level := slog.LevelInfo
		if rw.statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		requestLogger.Log(ctx, level, "Request completed",
			slog.Int("http_status", rw.statusCode),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return logger
	}

	return slog.Default()
}
