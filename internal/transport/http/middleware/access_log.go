package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/wellbot/wellbot-backend/internal/logger"
)

// AccessLog writes one structured line per request. Must run after RequestID.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := record(w)
		next.ServeHTTP(rec, r)

		level := zerolog.InfoLevel
		if rec.Status() >= http.StatusInternalServerError {
			level = zerolog.WarnLevel
		}
		l := logger.WithCtx(r.Context())
		l.WithLevel(level).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.Status()).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("http_request")
	})
}
