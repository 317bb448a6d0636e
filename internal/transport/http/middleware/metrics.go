package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wellbot/wellbot-backend/internal/metrics"
)

// Metrics feeds the HTTP request collectors, labelled by chi route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		done := metrics.TrackInFlight()
		defer done()

		start := time.Now()
		rec := record(w)
		next.ServeHTTP(rec, r)

		metrics.ObserveHTTP(r.Method, routeLabel(r), rec.Status(), time.Since(start))
	})
}

// Raw paths would make label cardinality unbounded.
func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "unmatched"
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return "unmatched"
}
