// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wellbot"

// HTTP traffic.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route pattern and status.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		// bcrypt dominates register and login, so the upper buckets matter.
		Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"method", "path"})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "HTTP requests currently being handled.",
	})
)

// Account and profile outcomes.
var (
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Registration attempts by outcome.",
	}, []string{"status"})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Login attempts by outcome.",
	}, []string{"status"})

	ProfileUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_updates_total",
		Help:      "Successful profile upserts.",
	})
)

// TrackInFlight bumps the in-flight gauge and returns the matching decrement.
func TrackInFlight() (done func()) {
	HTTPRequestsInFlight.Inc()
	return HTTPRequestsInFlight.Dec
}

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordAccountEvent is the auth.Service event hook. Status is "success" or
// the domain error code.
func RecordAccountEvent(name, status string) {
	switch name {
	case "register":
		RegistrationsTotal.WithLabelValues(status).Inc()
	case "login":
		LoginAttemptsTotal.WithLabelValues(status).Inc()
	}
}

// RecordProfileUpdate is the profile.Service update hook.
func RecordProfileUpdate() {
	ProfileUpdatesTotal.Inc()
}
