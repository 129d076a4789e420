// Package metrics defines and registers all custom Prometheus metrics for
// the console. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Backend gateway metrics ──────────────────────────────────────────────────

// BackendRequestsTotal counts calls issued to the service-order backend.
// Labels:
//   - method: HTTP method
//   - status: numeric HTTP status, or "network_error" when no response arrived
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the service-order backend.",
	},
	[]string{"method", "status"},
)

// BackendRequestDuration measures backend round-trip time.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the service-order backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionsStartedTotal counts successful logins.
var SessionsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of sessions created by successful logins.",
	},
)

// SessionsExpiredTotal counts sessions torn down after an upstream 401.
var SessionsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_expired_total",
		Help:      "Total number of sessions destroyed after the backend rejected their token.",
	},
)

// ── Order flow metrics ───────────────────────────────────────────────────────

// PaymentsRecordedTotal counts payment registrations by payment status.
var PaymentsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payments recorded, by payment status.",
	},
	[]string{"status"},
)

// PaymentSyncFailuresTotal counts payment registrations whose follow-up
// order update failed, leaving the backend temporarily inconsistent.
var PaymentSyncFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_sync_failures_total",
		Help:      "Total number of recorded payments whose order update did not complete.",
	},
)
