// Package metrics defines and registers all custom Prometheus metrics for the
// portal gateway. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "degraded", "invalid_credentials", "unreachable"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// SessionsActive tracks the number of sessions this instance has established
// and not yet cleared.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Sessions established by this instance and not yet cleared.",
	},
)

// SessionRestoresTotal counts persisted-blob restorations by outcome.
// Label:
//   - result: "hit", "miss", "corrupt"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restorations from the persisted blob, by outcome.",
	},
	[]string{"result"},
)

// UpstreamRequestDuration measures backend call latency.
// Labels:
//   - endpoint: logical backend operation (e.g. "login", "jobs_list")
//   - status:   HTTP status code, or "error" on transport failure
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the jobber backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "status"},
)

// ApplyDedupTotal counts duplicate-application guard decisions.
// Label:
//   - result: "acquired" (forwarded) or "blocked" (duplicate suppressed)
var ApplyDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "apply_dedup_total",
		Help:      "Total number of apply-guard decisions, by result.",
	},
	[]string{"result"},
)

// GuardRedirectsTotal counts unauthenticated requests bounced to the login
// path by the route guard.
var GuardRedirectsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Unauthenticated requests redirected to the login path.",
	},
)
