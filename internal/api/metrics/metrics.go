// Package metrics defines and registers the custom Prometheus metrics for the
// dealership server. Metrics are registered with the default registry on
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dealership"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login outcomes.
// Label:
//   - result: "success", "invalid", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration outcomes.
// Labels:
//   - result: "success" or "error"
//   - account_type: the role requested
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of account registrations, by result and account type.",
	},
	[]string{"result", "account_type"},
)

// TokenRejectionsTotal counts session cookies that failed verification.
var TokenRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of invalid or expired session tokens presented.",
	},
)

// AccessDeniedTotal counts requests turned away by an authorization gate.
// Label:
//   - gate: "login" or "role"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by an authorization gate.",
	},
	[]string{"gate"},
)

// ValidationFailuresTotal counts submitted forms rejected by validation.
// Label:
//   - form: the form name (e.g. "register", "login")
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of form submissions that failed validation.",
	},
	[]string{"form"},
)

// ── Review metrics ────────────────────────────────────────────────────────────

// ReviewsTotal counts review writes.
// Labels:
//   - op: "submit" or "update"
//   - result: "ok" or "error"
var ReviewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_total",
		Help:      "Total number of review writes, by operation and result.",
	},
	[]string{"op", "result"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityRecordedTotal counts audit records processed by the dispatcher.
// Labels:
//   - kind: the activity kind (e.g. "login")
//   - result: "ok" or "error"
var ActivityRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_recorded_total",
		Help:      "Total number of account activity records processed.",
	},
	[]string{"kind", "result"},
)

// ActivityDroppedTotal counts audit records dropped because a worker queue
// was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of account activity records dropped on a full queue.",
	},
)

// ActivityQueueDepth tracks the number of records waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
