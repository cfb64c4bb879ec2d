// Package metrics defines and registers all custom Prometheus metrics for the
// bootcamp directory API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default registry via promauto; the
// router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devcamper"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successful account registrations.
// Label:
//   - role: the role assigned to the new account ("user", "publisher")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ResetEmailsTotal counts password-reset email dispatches.
// Label:
//   - result: "sent" or "failed"
var ResetEmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_emails_total",
		Help:      "Total number of password-reset emails dispatched, by result.",
	},
	[]string{"result"},
)

// ── Rating metrics ────────────────────────────────────────────────────────────

// RatingRecomputesTotal counts average-rating recomputations.
// Label:
//   - result: "ok" or "error"
var RatingRecomputesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_recomputes_total",
		Help:      "Total number of average-rating recomputations, by result.",
	},
	[]string{"result"},
)

// RatingRecomputeDuration measures how long one recomputation takes, from
// aggregation to persistence.
var RatingRecomputeDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rating_recompute_duration_seconds",
		Help:      "Duration of a single average-rating recomputation.",
		Buckets:   prometheus.DefBuckets,
	},
)

// RatingQueueDepth tracks the number of recompute jobs waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RatingQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rating_queue_depth",
		Help:      "Current number of recompute jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// ── Transport metrics ─────────────────────────────────────────────────────────

// RateLimitRejectedTotal counts requests rejected by the global rate limiter.
var RateLimitRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejected_total",
		Help:      "Total number of requests rejected with HTTP 429.",
	},
)
