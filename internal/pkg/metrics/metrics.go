// Package metrics defines and registers the Prometheus metrics of the showcase
// client. It is the single source of truth for metric names, labels, and help
// strings. Metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scout"

// ── API client metrics ────────────────────────────────────────────────────────

// APIRequestsTotal counts backend calls.
// Labels:
//   - endpoint: the route template (e.g. "/projects/:id/vote")
//   - method:   HTTP method
//   - status:   HTTP status code, or "network" when no response arrived
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total number of backend requests issued by the client.",
	},
	[]string{"endpoint", "method", "status"},
)

// APIRequestDuration measures backend round trips, timeouts included.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Duration of backend requests issued by the client.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// BreakerState reports the API circuit breaker state: 0 closed, 1 half-open, 2 open.
var BreakerState = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "breaker_state",
		Help:      "Current state of the API circuit breaker (0 closed, 1 half-open, 2 open).",
	},
)

// ── Vote metrics ──────────────────────────────────────────────────────────────

// VotesTotal counts settled vote operations.
// Labels:
//   - action: "vote" or "unvote"
//   - result: "ok", "failed", or "ignored" (call arrived while pending)
var VotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_total",
		Help:      "Total number of vote operations by action and result.",
	},
	[]string{"action", "result"},
)

// VoteRollbacksTotal counts optimistic updates that had to be reverted.
var VoteRollbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vote_rollbacks_total",
		Help:      "Total number of optimistic vote updates rolled back after a failure.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionExpirationsTotal counts sessions invalidated by the expiry monitor.
// Label:
//   - reason: "window" (validity window elapsed) or "unauthorized" (401 response)
var SessionExpirationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expirations_total",
		Help:      "Total number of sessions expired, by reason.",
	},
	[]string{"reason"},
)

// SessionTransitionsTotal counts login, register and logout transitions.
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session transitions, by kind.",
	},
	[]string{"kind"},
)
