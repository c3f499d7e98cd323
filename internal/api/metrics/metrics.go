// Package metrics defines and registers all custom Prometheus metrics for
// the hotel console. It is the single source of truth for metric names,
// labels, and help strings; metrics register themselves with the default
// registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel_console"

// ── Sign-in metrics ───────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success", "not_found", "inactive", "bad_password",
//     "infrastructure"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// SessionRestoresTotal counts session restorations at initialization.
// Label:
//   - outcome: "restored", "empty", "evicted", "unavailable"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restoration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDenialsTotal counts route-guard denials. Incremented once per
// denial transition, not once per denied request.
// Labels:
//   - area: protected area name (e.g. "operator", "tenant")
//   - reason: "unauthenticated" or "wrong_role"
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of route guard denial transitions, by area and reason.",
	},
	[]string{"area", "reason"},
)

// ── Identity Store metrics ────────────────────────────────────────────────────

// IdentityStoreLatency measures Identity Store call duration.
// Label:
//   - operation: "verify_credentials", "find_active", "record_last_login"
var IdentityStoreLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "identity_store_duration_seconds",
		Help:      "Duration of Identity Store operations.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// ── Audit queue metrics ───────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of audit events waiting in
// each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events dropped because a worker
// buffer was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to full worker buffers.",
	},
)
