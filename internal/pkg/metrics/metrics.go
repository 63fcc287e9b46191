// Package metrics defines and registers the custom Prometheus metrics of the
// homes API. It is the single source of truth for metric names, labels, and
// help strings.
//
// All metrics register with the default Prometheus registry through promauto
// at package init, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "homes"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created" or "conflict"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// HomesCreatedTotal counts newly listed homes.
// Label:
//   - property_type: "RESIDENTIAL" or "CONDO"
var HomesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "homes_created_total",
		Help:      "Total number of homes listed, by property type.",
	},
	[]string{"property_type"},
)

// HomeMutationsTotal counts successful changes to existing homes.
// Label:
//   - op: "update", "delete" or "image"
var HomeMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "home_mutations_total",
		Help:      "Total number of successful home mutations, by operation.",
	},
	[]string{"op"},
)

var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of create requests answered from a previous Idempotency-Key.",
	},
)

// ── Listing event metrics ─────────────────────────────────────────────────────

// EventsProcessedTotal counts listing events that completed processing.
// Label:
//   - type: "created", "updated", "deleted" or "image_added"
var EventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_processed_total",
		Help:      "Total number of listing events successfully processed.",
	},
	[]string{"type"},
)

// EventsErrorsTotal counts listing events that failed a processing step.
// Label:
//   - reason: e.g. "audit_failed", "publish_failed"
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_errors_total",
		Help:      "Total number of listing event processing failures.",
	},
	[]string{"reason"},
)

// EventsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, processed)
var EventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// EventsQueueDepth tracks the number of events waiting in each worker channel.
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventsDroppedTotal counts events discarded because the dispatcher was stopped.
var EventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of listing events dropped after dispatcher shutdown.",
	},
)

// EventProcessingDuration measures how long a single event takes end-to-end.
// Label:
//   - result: "ok" or "error"
var EventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_processing_duration_seconds",
		Help:      "Duration of listing event processing from dequeue to audit write.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
