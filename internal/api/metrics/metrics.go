// Package metrics defines the custom Prometheus metrics of the food admin
// backend. HTTP request metrics come from echoprometheus; everything here
// describes the tracking layer and the admin catalogue.
//
// All vectors register with the default registry on import via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "food_admin"

// Result label values shared by the counters below.
const (
	ResultOK          = "ok"
	ResultError       = "error"
	ResultUnavailable = "unavailable"
)

// ── Realtime store ────────────────────────────────────────────────────────────

// RealtimeOperationsTotal counts tracking layer operations against the realtime store.
// Labels:
//   - collection: users, drivers, delivery_boys, active_orders, route_cache
//   - op: upsert, update_location, set_status, remove, get, query
//   - result: ok, error, unavailable (no store handle or missing id)
var RealtimeOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_operations_total",
		Help:      "Total realtime store operations issued by the tracking layer.",
	},
	[]string{"collection", "op", "result"},
)

// NearestSearchDuration measures nearest online delivery boy searches.
// Label:
//   - result: found, none, error
var NearestSearchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "nearest_search_duration_seconds",
		Help:      "Duration of nearest online delivery boy searches.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// NearestCandidatesScanned counts online delivery boys examined by nearest searches.
var NearestCandidatesScanned = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nearest_candidates_scanned_total",
		Help:      "Total online delivery boy records examined by nearest searches.",
	},
)

// RouteCacheLookupsTotal counts route cache reads.
// Label:
//   - result: hit, miss, expired
var RouteCacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_cache_lookups_total",
		Help:      "Total route cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Events and dispatch ───────────────────────────────────────────────────────

// EventsPublishedTotal counts tracking events handed to the event publisher.
// Labels:
//   - type: event type (e.g. "order.status_changed")
//   - result: ok, error
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_events_published_total",
		Help:      "Total tracking events published downstream.",
	},
	[]string{"type", "result"},
)

// OrderQueueDepth tracks pending active-order jobs per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var OrderQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "order_queue_depth",
		Help:      "Current number of active-order jobs pending in each dispatcher worker.",
	},
	[]string{"worker_id"},
)

// ── Admin catalogue ───────────────────────────────────────────────────────────

// AdminMutationsTotal counts successful admin writes.
// Labels:
//   - entity: city, hub, about
//   - action: create, update, delete
var AdminMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_mutations_total",
		Help:      "Total successful admin catalogue mutations.",
	},
	[]string{"entity", "action"},
)
