// Package observability provides metrics and tracing for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sunflowerpost_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sunflowerpost_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ReactionToggles counts reaction toggles by room and kind.
	ReactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sunflowerpost_reaction_toggles_total",
		Help: "Total number of reaction toggles by room and kind",
	}, []string{"room", "kind"})

	// FollowEvents counts follow-graph mutations by operation.
	FollowEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sunflowerpost_follow_events_total",
		Help: "Total number of follow graph mutations by operation",
	}, []string{"operation"})

	// JournalReflections counts journal assistant calls by outcome.
	JournalReflections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sunflowerpost_journal_reflections_total",
		Help: "Total number of journal assistant completions by outcome",
	}, []string{"outcome"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
