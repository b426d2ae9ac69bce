// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readable_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records repository call latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "readable_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// VotesTotal counts accepted votes by target kind and option.
	VotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readable_votes_total",
		Help: "Total number of votes applied",
	}, []string{"kind", "option"})

	// SoftDeletesTotal counts soft deletions by target kind.
	SoftDeletesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readable_soft_deletes_total",
		Help: "Total number of soft-deleted posts and comments",
	}, []string{"kind"})

	// OrphanedCommentsTotal counts comments hidden by a parent post deletion.
	OrphanedCommentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readable_orphaned_comments_total",
		Help: "Total number of comments orphaned by cascading post deletion",
	})

	// RejectedWritesTotal counts writes rejected by consistency rules, by error code.
	RejectedWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readable_rejected_writes_total",
		Help: "Total number of writes rejected by validation or integrity rules",
	}, []string{"kind", "code"})
)

// DatabaseMetrics records repository query latency for one table.
type DatabaseMetrics struct {
	table string
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance for table.
func NewDatabaseMetrics(table string) *DatabaseMetrics {
	return &DatabaseMetrics{table: table}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, m.table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, start)
	}
}
