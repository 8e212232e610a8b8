// Package observability provides metrics and tracing.
package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by statement kind.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ripple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// PostsCreated counts created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_posts_created_total",
		Help: "Total number of posts created",
	})

	// FollowMutations counts follow-graph mutations by kind (follow/unfollow).
	FollowMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_follow_mutations_total",
		Help: "Total number of follow graph mutations by kind",
	}, []string{"kind"})

	// ReactionsToggled counts reaction mutations by outcome (added/removed/changed).
	ReactionsToggled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_reactions_toggled_total",
		Help: "Total number of reaction toggles by outcome",
	}, []string{"outcome"})

	// FeedRequests counts feed reads by source (personal/public).
	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_feed_requests_total",
		Help: "Total number of feed requests by source",
	}, []string{"source"})

	// CacheRequests counts cache lookups by key prefix and result (hit/miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_cache_requests_total",
		Help: "Total number of cache lookups by result",
	}, []string{"prefix", "result"})
)

// ObserveQuery records the latency of a database query. The operation label
// is the leading SQL keyword, lowercased.
func ObserveQuery(sql string, elapsed time.Duration) {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return
	}
	DatabaseQueryLatency.WithLabelValues(strings.ToLower(fields[0])).Observe(elapsed.Seconds())
}
