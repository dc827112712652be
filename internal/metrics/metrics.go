package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_http_requests_total",
			Help: "Total HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)

	BundleCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_bundle_cache_hits_total",
			Help: "Personalized bundle cache hits",
		},
	)

	BundleCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_bundle_cache_misses_total",
			Help: "Personalized bundle cache misses",
		},
	)

	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_scoring_duration_seconds",
			Help:    "Time spent scoring and bucketing one request",
			Buckets: prometheus.DefBuckets,
		},
	)

	BatchUsersProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_batch_users_total",
			Help: "Users processed by batch recommendation requests",
		},
		[]string{"status"},
	)
)
