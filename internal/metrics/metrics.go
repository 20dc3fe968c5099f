// Package metrics defines Prometheus metrics for ahtracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ahtracker"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last liveness probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last readiness probe succeeded (1) or failed (0).",
	})
)

// Search metrics.
var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of item searches, labeled by result data source.",
	}, []string{"source"})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "End-to-end duration of search requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	FallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fallbacks_total",
		Help:      "Total number of sample-data fallbacks, labeled by reason.",
	}, []string{"reason"})
)

// Battle.net API metrics.
var (
	BlizzardAPICallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blizzard_api_calls_total",
		Help:      "Total cumulative Battle.net API calls, labeled by operation.",
	}, []string{"operation"})

	BlizzardDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "blizzard_daily_usage",
		Help:      "Current daily Battle.net API call count within the rolling 24-hour window.",
	})

	BlizzardDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blizzard_daily_limit_hits_total",
		Help:      "Total number of times the daily Battle.net API limit was reached.",
	})

	TokenRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of OAuth token refreshes performed.",
	})
)

// Discovery sweep metrics.
var (
	SweepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "discovery_sweeps_total",
		Help:      "Total number of discovery sweeps, labeled by outcome.",
	}, []string{"outcome"})

	SweepProbesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "discovery_probes_total",
		Help:      "Total number of (region, namespace) combinations probed.",
	})

	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "discovery_sweep_duration_seconds",
		Help:      "Duration of discovery sweeps in seconds.",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300},
	})
)

// Auction cache metrics.
var (
	AuctionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auction_cache_hits_total",
		Help:      "Total number of auction snapshot cache hits.",
	})

	AuctionCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auction_cache_misses_total",
		Help:      "Total number of auction snapshot cache misses.",
	})
)
