package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_queries_total",
		Help: "Total number of path queries handled, labelled by outcome.",
	}, []string{"status"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathfinder_cache_hits_total",
		Help: "Total number of query cache hits.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathfinder_cache_misses_total",
		Help: "Total number of query cache misses.",
	})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathfinder_rate_limited_total",
		Help: "Total number of queries rejected by per-requester rate limiting.",
	})

	SolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathfinder_solve_duration_seconds",
		Help:    "Wall-clock latency of solver executions (cache misses only).",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
	})

	InflightQueries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pathfinder_inflight_queries",
		Help: "Number of queries currently being handled.",
	})

	GraphReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_graph_reloads_total",
		Help: "Total number of graph reload attempts, labelled by status.",
	}, []string{"status"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pathfinder_graph_nodes",
		Help: "Number of nodes in the active graph snapshot.",
	})

	GraphVersion = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pathfinder_graph_version",
		Help: "Version of the active graph snapshot.",
	})
)
