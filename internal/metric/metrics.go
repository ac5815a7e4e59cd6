package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Optimizer runs, labeled by outcome: ok / no_deals / too_many_stores / error
	OptimizerRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prox",
		Subsystem: "optimizer",
		Name:      "runs_total",
		Help:      "Cart optimization runs by outcome",
	}, []string{"outcome"})

	// How many store combinations a single run had to simulate
	CombosSimulated = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prox",
		Subsystem: "optimizer",
		Name:      "combos_simulated",
		Help:      "Store combinations simulated per optimization run",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	// Deal-feed RPC calls, labeled by procedure and success/error
	DealFeedRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prox",
		Subsystem: "dealfeed",
		Name:      "requests_total",
		Help:      "Remote deal-feed RPC calls",
	}, []string{"rpc", "status"})

	// Result-cache lookups: hit / miss
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prox",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Result cache lookups",
	}, []string{"result"})

	// Current number of entries held by the in-memory cache
	CacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "prox",
		Subsystem: "cache",
		Name:      "items_count",
		Help:      "Entries currently in the in-memory cache",
	})

	// HTTP request latency by status code
	RequestMetrics = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  "prox",
		Subsystem:  "http",
		Name:       "request",
		Help:       "HTTP request latency",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"status"})
)

// ObserveRequest records one served HTTP request.
func ObserveRequest(t time.Duration, status int) {
	RequestMetrics.WithLabelValues(strconv.Itoa(status)).Observe(t.Seconds())
}
