package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	CaseOpenings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCaseOpenings,
			Help: HelpTextCaseOpenings,
		},
		[]string{LabelResult},
	)

	CaseOpeningDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameCaseOpeningDuration,
			Help:    HelpTextCaseOpeningDuration,
			Buckets: OpeningLatencyBuckets,
		},
	)

	ItemsWon = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsWon,
			Help: HelpTextItemsWon,
		},
		[]string{LabelRarity},
	)

	MoneySpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneySpent,
			Help: HelpTextMoneySpent,
		},
	)

	MoneyDeposited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneyDeposited,
			Help: HelpTextMoneyDeposited,
		},
	)
)

// Cache Metrics
var (
	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCatalogCacheHits,
			Help: HelpTextCatalogCacheHits,
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCatalogCacheMisses,
			Help: HelpTextCatalogCacheMisses,
		},
	)
)
