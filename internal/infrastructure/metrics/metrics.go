package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AnalyzerMetrics holds Prometheus metrics for the wallet analytics pipeline.
// A nil *AnalyzerMetrics is valid and records nothing.
type AnalyzerMetrics struct {
	RPCRequests      *prometheus.CounterVec
	RPCDuration      *prometheus.HistogramVec
	CacheLookups     *prometheus.CounterVec
	ActivitiesByType *prometheus.CounterVec
	FetchDuration    prometheus.Histogram
	FetchErrors      prometheus.Counter
	DerivationErrors prometheus.Counter
}

// NewAnalyzerMetrics registers analyzer metrics with the default registry
func NewAnalyzerMetrics() *AnalyzerMetrics {
	return NewAnalyzerMetricsWith(prometheus.DefaultRegisterer)
}

// NewAnalyzerMetricsWith registers analyzer metrics with reg
func NewAnalyzerMetricsWith(reg prometheus.Registerer) *AnalyzerMetrics {
	factory := promauto.With(reg)

	return &AnalyzerMetrics{
		RPCRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_rpc_requests_total",
			Help: "Total number of Solana RPC requests",
		}, []string{"method", "status"}),
		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "analyzer_rpc_request_duration_seconds",
			Help:    "Solana RPC request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"method"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_cache_lookups_total",
			Help: "Wallet and transaction cache lookups by result",
		}, []string{"cache", "result"}),
		ActivitiesByType: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_activities_classified_total",
			Help: "Total number of classified activities by type",
		}, []string{"type"}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "analyzer_fetch_duration_seconds",
			Help:    "Time taken to fetch and classify a wallet's activities",
			Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		FetchErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "analyzer_fetch_errors_total",
			Help: "Total number of failed wallet fetches",
		}),
		DerivationErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "analyzer_derivation_errors_total",
			Help: "Total number of recovered position reconstruction failures",
		}),
	}
}

// ObserveRPC records one RPC call
func (m *AnalyzerMetrics) ObserveRPC(method string, seconds float64, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.RPCRequests.WithLabelValues(method, status).Inc()
	m.RPCDuration.WithLabelValues(method).Observe(seconds)
}

// CacheHit records a cache hit
func (m *AnalyzerMetrics) CacheHit(cache string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(cache, "hit").Inc()
}

// CacheMiss records a cache miss
func (m *AnalyzerMetrics) CacheMiss(cache string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(cache, "miss").Inc()
}

// Classified records one classified activity
func (m *AnalyzerMetrics) Classified(activityType string) {
	if m == nil {
		return
	}
	m.ActivitiesByType.WithLabelValues(activityType).Inc()
}

// FetchCompleted records the duration of a wallet fetch
func (m *AnalyzerMetrics) FetchCompleted(seconds float64) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(seconds)
}

// FetchFailed records a failed wallet fetch
func (m *AnalyzerMetrics) FetchFailed() {
	if m == nil {
		return
	}
	m.FetchErrors.Inc()
}

// DerivationFailed records a recovered reconstruction failure
func (m *AnalyzerMetrics) DerivationFailed() {
	if m == nil {
		return
	}
	m.DerivationErrors.Inc()
}
