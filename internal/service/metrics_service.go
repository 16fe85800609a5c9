package service

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/admission-planner-api/internal/models"
)

// plannerCounts backs the JSON summary; Prometheus keeps the labelled series.
type plannerCounts struct {
	cacheHits       atomic.Uint64
	cacheMisses     atomic.Uint64
	requests        atomic.Uint64
	requestNanos    atomic.Uint64
	searches        atomic.Uint64
	searchNanos     atomic.Uint64
	evaluations     atomic.Uint64
	searchFallbacks atomic.Uint64
}

// MetricsService records planner traffic, catalog lookups and verdicts.
// The zero value is not usable; a nil *MetricsService discards everything.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	httpDuration   *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
	cacheRead      prometheus.Histogram
	cacheWrite     prometheus.Histogram
	cacheLookups   *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	evaluations    *prometheus.CounterVec
	fallbacks      prometheus.Counter
	ruleDefects    prometheus.Counter

	counts plannerCounts
}

// NewMetricsService builds a private registry so tests can run in parallel.
func NewMetricsService() *MetricsService {
	httpLabels := []string{"method", "path", "status"}
	m := &MetricsService{
		registry: prometheus.NewRegistry(),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Planner API request latency",
			Buckets: prometheus.DefBuckets,
		}, httpLabels),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Planner API requests by route and status",
		}, httpLabels),
		cacheRead: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_latency_seconds",
			Help:    "Search cache read latency",
			Buckets: prometheus.DefBuckets,
		}),
		cacheWrite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_write_seconds",
			Help:    "Search cache write latency",
			Buckets: prometheus.DefBuckets,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Search cache lookups by outcome",
		}, []string{"outcome"}),
		searchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Catalog query latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"query"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eligibility_evaluations_total",
			Help: "Eligibility evaluations by resulting status",
		}, []string{"status"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "program_search_fallback_total",
			Help: "Program searches answered with near-equivalent fields",
		}),
		ruleDefects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "requirement_rule_defects_total",
			Help: "Stored requirement rules whose payload could not be interpreted",
		}),
	}

	m.registry.MustRegister(m.httpDuration, m.httpRequests, m.cacheRead, m.cacheWrite, m.cacheLookups,
		m.searchDuration, m.evaluations, m.fallbacks, m.ruleDefects)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Handler serves the Prometheus exposition format, or 503 when metrics are off.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry is exposed for tests that gather series directly.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records one request against its route template.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.counts.requests.Add(1)
	m.counts.requestNanos.Add(uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records a search cache read.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheRead.Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		m.counts.cacheHits.Add(1)
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
	m.counts.cacheMisses.Add(1)
}

// ObserveCacheWrite records a search cache write.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records a catalog query under the given label.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.searchDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.counts.searches.Add(1)
	m.counts.searchNanos.Add(uint64(duration.Nanoseconds()))
}

// RecordEvaluation counts an eligibility verdict.
func (m *MetricsService) RecordEvaluation(status models.EligibilityStatus) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(string(status)).Inc()
	m.counts.evaluations.Add(1)
}

// RecordSearchFallback counts a search answered by near-equivalent suggestions.
func (m *MetricsService) RecordSearchFallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
	m.counts.searchFallbacks.Add(1)
}

// RecordRuleDefects counts stored rules that could not be interpreted.
func (m *MetricsService) RecordRuleDefects(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ruleDefects.Add(float64(n))
}

// Snapshot summarises the counters for GET /metrics/summary.
func (m *MetricsService) Snapshot() models.MetricsSnapshot {
	if m == nil {
		return models.MetricsSnapshot{}
	}
	hits := m.counts.cacheHits.Load()
	misses := m.counts.cacheMisses.Load()
	requests := m.counts.requests.Load()
	queries := m.counts.searches.Load()

	return models.MetricsSnapshot{
		CacheHitRatio:            ratio(hits, hits+misses),
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            requests,
		AverageRequestDurationMs: averageMillis(m.counts.requestNanos.Load(), requests),
		DBQueryCount:             queries,
		AverageDBQueryDurationMs: averageMillis(m.counts.searchNanos.Load(), queries),
		EligibilityEvaluations:   m.counts.evaluations.Load(),
		SearchFallbacks:          m.counts.searchFallbacks.Load(),
		GeneratedAt:              time.Now().UTC(),
	}
}

func ratio(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

func averageMillis(totalNanos, n uint64) float64 {
	if n == 0 {
		return 0
	}
	return float64(totalNanos) / float64(n) / float64(time.Millisecond)
}
