package models

import "time"

// MetricsSnapshot summarizes process and engine counters.
type MetricsSnapshot struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	EligibilityEvaluations   uint64    `json:"eligibility_evaluations"`
	SearchFallbacks          uint64    `json:"search_fallbacks"`
	GeneratedAt              time.Time `json:"generated_at"`
}
