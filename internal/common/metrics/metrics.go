// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueryTranslations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "query_translations_total",
			Help: "Total number of free-text queries translated",
		},
	)

	TranslationRulesFired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_translation_rules_fired_total",
			Help: "Total number of times each extraction rule fired",
		},
		[]string{"rule"},
	)

	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of search requests by backend and status",
		},
		[]string{"backend", "status"},
	)

	SearchRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "search_request_duration_seconds",
			Help: "Duration of backend search requests in seconds",
		},
		[]string{"backend"},
	)

	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_cache_operations_total",
			Help: "Total number of response cache hits, misses and errors",
		},
		[]string{"result"},
	)
)
