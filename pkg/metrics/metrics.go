package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emphub_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "emphub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emphub_store_operations_total",
			Help: "Record store operations",
		},
		[]string{"operation", "entity", "result"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "emphub_store_operation_duration_seconds",
			Help:    "Record store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "entity"},
	)

	ServiceErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emphub_service_errors_total",
			Help: "Errors returned by services, by kind",
		},
		[]string{"operation", "kind"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emphub_cache_hits_total",
			Help: "Cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emphub_cache_misses_total",
			Help: "Cache misses",
		},
	)
)

func RecordHttpRequest(method, route, status string, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, route, status).Inc()
	HttpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordStoreOperation(operation, entity string, err error, duration time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreOperationsTotal.WithLabelValues(operation, entity, result).Inc()
	StoreOperationDuration.WithLabelValues(operation, entity).Observe(duration.Seconds())
}

func RecordServiceError(operation, kind string) {
	ServiceErrorsTotal.WithLabelValues(operation, kind).Inc()
}

func RecordCacheHit() {
	CacheHits.Inc()
}

func RecordCacheMiss() {
	CacheMisses.Inc()
}
