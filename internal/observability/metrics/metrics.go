package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bluerhyno_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bluerhyno_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	engineOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bluerhyno_engine_operations_total",
		Help: "Count of quoting engine operations by result",
	}, []string{"operation", "result"})

	engineOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bluerhyno_engine_operation_duration_seconds",
		Help:    "Duration of quoting engine operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	cascadeRowsDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bluerhyno_cascade_rows_deleted_total",
		Help: "Rows removed by cascade deletes, per table",
	}, []string{"table"})

	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bluerhyno_notifications_total",
		Help: "Count of outbound email notifications by result",
	}, []string{"kind", "result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveEngineOperation records one engine call and its outcome.
func ObserveEngineOperation(operation string, err error, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	engineOperationsTotal.WithLabelValues(operation, result).Inc()
	engineOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveCascadeRows records rows removed from one table during a cascade.
func ObserveCascadeRows(table string, rows int64) {
	if rows <= 0 {
		return
	}
	cascadeRowsDeleted.WithLabelValues(table).Add(float64(rows))
}

// ObserveNotification records an email delivery attempt.
func ObserveNotification(kind string, err error) {
	result := "sent"
	if err != nil {
		result = "failed"
	}
	notificationsTotal.WithLabelValues(kind, result).Inc()
}
