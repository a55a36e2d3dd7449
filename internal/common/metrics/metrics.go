// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_page_requests_total",
			Help: "Total number of page requests served",
		},
		[]string{"page", "status"},
	)

	PageRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dashboard_page_request_duration_seconds",
			Help: "Duration of page request handling in seconds",
		},
		[]string{"page"},
	)

	BackendRequestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_backend_requests_completed_total",
			Help: "Total number of successful mortgage API calls",
		},
		[]string{"method", "path"},
	)

	BackendRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_backend_requests_failed_total",
			Help: "Total number of failed mortgage API calls",
		},
		[]string{"method", "path", "reason"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dashboard_backend_request_duration_seconds",
			Help: "Duration of mortgage API calls in seconds",
		},
		[]string{"method", "path"},
	)

	DocumentUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_document_uploads_total",
			Help: "Total number of borrower document uploads by category and outcome",
		},
		[]string{"category", "outcome"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_sessions_active",
			Help: "Number of signed-in dashboard sessions",
		},
	)
)
