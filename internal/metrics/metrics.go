package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ImageUploadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Number of project images uploaded to object storage.",
		},
	)

	BlobDeleteFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blob_delete_failures_total",
			Help: "Object-store deletions that failed and left an orphaned blob.",
		},
	)
)
