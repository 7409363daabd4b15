package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// UploadsTotal counts upload attempts by service and result (saved, rejected, failed).
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_total",
			Help: "Uploaded files by result",
		},
		[]string{"service", "result"},
	)

	MirrorRegenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "public_mirror_regenerations_total",
			Help: "Public projects.json rewrites by result",
		},
		[]string{"result"},
	)
)
