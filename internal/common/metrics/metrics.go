// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhookRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "Total number of webhook requests received",
		},
		[]string{"status"},
	)

	WebhookRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_requests_failed_total",
			Help: "Total number of webhook requests that failed",
		},
		[]string{"error_code"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pdf_pipeline_duration_seconds",
			Help: "Duration of the resolve-fill-upload pipeline in seconds",
		},
		[]string{"template_id"},
	)

	TemplatesResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "templates_resolved_total",
			Help: "Templates selected by the resolver",
		},
		[]string{"template_id"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "link_cache_hits_total",
			Help: "Webhook requests answered from the link cache",
		},
	)
)
