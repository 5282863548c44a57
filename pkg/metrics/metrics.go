// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Report outcomes.
const (
	OutcomeArchived      = "archived"
	OutcomeReconstructed = "reconstructed"
	OutcomeFailed        = "reconstruction_failed"
	OutcomeLookupError   = "lookup_error"
	OutcomeStoreError    = "store_error"
)

var (
	reportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "page_rescue_reports_total",
		Help: "Broken-page reports by outcome",
	}, []string{"outcome"})

	lookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "page_rescue_wayback_lookup_duration_seconds",
		Help:    "Wayback availability lookup duration",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})

	reconstructionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "page_rescue_reconstruction_duration_seconds",
		Help:    "LLM reconstruction duration",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"model"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "page_rescue_http_requests_total",
		Help: "HTTP requests by endpoint and status code",
	}, []string{"endpoint", "code"})
)

func RecordReport(outcome string) {
	reportsTotal.WithLabelValues(outcome).Inc()
}

func ObserveLookup(seconds float64) {
	lookupDuration.Observe(seconds)
}

func ObserveReconstruction(model string, seconds float64) {
	reconstructionDuration.WithLabelValues(model).Observe(seconds)
}

func RecordRequest(endpoint, code string) {
	httpRequests.WithLabelValues(endpoint, code).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
