// Package metrics holds the Prometheus collectors shared by the service and
// the HTTP transport.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report build outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeNotFound        = "not_found"
	OutcomeInvalid         = "invalid"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeError           = "error"
)

var (
	ReportsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loanportal_reports_built_total",
			Help: "Total number of report builds by report kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	DocumentsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loanportal_documents_saved_total",
			Help: "Total number of pre-approval documents saved",
		},
		[]string{"operation"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loanportal_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loanportal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)
