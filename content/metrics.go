package content

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_content_query_duration_seconds",
			Help:    "Duration of content store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	queryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_content_query_errors_total",
			Help: "Total number of failed content store queries",
		},
		[]string{"backend", "operation"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portfolio_content_breaker_state",
			Help: "Content store circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

func observeQuery(backend, op string, start time.Time, err error) {
	queryDuration.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
	if err != nil {
		queryErrors.WithLabelValues(backend, op).Inc()
	}
}
