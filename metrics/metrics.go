// Package metrics provides Prometheus metrics for the HTTP server and the
// resolution/risk pipeline:
//   - http_request_total, http_request_duration_seconds, http_request_in_flight
//   - entity_resolutions_total: resolver outcomes by entity kind
//   - risk_assessments_total: assessments by mode and tier
//   - interaction_findings_total: findings by severity
//   - snapshot_loads_total, snapshot_load_duration_seconds, snapshot_entries
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Resolution outcomes.
const (
	OutcomeExact    = "exact"
	OutcomeFuzzy    = "fuzzy"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	EntityResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_resolutions_total",
			Help: "Entity resolutions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	RiskAssessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_assessments_total",
			Help: "Risk assessments by mode and tier",
		},
		[]string{"mode", "tier"},
	)

	InteractionFindingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_findings_total",
			Help: "Reported drug interactions by severity",
		},
		[]string{"severity"},
	)

	SnapshotLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_loads_total",
			Help: "Reference snapshot loads by result",
		},
		[]string{"result"},
	)

	SnapshotLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapshot_load_duration_seconds",
			Help:    "Time to load and index the reference snapshot",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	SnapshotEntries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "snapshot_entries",
			Help: "Entries in the current reference snapshot by table",
		},
		[]string{"table"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(EntityResolutionsTotal)
	prometheus.MustRegister(RiskAssessmentsTotal)
	prometheus.MustRegister(InteractionFindingsTotal)
	prometheus.MustRegister(SnapshotLoadsTotal)
	prometheus.MustRegister(SnapshotLoadDuration)
	prometheus.MustRegister(SnapshotEntries)
}

// ObserveResolution counts one resolver call.
func ObserveResolution(kind string, found, exact bool) {
	outcome := OutcomeNotFound
	switch {
	case found && exact:
		outcome = OutcomeExact
	case found:
		outcome = OutcomeFuzzy
	}
	EntityResolutionsTotal.WithLabelValues(kind, outcome).Inc()
}
