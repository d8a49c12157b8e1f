// Package metrics holds the Prometheus collectors of the sync engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Circuit breaker metrics, labelled by platform.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "campaign_sync_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"platform"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_sync_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"platform", "from", "to"},
	)

	TransportBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_sync_transport_breaker_transitions_total",
			Help: "State transitions of the per-platform HTTP transport breaker",
		},
		[]string{"platform", "from", "to"},
	)

	// Platform operations issued by the diff applier and retry handler.
	PlatformOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_sync_platform_operations_total",
			Help: "Platform mutations by entity, operation and outcome",
		},
		[]string{"platform", "entity", "operation", "outcome"}, // outcome: success, failed, exception, skipped
	)

	// PlatformCallDuration times one guarded adapter operation, labelled by
	// operation name (create_campaign, get_campaign_status, ...).
	PlatformCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaign_sync_platform_call_duration_seconds",
			Help:    "Duration of platform operations in seconds, including transport retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"platform", "operation"},
	)

	// PlatformRequestDuration times one REST exchange, labelled by HTTP method.
	PlatformRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaign_sync_platform_http_request_duration_seconds",
			Help:    "Duration of platform HTTP exchanges in seconds, including transport retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"platform", "method"},
	)

	SyncBackOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_sync_syncback_outcomes_total",
			Help: "Reconciliation outcomes per campaign",
		},
		[]string{"platform", "outcome"},
	)

	RetryOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_sync_retry_outcomes_total",
			Help: "Outcomes of the retry failed syncs job",
		},
		[]string{"outcome"}, // succeeded, failed, skipped, permanent_failure
	)

	SyncJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_sync_jobs_total",
			Help: "Campaign set sync jobs by final status",
		},
		[]string{"status"},
	)
)

// StateValue maps a breaker state name to its gauge value.
func StateValue(state string) float64 {
	switch state {
	case "closed":
		return 0
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return -1
	}
}
