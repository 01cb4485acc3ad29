// Package metrics exposes Prometheus counters for report sessions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/joshsz/specreport/types"
)

const (
	MetricsNamespace = "specreport"
)

var (
	examplesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "examples_total",
		Help:      "Count of examples processed",
	}, []string{
		"run_id",
		"outcome",
	})

	failuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "failures_total",
		Help:      "Count of failed examples by failure kind",
	}, []string{
		"run_id",
		"kind",
	})

	protocolViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "protocol_violations_total",
		Help:      "Count of event-ordering contract violations",
	}, []string{
		"run_id",
	})

	sessionExamples = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "session_examples",
		Help:      "Total examples reported by the finished session",
	}, []string{
		"run_id",
	})

	sessionFailures = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "session_failures",
		Help:      "Total failures reported by the finished session",
	}, []string{
		"run_id",
	})

	sessionDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "session_duration_seconds",
		Help:      "Wall-clock duration of the finished session",
	}, []string{
		"run_id",
	})
)

// RecordExample increments the per-outcome example counter.
func RecordExample(runID string, outcome types.Outcome) {
	examplesTotal.WithLabelValues(runID, string(outcome)).Inc()
}

// RecordFailure increments the per-kind failure counter.
func RecordFailure(runID string, kind types.FailureKind) {
	if kind == "" {
		kind = types.FailureKindExpectation
	}
	failuresTotal.WithLabelValues(runID, string(kind)).Inc()
}

// RecordProtocolViolation increments the contract-violation counter.
func RecordProtocolViolation(runID string) {
	protocolViolationsTotal.WithLabelValues(runID).Inc()
}

// RecordSession records the finished session's aggregate numbers.
func RecordSession(runID string, summary types.RunSummary) {
	sessionExamples.WithLabelValues(runID).Set(float64(summary.ExampleCount))
	sessionFailures.WithLabelValues(runID).Set(float64(summary.FailureCount))
	sessionDuration.WithLabelValues(runID).Set(summary.Duration.Seconds())
}
