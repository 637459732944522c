// Package telemetry holds the Prometheus metrics of member explorations.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records exploration results. A nil *Metrics records nothing.
type Metrics struct {
	explorations *prometheus.CounterVec
	steps        prometheus.Histogram
	findings     *prometheus.CounterVec
	faults       prometheus.Counter
	skipped      *prometheus.CounterVec
}

// NewMetrics registers the metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// Labels: outcome (completed, step_limit, visit_limit, cancelled)
		explorations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pathcheck",
			Subsystem: "engine",
			Name:      "explorations_total",
			Help:      "Member explorations by outcome",
		}, []string{"outcome"}),

		steps: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pathcheck",
			Subsystem: "engine",
			Name:      "steps",
			Help:      "Worklist nodes processed per exploration",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 12),
		}),

		// Labels: check (nilderef, constcond, ...)
		findings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pathcheck",
			Subsystem: "checks",
			Name:      "findings_total",
			Help:      "Findings reported by check",
		}, []string{"check"}),

		faults: f.NewCounter(prometheus.CounterOpts{
			Namespace: "pathcheck",
			Subsystem: "engine",
			Name:      "faults_total",
			Help:      "Explorations aborted by an engine fault",
		}),

		// Labels: reason (no_body, invalid_body)
		skipped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pathcheck",
			Subsystem: "runner",
			Name:      "skipped_members_total",
			Help:      "Members that could not be explored",
		}, []string{"reason"}),
	}
}

// RecordExploration counts a finished exploration.
func (m *Metrics) RecordExploration(outcome string, steps int) {
	if m == nil {
		return
	}
	m.explorations.WithLabelValues(outcome).Inc()
	m.steps.Observe(float64(steps))
}

// RecordFinding counts a finding of check.
func (m *Metrics) RecordFinding(check string) {
	if m == nil {
		return
	}
	m.findings.WithLabelValues(check).Inc()
}

// RecordFault counts an aborted exploration.
func (m *Metrics) RecordFault() {
	if m == nil {
		return
	}
	m.faults.Inc()
}

// RecordSkipped counts a member that was not explored.
func (m *Metrics) RecordSkipped(reason string) {
	if m == nil {
		return
	}
	m.skipped.WithLabelValues(reason).Inc()
}
