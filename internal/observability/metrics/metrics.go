package metrics

import "github.com/prometheus/client_golang/prometheus"

// ValidationMetrics exposes counters/histograms for the lead-validation
// pipeline.
type ValidationMetrics struct {
	validationsTotal *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	failOpenTotal    *prometheus.CounterVec
}

func NewValidationMetrics(reg prometheus.Registerer) *ValidationMetrics {
	m := &ValidationMetrics{
		validationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadgate",
			Subsystem: "validation",
			Name:      "submissions_total",
			Help:      "Lead submissions by outcome and rejection reason",
		}, []string{"outcome", "reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadgate",
			Subsystem: "validation",
			Name:      "pipeline_duration_seconds",
			Help:      "Wall time of a full pipeline run",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		failOpenTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadgate",
			Subsystem: "validation",
			Name:      "fail_open_total",
			Help:      "Checks that degraded to pass on infrastructure failure",
		}, []string{"check"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.validationsTotal, m.duration, m.failOpenTotal)
	return m
}

func (m *ValidationMetrics) ObserveValidation(outcome, reason string, seconds float64) {
	if m == nil {
		return
	}
	m.validationsTotal.WithLabelValues(outcome, reason).Inc()
	m.duration.WithLabelValues(outcome).Observe(seconds)
}

func (m *ValidationMetrics) ObserveFailOpen(check string) {
	if m == nil {
		return
	}
	m.failOpenTotal.WithLabelValues(check).Inc()
}
