package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestValidationMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewValidationMetrics(reg)
	m.ObserveValidation("accepted", "", 0.05)
	m.ObserveValidation("rejected", "honeypot_filled", 0.001)
	m.ObserveFailOpen("mx")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 3 {
		t.Fatalf("expected 3 metric families, got %d", len(families))
	}
}

func TestValidationMetricsNilSafe(t *testing.T) {
	var m *ValidationMetrics
	m.ObserveValidation("accepted", "", 0.1)
	m.ObserveFailOpen("enrichment")
}
