package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWithRegistererRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewWithRegisterer(registry)

	if m.TillCommands == nil || m.HTTPRequests == nil || m.LedgerInconsistencies == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.TillCommands.WithLabelValues("open").Inc()
	m.LedgerInconsistencies.Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.TillCommands.WithLabelValues("open")); got != 1 {
		t.Fatalf("expected open counter 1, got %v", got)
	}
}

func TestNewWithRegistererIsolatedRegistries(t *testing.T) {
	// Two registries must not collide on metric names.
	NewWithRegisterer(prometheus.NewRegistry())
	NewWithRegisterer(prometheus.NewRegistry())
}
