package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNilCollectorMethodsAreNoOps(t *testing.T) {
	var c *Collector
	// Must not panic.
	c.IncNodesPushed()
	c.IncResolverCalls()
	c.IncPlansFound()
	c.SetBytesAllocated(10)
	c.ObserveSearchSeconds(0.5)
}

func TestCollectorIncrementsRegisteredCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.IncNodesPushed()

	var m dto.Metric
	if err := c.NodesPushed.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if m.Counter.GetValue() != 1 {
		t.Fatalf("got %v, want 1", m.Counter.GetValue())
	}
}
