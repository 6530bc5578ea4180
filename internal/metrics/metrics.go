// Package metrics exposes the planner's internal counters through
// github.com/prometheus/client_golang, grounded on the teacher's
// internal/metrics provider-selection pattern but wired directly to a
// fixed Prometheus registry rather than a pluggable provider interface,
// since this module has exactly one metrics backend to support.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector bundles every metric the planner package reports against,
// including its count of resolver calls. A nil *Collector is valid and every method on it is a
// no-op, matching the logging package's nil-as-no-op convention for
// library use where metrics collection is opt-in.
type Collector struct {
	NodesPushed   prometheus.Counter
	ResolverCalls prometheus.Counter
	PlansFound    prometheus.Counter
	BytesAllocated prometheus.Gauge
	SearchSeconds prometheus.Histogram
}

// NewCollector registers a fresh set of metrics on reg and returns a
// Collector wired to them.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		NodesPushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "htnplan", Name: "nodes_pushed_total",
			Help: "Number of PlanNode frames pushed onto the search stack.",
		}),
		ResolverCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "htnplan", Name: "resolver_calls_total",
			Help: "Number of GoalResolver.Resolve invocations.",
		}),
		PlansFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "htnplan", Name: "plans_found_total",
			Help: "Number of solutions returned by FindNextPlan.",
		}),
		BytesAllocated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "htnplan", Name: "bytes_allocated",
			Help: "Most recent dynamicSize() observed during search.",
		}),
		SearchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "htnplan", Name: "search_seconds",
			Help:    "Elapsed wall-clock time of completed searches.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.NodesPushed, c.ResolverCalls, c.PlansFound, c.BytesAllocated, c.SearchSeconds)
	return c
}

func (c *Collector) IncNodesPushed() {
	if c != nil {
		c.NodesPushed.Inc()
	}
}

func (c *Collector) IncResolverCalls() {
	if c != nil {
		c.ResolverCalls.Inc()
	}
}

func (c *Collector) IncPlansFound() {
	if c != nil {
		c.PlansFound.Inc()
	}
}

func (c *Collector) SetBytesAllocated(n int64) {
	if c != nil {
		c.BytesAllocated.Set(float64(n))
	}
}

func (c *Collector) ObserveSearchSeconds(s float64) {
	if c != nil {
		c.SearchSeconds.Observe(s)
	}
}
