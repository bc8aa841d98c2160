package metricutils

import "github.com/prometheus/client_golang/prometheus"

// Observer is the interface that wraps the Observe method, which is used by
// Histogram and Summary to add observations.
//
// NOTE: just for a smaller imports list.
type Observer = prometheus.Observer

// Counter is a Metric that represents a single numerical value that only ever
// goes up.
//
// To create Counter instances, use [prometheus.NewCounter].
type Counter interface {
	// Inc increments the counter by 1. Use Add to increment it by arbitrary
	// non-negative values.
	Inc()
	// Add adds the given value to the counter. It panics if the value is <
	// 0.
	Add(float64)
}

// Gauge is the settable subset of [prometheus.Gauge].
type Gauge interface {
	Set(float64)
}

var (
	_ Counter = prometheus.Counter(nil)
	_ Gauge   = prometheus.Gauge(nil)
)

type NoOpCounter struct{}

var _ Counter = NoOpCounter{}

func (NoOpCounter) Inc()        {}
func (NoOpCounter) Add(float64) {}

type NoOpGauge struct{}

var _ Gauge = NoOpGauge{}

func (NoOpGauge) Set(float64) {}

type NoOpObserver struct{}

var _ prometheus.Observer = NoOpObserver{}

func (NoOpObserver) Observe(float64) {}

// BoolGauge converts a boolean into the 0/1 gauge convention.
func BoolGauge(g Gauge) func(bool) {
	return func(b bool) {
		if b {
			g.Set(1)
		} else {
			g.Set(0)
		}
	}
}
