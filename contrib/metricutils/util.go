package metricutils

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func ObserveDuration(h prometheus.Observer) func(time.Duration) {
	return func(d time.Duration) { h.Observe(d.Seconds()) }
}

// Since observes the time passed since start, in seconds.
func Since(h prometheus.Observer, start time.Time) {
	ObserveDuration(h)(time.Since(start))
}
