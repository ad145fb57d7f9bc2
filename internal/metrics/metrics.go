// Package metrics records planner runs in a Prometheus registry that can be
// dumped for the node exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "valueiteration"

type Recorder struct {
	Registry *prometheus.Registry

	sweeps   prometheus.Counter
	residual prometheus.Gauge
	states   prometheus.Gauge
	duration prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      "Synchronous sweeps committed.",
		}),
		residual: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bellman_residual",
			Help:      "Largest value change in the last sweep.",
		}),
		states: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "states",
			Help:      "States enumerated by the planned MDP.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "planning_duration_seconds",
			Help:      "Wall time spent constructing a planner.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	r.Registry.MustRegister(r.sweeps, r.residual, r.states, r.duration)
	return r
}

func (r *Recorder) ObserveSweep(residual float64) {
	r.sweeps.Inc()
	r.residual.Set(residual)
}

func (r *Recorder) ObservePlan(states int, took time.Duration) {
	r.states.Set(float64(states))
	r.duration.Observe(took.Seconds())
}

func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}
