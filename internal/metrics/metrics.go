package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Sink records simulation runs in Prometheus metrics.
type Sink struct {
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	unmet    prometheus.Histogram
}

// NewSink registers simulation metrics on the provided registerer. If reg is
// nil, the default registerer is used. If the collectors are already
// registered, the existing ones are reused.
func NewSink(reg prometheus.Registerer) (*Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simulation_runs_total",
		Help: "Total number of dispatch simulation runs",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "simulation_duration_seconds",
		Help:    "Wall time of one dispatch simulation run",
		Buckets: prometheus.DefBuckets,
	})
	unmet := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "simulation_unmet_energy_mwh",
		Help: "Total unmet energy per completed run",
		// Runs range from comfortable (0) to multi-day national shortfalls.
		Buckets: prometheus.ExponentialBuckets(100, 10, 7),
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(unmet); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			unmet = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &Sink{runs: runs, duration: duration, unmet: unmet}, nil
}

// RecordRun observes one completed (or rejected) simulation.
func (s *Sink) RecordRun(outcome string, elapsed time.Duration, unmetMWh float64) {
	if s == nil {
		return
	}
	s.runs.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		s.duration.Observe(elapsed.Seconds())
		s.unmet.Observe(unmetMWh)
	}
}

const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
)
