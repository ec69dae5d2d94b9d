// Package metrics records planner and simulation measurements with
// Prometheus collectors on a private registry. A disabled Recorder accepts
// every call and records nothing.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "gridplan"

// Config controls metric collection.
type Config struct {
	Enabled   bool
	Namespace string
}

// Recorder holds the planner collectors.
type Recorder struct {
	registry *prometheus.Registry

	plans       *prometheus.CounterVec
	expanded    *prometheus.HistogramVec
	steps       *prometheus.HistogramVec
	pathCost    *prometheus.HistogramVec
	pathLength  *prometheus.HistogramVec
	duration    *prometheus.HistogramVec
	simulations *prometheus.CounterVec
	timesteps   *prometheus.HistogramVec
}

// New creates a Recorder. When cfg.Enabled is false the returned Recorder
// is a no-op.
func New(cfg Config) (*Recorder, error) {
	if !cfg.Enabled {
		return &Recorder{}, nil
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	registry := prometheus.NewRegistry()
	countBuckets := prometheus.ExponentialBuckets(1, 4, 10)

	r := &Recorder{
		registry: registry,
		plans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plans_total",
				Help:      "Total number of planner runs",
			},
			[]string{"strategy", "outcome"},
		),
		expanded: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_expanded_states",
				Help:      "Neighbors admitted to the frontier per run",
				Buckets:   countBuckets,
			},
			[]string{"strategy"},
		),
		steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_steps",
				Help:      "States taken from the frontier per run",
				Buckets:   countBuckets,
			},
			[]string{"strategy"},
		),
		pathCost: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_path_cost",
				Help:      "Terrain cost of found paths",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
			},
			[]string{"strategy"},
		),
		pathLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_path_length",
				Help:      "Number of actions in found paths",
				Buckets:   prometheus.LinearBuckets(0, 10, 20),
			},
			[]string{"strategy"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_duration_seconds",
				Help:      "Duration of planner runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"strategy"},
		),
		simulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "simulations_total",
				Help:      "Total number of simulation runs",
			},
			[]string{"strategy", "goal_met"},
		),
		timesteps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "simulation_timesteps",
				Help:      "Ticks taken per simulation run",
				Buckets:   prometheus.LinearBuckets(0, 20, 11),
			},
			[]string{"strategy"},
		),
	}

	registry.MustRegister(
		r.plans,
		r.expanded,
		r.steps,
		r.pathCost,
		r.pathLength,
		r.duration,
		r.simulations,
		r.timesteps,
	)

	return r, nil
}

// Enabled reports whether the recorder collects anything.
func (r *Recorder) Enabled() bool {
	return r != nil && r.registry != nil
}

// Registry returns the underlying registry, nil when disabled.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// PlanSample is one planner run.
type PlanSample struct {
	Strategy string
	Outcome  string
	Found    bool
	Expanded int
	Steps    int
	Cost     int
	Length   int
	Duration time.Duration
}

// RecordPlan records a planner run. Path cost and length are observed only
// for found plans.
func (r *Recorder) RecordPlan(s PlanSample) {
	if !r.Enabled() {
		return
	}
	r.plans.WithLabelValues(s.Strategy, s.Outcome).Inc()
	r.expanded.WithLabelValues(s.Strategy).Observe(float64(s.Expanded))
	r.steps.WithLabelValues(s.Strategy).Observe(float64(s.Steps))
	r.duration.WithLabelValues(s.Strategy).Observe(s.Duration.Seconds())
	if s.Found {
		r.pathCost.WithLabelValues(s.Strategy).Observe(float64(s.Cost))
		r.pathLength.WithLabelValues(s.Strategy).Observe(float64(s.Length))
	}
}

// RecordSimulation records a finished simulation.
func (r *Recorder) RecordSimulation(strategy string, timesteps int, goalMet bool) {
	if !r.Enabled() {
		return
	}
	met := "false"
	if goalMet {
		met = "true"
	}
	r.simulations.WithLabelValues(strategy, met).Inc()
	r.timesteps.WithLabelValues(strategy).Observe(float64(timesteps))
}

// WriteTextfile writes the registry in the text exposition format, for the
// node_exporter textfile collector. Does nothing when disabled.
func (r *Recorder) WriteTextfile(path string) error {
	if !r.Enabled() || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
