// Package metrics exposes solver progress as prometheus collectors on a
// private registry so that several solves in one process stay separate.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zeu5/policy-iteration/core"
)

type Metrics struct {
	registry *prometheus.Registry

	// evaluations counts policy evaluations by stop reason
	evaluations *prometheus.CounterVec
	sweeps      prometheus.Counter
	lastDelta   prometheus.Gauge

	improvements  prometheus.Counter
	policyChanges prometheus.Counter
	// improvementDelta tracks the largest value change of each improvement iteration
	improvementDelta prometheus.Histogram
}

var _ core.Observer = &Metrics{}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "polyiter_evaluations_total",
			Help: "Total policy evaluations by stop reason",
		}, []string{"reason"}),
		sweeps: factory.NewCounter(prometheus.CounterOpts{
			Name: "polyiter_evaluation_sweeps_total",
			Help: "Total Bellman sweeps over all evaluations",
		}),
		lastDelta: factory.NewGauge(prometheus.GaugeOpts{
			Name: "polyiter_evaluation_last_delta",
			Help: "Largest value change of the last sweep of the latest evaluation",
		}),
		improvements: factory.NewCounter(prometheus.CounterOpts{
			Name: "polyiter_improvement_iterations_total",
			Help: "Total improvement iterations",
		}),
		policyChanges: factory.NewCounter(prometheus.CounterOpts{
			Name: "polyiter_policy_changes_total",
			Help: "Total states whose greedy action changed during improvement",
		}),
		improvementDelta: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "polyiter_improvement_delta",
			Help:    "Largest value change per improvement iteration",
			Buckets: prometheus.ExponentialBuckets(0.0001, 10, 8), // 1e-4 to 1e3
		}),
	}
}

func (m *Metrics) ObserveEvaluation(r core.EvalResult) {
	m.evaluations.WithLabelValues(r.Reason.String()).Inc()
	m.sweeps.Add(float64(r.Sweeps))
	m.lastDelta.Set(r.MaxDelta)
}

func (m *Metrics) ObserveImprovement(s core.ImprovementStep) {
	m.improvements.Inc()
	m.policyChanges.Add(float64(s.PolicyChanges))
	m.improvementDelta.Observe(s.MaxDelta)
}

// WriteToTextfile writes the current values in the text exposition format.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
