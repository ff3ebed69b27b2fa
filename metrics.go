package snailfish

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "snailfish"

// Metrics counts reduction work.  A nil *Metrics records nothing.
type Metrics struct {
	Explodes       prometheus.Counter
	Splits         prometheus.Counter
	Reductions     prometheus.Counter
	ReduceSteps    prometheus.Histogram
	PairsEvaluated prometheus.Counter
}

// NewMetrics registers the collectors with reg.  Use a fresh registry per
// instance; registering twice on the same registry panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Explodes: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "explodes_total",
			Help:      "Pairs exploded during reduction",
		}),
		Splits: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "splits_total",
			Help:      "Leaves split during reduction",
		}),
		Reductions: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reductions_total",
			Help:      "Numbers reduced to a fixed point",
		}),
		ReduceSteps: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "reduce_steps",
			Help:      "Rewrites needed per reduction",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		PairsEvaluated: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pairs_evaluated_total",
			Help:      "Operand pairs added during the max-pair search",
		}),
	}
}

func (m *Metrics) rewrite(rule Rule) {
	if m == nil {
		return
	}

	switch rule {
	case RuleExplode:
		m.Explodes.Inc()
	case RuleSplit:
		m.Splits.Inc()
	}
}

func (m *Metrics) reduced(s Stats) {
	if m == nil {
		return
	}

	m.Reductions.Inc()
	m.ReduceSteps.Observe(float64(s.Steps()))
}

func (m *Metrics) pairEvaluated() {
	if m == nil {
		return
	}
	m.PairsEvaluated.Inc()
}
