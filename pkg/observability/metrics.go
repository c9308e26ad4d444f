package observability

import (
	"context"

	"github.com/aretw0/serology/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by engine lifecycle events.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Conclusions *prometheus.CounterVec
	Depth       prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serology_transitions_total",
				Help: "Total number of committed navigation operations",
			},
			[]string{"type"},
		),
		Conclusions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serology_conclusions_total",
				Help: "Total number of conclusions reached, by conclusion text",
			},
			[]string{"conclusion"},
		),
		Depth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "serology_conclusion_depth",
				Help:    "Number of answered questions when a conclusion is reached",
				Buckets: prometheus.LinearBuckets(1, 1, 8),
			},
		),
	}
	for _, c := range []prometheus.Collector{m.Transitions, m.Conclusions, m.Depth} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	count := func(_ context.Context, e *domain.TransitionEvent) {
		m.Transitions.WithLabelValues(string(e.Type)).Inc()
	}
	return domain.LifecycleHooks{
		OnAdvance: count,
		OnRetreat: count,
		OnReset:   count,
		OnConclude: func(_ context.Context, e *domain.ConclusionEvent) {
			m.Conclusions.WithLabelValues(e.Text).Inc()
			m.Depth.Observe(float64(e.Depth))
		},
	}
}
