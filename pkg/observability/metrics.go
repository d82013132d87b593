package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/ostia/pkg/domain"
)

// Metrics collects learning statistics in a Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	mergeSteps    *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
	phaseStates   *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them in a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mergeSteps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ostia_merge_steps_total",
				Help: "Merge loop steps by kind (merge_attempt, merge, rollback, promote)",
			},
			[]string{"kind"},
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ostia_phase_duration_seconds",
				Help:    "Duration of each learning phase",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"phase"},
		),
		phaseStates: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ostia_phase_states",
				Help: "Number of live states at the end of the most recent run of each phase",
			},
			[]string{"phase"},
		),
	}
	m.registry.MustRegister(m.mergeSteps, m.phaseDuration, m.phaseStates)
	return m
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that update the metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	count := func(e *domain.MergeEvent) {
		m.mergeSteps.WithLabelValues(string(e.Type)).Inc()
	}
	return domain.LifecycleHooks{
		OnPhase: func(e *domain.PhaseEvent) {
			m.phaseDuration.WithLabelValues(string(e.Phase)).Observe(e.Duration.Seconds())
			m.phaseStates.WithLabelValues(string(e.Phase)).Set(float64(e.States))
		},
		OnMergeAttempt: count,
		OnMerge:        count,
		OnRollback:     count,
		OnPromote:      count,
	}
}
