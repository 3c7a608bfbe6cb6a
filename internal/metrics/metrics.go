// Package metrics holds the prometheus collectors for the fallback chain.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "translay"

// Metrics counts which stage served each translation and how often each provider failed.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	stages   *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translate_stage_total",
			Help:      "Translations served, by the stage that produced the result.",
		}, []string{"stage"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_failures_total",
			Help:      "Failed provider attempts, by provider.",
		}, []string{"provider"}),
	}

	for _, c := range []prometheus.Collector{m.stages, m.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) StageServed(stage string) {
	if m == nil {
		return
	}
	m.stages.WithLabelValues(stage).Inc()
}

func (m *Metrics) ProviderFailed(provider string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(provider).Inc()
}

// Stages exposes the stage counter for tests and custom exporters.
func (m *Metrics) Stages() *prometheus.CounterVec { return m.stages }

// Failures exposes the provider failure counter.
func (m *Metrics) Failures() *prometheus.CounterVec { return m.failures }
