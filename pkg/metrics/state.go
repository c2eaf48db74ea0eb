package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Load outcomes recorded by StateMetrics.
const (
	OutcomeStored   = "stored"
	OutcomeDefault  = "default"
	OutcomeFallback = "fallback"
)

// StateMetrics records persistence activity of the storefront stores.
type StateMetrics struct {
	loads        *prometheus.CounterVec
	saves        *prometheus.CounterVec
	saveFailures *prometheus.CounterVec
}

// NewStateMetrics registers the state metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewStateMetrics(reg prometheus.Registerer) *StateMetrics {
	if reg == nil {
		return &StateMetrics{}
	}
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_state_loads_total",
		Help: "Store loads from the storage backend by outcome.",
	}, []string{"key", "outcome"})
	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_state_saves_total",
		Help: "Successful store writes to the storage backend.",
	}, []string{"key"})
	saveFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_state_save_failures_total",
		Help: "Failed store writes to the storage backend.",
	}, []string{"key"})
	reg.MustRegister(loads, saves, saveFailures)
	return &StateMetrics{
		loads:        loads,
		saves:        saves,
		saveFailures: saveFailures,
	}
}

// IncLoad counts a load of key with the given outcome.
func (m *StateMetrics) IncLoad(key, outcome string) {
	if m == nil || m.loads == nil {
		return
	}
	m.loads.WithLabelValues(normalizeLabel(key), normalizeLabel(outcome)).Inc()
}

// IncSave counts a successful save of key.
func (m *StateMetrics) IncSave(key string) {
	if m == nil || m.saves == nil {
		return
	}
	m.saves.WithLabelValues(normalizeLabel(key)).Inc()
}

// IncSaveFailure counts a failed save of key.
func (m *StateMetrics) IncSaveFailure(key string) {
	if m == nil || m.saveFailures == nil {
		return
	}
	m.saveFailures.WithLabelValues(normalizeLabel(key)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
