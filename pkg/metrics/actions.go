package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ActionMetrics records outcomes of dispatched storefront actions.
type ActionMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewActionMetrics registers the dispatcher metrics on the provided registerer.
func NewActionMetrics(reg prometheus.Registerer) *ActionMetrics {
	if reg == nil {
		return &ActionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "action_duration_seconds",
		Help:    "Duration of storefront actions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "action_outcomes_total",
		Help: "Storefront action results by outcome.",
	}, []string{"action", "outcome"})
	reg.MustRegister(duration, outcomes)
	return &ActionMetrics{duration: duration, outcomes: outcomes}
}

// ObserveDuration records the time one action took.
func (m *ActionMetrics) ObserveDuration(action string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(action)).Observe(duration.Seconds())
}

// IncOutcome counts an action result ("ok" or "error").
func (m *ActionMetrics) IncOutcome(action, outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(action), outcome).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
