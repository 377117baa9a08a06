package metrics

import "github.com/prometheus/client_golang/prometheus"

// SyncMetrics counts background cart pushes from the client.
type SyncMetrics struct {
	pushes   prometheus.Counter
	failures prometheus.Counter
}

// NewSyncMetrics registers the sync engine counters.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	pushes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_sync_pushes_total",
		Help: "Background cart pushes attempted.",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_sync_push_failures_total",
		Help: "Background cart pushes that failed (swallowed, never retried).",
	})
	reg.MustRegister(pushes, failures)
	return &SyncMetrics{pushes: pushes, failures: failures}
}

func (m *SyncMetrics) IncPush() {
	if m == nil || m.pushes == nil {
		return
	}
	m.pushes.Inc()
}

func (m *SyncMetrics) IncFailure() {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.Inc()
}
