package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation outcomes used as the "outcome" label
const (
	OutcomeOK              = "ok"
	OutcomeNoop            = "noop"
	OutcomeValidation      = "validation_error"
	OutcomeNotFound        = "not_found"
	OutcomeSlotUnavailable = "slot_unavailable"
	OutcomeStorage         = "storage_error"
	OutcomeError           = "error"
)

// AllocatorMetrics exposes counters/histograms for allocator operations.
type AllocatorMetrics struct {
	operationsTotal *prometheus.CounterVec
	lockWait        prometheus.Histogram
	pendingIntents  prometheus.Gauge
}

func NewAllocatorMetrics(reg prometheus.Registerer) *AllocatorMetrics {
	m := &AllocatorMetrics{
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "allocator",
			Name:      "operations_total",
			Help:      "Total allocator operations by outcome",
		}, []string{"operation", "outcome"}),
		lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Subsystem: "allocator",
			Name:      "lock_wait_seconds",
			Help:      "Time spent waiting to enter the allocator section",
			Buckets:   prometheus.DefBuckets,
		}),
		pendingIntents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "scheduler",
			Subsystem: "allocator",
			Name:      "pending_intents",
			Help:      "Intents found at the last reconciliation",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.operationsTotal, m.lockWait, m.pendingIntents)
	return m
}

func (m *AllocatorMetrics) ObserveOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *AllocatorMetrics) ObserveLockWait(d time.Duration) {
	if m == nil {
		return
	}
	m.lockWait.Observe(d.Seconds())
}

func (m *AllocatorMetrics) SetPendingIntents(n int) {
	if m == nil {
		return
	}
	m.pendingIntents.Set(float64(n))
}
