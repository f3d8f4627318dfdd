package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAllocatorMetrics(reg)

	m.ObserveOperation("book", OutcomeOK)
	m.ObserveOperation("book", OutcomeOK)
	m.ObserveOperation("book", OutcomeSlotUnavailable)
	m.ObserveLockWait(3 * time.Millisecond)
	m.SetPendingIntents(2)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]float64)
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				labels := ""
				for _, lp := range metric.GetLabel() {
					labels += lp.GetValue() + "/"
				}
				byName[mf.GetName()+":"+labels] = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				byName[mf.GetName()] = float64(metric.GetHistogram().GetSampleCount())
			case metric.GetGauge() != nil:
				byName[mf.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, 2.0, byName["scheduler_allocator_operations_total:book/ok/"])
	assert.Equal(t, 1.0, byName["scheduler_allocator_operations_total:book/slot_unavailable/"])
	assert.Equal(t, 1.0, byName["scheduler_allocator_lock_wait_seconds"])
	assert.Equal(t, 2.0, byName["scheduler_allocator_pending_intents"])
}

func TestAllocatorMetricsNilSafe(t *testing.T) {
	var m *AllocatorMetrics
	m.ObserveOperation("cancel", OutcomeOK)
	m.ObserveLockWait(time.Second)
	m.SetPendingIntents(1)
}
