package usecase

import (
	"context"
	"time"

	"go-medical-scheduling/internal/infrastructure/lock"
	"go-medical-scheduling/internal/observability/metrics"
)

// section wraps the shared allocator lock. Every registry and the allocator
// hold the same section value, so one WithLock covers all of them.
type section struct {
	locker  lock.Locker
	metrics *metrics.AllocatorMetrics
}

func newSection(locker lock.Locker, m *metrics.AllocatorMetrics) section {
	return section{locker: locker, metrics: m}
}

func (s section) run(ctx context.Context, fn func(ctx context.Context) error) error {
	start := time.Now()
	return s.locker.WithLock(ctx, func(ctx context.Context) error {
		s.metrics.ObserveLockWait(time.Since(start))
		return fn(ctx)
	})
}

// observe counts a mutating operation under outcome; a nil error with
// noop=true counts as a no-op.
func (s section) observe(operation string, err error, noop bool) {
	outcome := outcomeOf(err)
	if err == nil && noop {
		outcome = metrics.OutcomeNoop
	}
	s.metrics.ObserveOperation(operation, outcome)
}
