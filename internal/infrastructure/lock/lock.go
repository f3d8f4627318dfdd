// Package lock provides the exclusive section that serializes every
// booking-affecting operation.
package lock

import "context"

// Locker runs fn while holding the section. The section is not re-entrant:
// fn must not call WithLock on the same Locker.
type Locker interface {
	WithLock(ctx context.Context, fn func(ctx context.Context) error) error
}

type localLocker struct {
	sem chan struct{}
}

// NewLocalLocker returns an in-process section. Waiters block until the
// holder returns or their context is done.
func NewLocalLocker() Locker {
	return &localLocker{sem: make(chan struct{}, 1)}
}

func (l *localLocker) WithLock(ctx context.Context, fn func(ctx context.Context) error) error {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.sem }()

	return fn(ctx)
}
