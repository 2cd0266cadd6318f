package thread

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Limiter bounds how many spawned contexts may run at once. Spawn uses
// the non-blocking TryAcquire path and reports exhaustion as ErrLimit;
// Group blocks in Acquire until a slot frees or its context ends.
type Limiter interface {
	Acquire(ctx context.Context) error
	TryAcquire() bool
	Release()
}

type semLimiter struct {
	sem *semaphore.Weighted
}

// NewLimiter returns a Limiter admitting at most n concurrent contexts,
// or nil when n <= 0.
func NewLimiter(n int) Limiter {
	if n <= 0 {
		return nil
	}
	return &semLimiter{sem: semaphore.NewWeighted(int64(n))}
}

func (l *semLimiter) Acquire(ctx context.Context) error { return l.sem.Acquire(ctx, 1) }

func (l *semLimiter) TryAcquire() bool { return l.sem.TryAcquire(1) }

func (l *semLimiter) Release() { l.sem.Release(1) }
