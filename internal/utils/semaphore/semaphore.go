package semaphore

import (
	"context"
	"fmt"
	"time"

	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
)

type Semaphore struct {
	semaCh chan struct{}
}

func New(maxRequestCount uint64) *Semaphore {
	if maxRequestCount == 0 {
		maxRequestCount = 1
	}
	return &Semaphore{
		semaCh: make(chan struct{}, maxRequestCount),
	}
}

// Acquire blocks until a slot is free, the timeout elapses or ctx is done.
func (s *Semaphore) Acquire(ctx context.Context, timeout time.Duration) error {
	select {
	case s.semaCh <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		return serviceerrs.ErrSemaphoreTimeoutExceeded
	case <-ctx.Done():
		return fmt.Errorf("semaphore acquire cancelled: %w", ctx.Err())
	case s.semaCh <- struct{}{}:
		return nil
	}
}

func (s *Semaphore) Release() {
	<-s.semaCh
}
