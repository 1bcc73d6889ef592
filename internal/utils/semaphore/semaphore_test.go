package semaphore

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
)

func TestSemaphore_Acquire_timeout(t *testing.T) {
	s := New(1)
	require.NoError(t, s.Acquire(context.Background(), 10*time.Millisecond))

	err := s.Acquire(context.Background(), 10*time.Millisecond)
	require.ErrorIs(t, err, serviceerrs.ErrSemaphoreTimeoutExceeded)

	s.Release()
	require.NoError(t, s.Acquire(context.Background(), 10*time.Millisecond))
	s.Release()
}

func TestSemaphore_Acquire_cancelled(t *testing.T) {
	s := New(1)
	require.NoError(t, s.Acquire(context.Background(), time.Second))
	defer s.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Acquire(ctx, time.Second)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSemaphore_boundsConcurrency(t *testing.T) {
	const limit = 3
	s := New(limit)

	var inFlight, peak atomic.Int64
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !assert.NoError(t, s.Acquire(context.Background(), time.Second)) {
				return
			}
			defer s.Release()

			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inFlight.Add(-1)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, peak.Load(), int64(limit))
}
