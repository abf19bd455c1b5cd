package app

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingPurger struct {
	calls   atomic.Int32
	maxIdle atomic.Int64
}

func (p *countingPurger) PurgeIdle(maxIdle time.Duration) int {
	p.calls.Add(1)
	p.maxIdle.Store(int64(maxIdle))
	return 1
}

func TestScheduler_AfterRunsOnce(t *testing.T) {
	s := NewScheduler(nil, 0, 0, zap.NewNop())
	defer s.Stop()

	done := make(chan struct{})
	var runs atomic.Int32
	s.After(10*time.Millisecond, "test", func(ctx context.Context) {
		runs.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("delayed task did not run")
	}
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_StopCancelsPending(t *testing.T) {
	s := NewScheduler(nil, 0, 0, zap.NewNop())

	var runs atomic.Int32
	s.After(time.Hour, "never", func(ctx context.Context) {
		runs.Add(1)
	})
	s.Stop()

	// после Stop новые задачи не принимаются
	s.After(time.Millisecond, "late", func(ctx context.Context) {
		runs.Add(1)
	})
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, int32(0), runs.Load())
}

func TestScheduler_AfterRecoversPanic(t *testing.T) {
	s := NewScheduler(nil, 0, 0, zap.NewNop())

	s.After(time.Millisecond, "panics", func(ctx context.Context) {
		panic("boom")
	})
	time.Sleep(20 * time.Millisecond)

	require.NotPanics(t, s.Stop)
}

func TestScheduler_AfterConcurrentWithStop(t *testing.T) {
	s := NewScheduler(nil, 0, 0, zap.NewNop())

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.After(0, "racing", func(ctx context.Context) {
				ran.Add(1)
			})
		}()
	}
	s.Stop()
	wg.Wait()

	// задачи, принятые после Stop, не запускаются
	before := ran.Load()
	s.After(0, "late", func(ctx context.Context) {
		ran.Add(1)
	})
	s.Stop()
	assert.Equal(t, before, ran.Load())
}

func TestScheduler_PurgesPeriodically(t *testing.T) {
	purger := &countingPurger{}
	s := NewScheduler(purger, 30*time.Minute, 5*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	require.Eventually(t, func() bool {
		return purger.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int64(30*time.Minute), purger.maxIdle.Load())
}
