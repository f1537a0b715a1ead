package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jask/signboard/internal/signage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingRefresher struct {
	calls   atomic.Int32
	running atomic.Int32
	maxRun  atomic.Int32
	hold    chan struct{}
}

func (r *countingRefresher) Refresh(ctx context.Context) signage.Snapshot {
	r.calls.Add(1)
	n := r.running.Add(1)
	defer r.running.Add(-1)
	for {
		cur := r.maxRun.Load()
		if n <= cur || r.maxRun.CompareAndSwap(cur, n) {
			break
		}
	}
	if r.hold != nil {
		select {
		case <-r.hold:
		case <-ctx.Done():
		}
	}
	return signage.Snapshot{}
}

func runScheduler(t *testing.T, s *Scheduler) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Run(ctx)
	}()
	var once sync.Once
	stop = func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
	t.Cleanup(stop)
	return stop
}

func TestSchedulerRefreshesImmediately(t *testing.T) {
	r := &countingRefresher{}
	s := NewScheduler(r, time.Hour, nil)
	runScheduler(t, s)

	require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestSchedulerRefreshesOnInterval(t *testing.T) {
	r := &countingRefresher{}
	s := NewScheduler(r, 10*time.Millisecond, nil)
	runScheduler(t, s)

	require.Eventually(t, func() bool { return r.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestSchedulerSkipsOverlappingRefreshes(t *testing.T) {
	r := &countingRefresher{hold: make(chan struct{})}
	s := NewScheduler(r, 5*time.Millisecond, nil)
	runScheduler(t, s)

	require.Eventually(t, s.InFlight, time.Second, time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	s.Trigger()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(1), r.calls.Load(), "ticks during an in-flight refresh must be skipped")

	close(r.hold)
	require.Eventually(t, func() bool { return r.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	require.Equal(t, int32(1), r.maxRun.Load())
}

func TestSchedulerTrigger(t *testing.T) {
	r := &countingRefresher{}
	s := NewScheduler(r, time.Hour, nil)
	runScheduler(t, s)

	require.Eventually(t, func() bool { return r.calls.Load() == 1 && !s.InFlight() }, time.Second, time.Millisecond)
	s.Trigger()
	require.Eventually(t, func() bool { return r.calls.Load() == 2 }, time.Second, time.Millisecond)
}

func TestSchedulerRunsTriggerHeldDuringRefresh(t *testing.T) {
	r := &countingRefresher{hold: make(chan struct{})}
	s := NewScheduler(r, time.Hour, nil)
	runScheduler(t, s)

	require.Eventually(t, s.InFlight, time.Second, time.Millisecond)
	s.Trigger()
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.pending
	}, time.Second, time.Millisecond)
	require.Equal(t, int32(1), r.calls.Load())

	close(r.hold)
	require.Eventually(t, func() bool { return r.calls.Load() == 2 && !s.InFlight() }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(2), r.calls.Load(), "one held trigger runs exactly one extra refresh")
	require.Equal(t, int32(1), r.maxRun.Load())
}

func TestSchedulerStopWaitsForInFlight(t *testing.T) {
	r := &countingRefresher{hold: make(chan struct{})}
	s := NewScheduler(r, time.Hour, nil)
	stop := runScheduler(t, s)

	require.Eventually(t, s.InFlight, time.Second, time.Millisecond)
	stop()
	require.False(t, s.InFlight())
	require.Zero(t, r.running.Load())
}

func TestNewSchedulerDefaultsInterval(t *testing.T) {
	s := NewScheduler(&countingRefresher{}, 0, nil)
	require.Equal(t, DefaultRefreshInterval, s.interval)
}
