package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jask/signboard/internal/signage"
)

const DefaultRefreshInterval = 5 * time.Minute

// Refresher is what the Scheduler drives; *Aggregator implements it.
type Refresher interface {
	Refresh(ctx context.Context) signage.Snapshot
}

// Scheduler refreshes once at start and then on a fixed interval. At most one
// refresh runs at a time. Interval ticks that arrive while one is in flight are
// skipped; a trigger is held and runs as soon as the current refresh returns.
type Scheduler struct {
	refresher Refresher
	interval  time.Duration
	log       *zap.Logger

	mu      sync.Mutex
	running bool
	pending bool

	trigger chan struct{}
	wg      sync.WaitGroup
}

func NewScheduler(r Refresher, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		refresher: r,
		interval:  interval,
		log:       logger.Named("scheduler"),
		trigger:   make(chan struct{}, 1),
	}
}

// Run blocks until ctx is done, then waits for any in-flight refresh to return.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.wg.Wait()

	s.start(ctx, "startup", false)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.start(ctx, "interval", false)
		case <-s.trigger:
			s.start(ctx, "trigger", true)
		}
	}
}

// Trigger asks for an out-of-band refresh. It never blocks.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// InFlight reports whether a refresh is running.
func (s *Scheduler) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// start launches a refresh unless one is running. With queue set, a refused
// start is remembered and run by the current refresh's goroutine when it ends.
func (s *Scheduler) start(ctx context.Context, reason string, queue bool) bool {
	s.mu.Lock()
	if s.running {
		s.pending = s.pending || queue
		s.mu.Unlock()
		s.log.Info("refresh still in flight", zap.String("reason", reason), zap.Bool("queued", queue))
		return false
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			s.log.Debug("refresh started", zap.String("reason", reason))
			s.refresher.Refresh(ctx)
			if !s.next(ctx) {
				return
			}
			reason = "queued trigger"
		}
	}()
	return true
}

// next consumes a queued trigger, or marks the scheduler idle.
func (s *Scheduler) next(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending && ctx.Err() == nil {
		s.pending = false
		return true
	}
	s.pending = false
	s.running = false
	return false
}
