package syncer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is the polling period used when none is configured.
const DefaultInterval = 60 * time.Second

// Scheduler runs a Syncer on a fixed interval. A tick that fires while a
// cycle is still in flight is skipped.
type Scheduler struct {
	syncer   *Syncer
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a stopped Scheduler.
func NewScheduler(s *Syncer, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{syncer: s, interval: interval, logger: logger}
}

// Interval returns the polling period.
func (sc *Scheduler) Interval() time.Duration {
	return sc.interval
}

// Start begins polling in a background goroutine. Calling Start on a running
// scheduler does nothing.
func (sc *Scheduler) Start(ctx context.Context) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	sc.cancel = cancel
	sc.done = make(chan struct{})

	go sc.loop(ctx, sc.done)
	sc.logger.Debug("scheduler started", zap.Duration("interval", sc.interval))
}

// Stop cancels polling, including any cycle the timer started, and waits for
// the loop to exit.
func (sc *Scheduler) Stop() {
	sc.mu.Lock()
	cancel, done := sc.cancel, sc.done
	sc.cancel, sc.done = nil, nil
	sc.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	sc.logger.Debug("scheduler stopped")
}

func (sc *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(sc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if sc.syncer.InFlight() {
				sc.logger.Debug("sync tick skipped, cycle in flight")
				continue
			}
			// Errors are reported through the notifier.
			_, _ = sc.syncer.Run(ctx, TriggerTimer)
		}
	}
}
