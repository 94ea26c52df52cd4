package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/idilsaglam/sorter/internal/model"
)

// DefaultTickInterval is the countdown cadence.
const DefaultTickInterval = time.Second

// Ticker is anything that advances on a fixed cadence. *Store implements it.
type Ticker interface {
	Tick() model.Snapshot
}

// Scheduler drives a Ticker at a fixed interval from its own goroutine.
// It is owned by the caller, not by the store; Stop is the cancellation
// handle that keeps a discarded store from being ticked.
type Scheduler struct {
	target   Ticker
	interval time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
	ticks   atomic.Uint64
}

// NewScheduler creates a scheduler. A non-positive interval falls back to
// DefaultTickInterval.
func NewScheduler(target Ticker, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		target:   target,
		interval: interval,
		log:      log,
	}
}

// Interval returns the tick cadence.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Ticks returns how many ticks have completed.
func (s *Scheduler) Ticks() uint64 { return s.ticks.Load() }

// Start launches the tick loop. It returns an error if the scheduler is
// already running. The loop exits when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return fmt.Errorf("scheduler already running")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.stopped = make(chan struct{})

	go s.loop(loopCtx, s.stopped)
	s.log.Debug("scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// Stop cancels the loop and waits for it to exit. Calling Stop on a
// scheduler that is not running is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, stopped := s.cancel, s.stopped
	s.cancel, s.stopped = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
	s.log.Debug("scheduler stopped", zap.Uint64("ticks", s.Ticks()))
}

// Wait blocks until the loop exits on its own (context cancelled).
func (s *Scheduler) Wait() {
	s.mu.Lock()
	stopped := s.stopped
	s.mu.Unlock()
	if stopped != nil {
		<-stopped
	}
}

func (s *Scheduler) loop(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick runs one Tick, recovering a panic so the loop keeps its cadence.
func (s *Scheduler) tick() {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("tick panicked", zap.Any("panic", r))
		}
	}()
	s.target.Tick()
	s.ticks.Add(1)
}
