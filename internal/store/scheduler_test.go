package store

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/idilsaglam/sorter/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingTicker struct {
	n     atomic.Int64
	panic bool
}

func (c *countingTicker) Tick() model.Snapshot {
	if c.n.Add(1) == 1 && c.panic {
		panic("boom")
	}
	return model.Snapshot{}
}

func TestSchedulerDrivesStore(t *testing.T) {
	s := newStore(t, apple, carrot)
	_, err := s.Add(apple)
	require.NoError(t, err)

	sched := NewScheduler(s, 5*time.Millisecond, nil)
	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	require.Eventually(t, func() bool {
		return len(s.Snapshot().Fruits) == 0
	}, 2*time.Second, 5*time.Millisecond, "apple should expire after %d ticks", DefaultTTL)

	assert.Equal(t, []model.Item{carrot, apple}, s.Snapshot().Main)
	assert.GreaterOrEqual(t, sched.Ticks(), uint64(DefaultTTL))
}

func TestSchedulerStopHaltsTicks(t *testing.T) {
	ticker := &countingTicker{}
	sched := NewScheduler(ticker, 2*time.Millisecond, nil)
	require.NoError(t, sched.Start(context.Background()))
	require.Error(t, sched.Start(context.Background()), "second start must fail")

	require.Eventually(t, func() bool { return ticker.n.Load() >= 2 }, time.Second, time.Millisecond)
	sched.Stop()
	stoppedAt := ticker.n.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stoppedAt, ticker.n.Load(), "no ticks after Stop")

	sched.Stop() // idempotent
	require.NoError(t, sched.Start(context.Background()), "restart after stop")
	sched.Stop()
}

func TestSchedulerContextCancel(t *testing.T) {
	ticker := &countingTicker{}
	ctx, cancel := context.WithCancel(context.Background())
	sched := NewScheduler(ticker, time.Millisecond, nil)
	require.NoError(t, sched.Start(ctx))

	cancel()
	done := make(chan struct{})
	go func() {
		sched.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not exit on context cancel")
	}
	sched.Stop()
}

func TestSchedulerRecoversPanics(t *testing.T) {
	ticker := &countingTicker{panic: true}
	sched := NewScheduler(ticker, time.Millisecond, nil)
	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	require.Eventually(t, func() bool { return ticker.n.Load() >= 3 }, time.Second, time.Millisecond)
	assert.Less(t, sched.Ticks(), uint64(ticker.n.Load()), "panicking tick is not counted")
}

func TestNewSchedulerDefaults(t *testing.T) {
	sched := NewScheduler(&countingTicker{}, 0, nil)
	assert.Equal(t, DefaultTickInterval, sched.Interval())
}
