package scheduler_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cultivation-sim/internal/pkg/clock"
	"github.com/KirkDiggler/cultivation-sim/internal/scheduler"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type ManualTestSuite struct {
	suite.Suite
	clock *clock.Manual
	sched *scheduler.Manual
}

func TestManualSuite(t *testing.T) {
	suite.Run(t, new(ManualTestSuite))
}

func (s *ManualTestSuite) SetupTest() {
	s.clock = clock.NewManual(epoch)
	s.sched = scheduler.NewManual(s.clock)
}

func (s *ManualTestSuite) TestEveryFiresPerInterval() {
	var fired []time.Time
	s.sched.Every(time.Second, func() { fired = append(fired, s.clock.Now()) })

	s.sched.Advance(3500 * time.Millisecond)

	s.Equal([]time.Time{
		epoch.Add(time.Second),
		epoch.Add(2 * time.Second),
		epoch.Add(3 * time.Second),
	}, fired)
	s.Equal(epoch.Add(3500*time.Millisecond), s.clock.Now())
}

func (s *ManualTestSuite) TestAfterFiresOnce() {
	count := 0
	h := s.sched.After(10*time.Second, func() { count++ })

	s.sched.Advance(9 * time.Second)
	s.Zero(count)

	s.sched.Advance(time.Second)
	s.Equal(1, count)

	s.sched.Advance(time.Minute)
	s.Equal(1, count)
	s.False(h.Stop())
	s.Zero(s.sched.Pending())
}

func (s *ManualTestSuite) TestStopCancels() {
	count := 0
	h := s.sched.Every(time.Second, func() { count++ })

	s.sched.Advance(2 * time.Second)
	s.True(h.Stop())
	s.False(h.Stop())
	s.sched.Advance(5 * time.Second)

	s.Equal(2, count)
}

func (s *ManualTestSuite) TestInterleavedOrder() {
	var order []string
	s.sched.Every(3*time.Second, func() { order = append(order, "battle") })
	s.sched.Every(time.Second, func() { order = append(order, "meditate") })

	s.sched.Advance(3 * time.Second)

	s.Equal([]string{"meditate", "meditate", "battle", "meditate"}, order)
}

func (s *ManualTestSuite) TestCallbackCanScheduleAndStop() {
	var revived bool
	var ticker scheduler.Handle
	ticks := 0
	ticker = s.sched.Every(time.Second, func() {
		ticks++
		if ticks == 2 {
			ticker.Stop()
			s.sched.After(time.Second, func() { revived = true })
		}
	})

	s.sched.Advance(5 * time.Second)

	s.Equal(2, ticks)
	s.True(revived)
}

type RealTestSuite struct {
	suite.Suite
}

func TestRealSuite(t *testing.T) {
	suite.Run(t, new(RealTestSuite))
}

func (s *RealTestSuite) TestAfterFires() {
	done := make(chan struct{})
	scheduler.New().After(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("callback did not fire")
	}
}

func (s *RealTestSuite) TestAfterStopped() {
	var fired atomic.Bool
	h := scheduler.New().After(50*time.Millisecond, func() { fired.Store(true) })

	s.True(h.Stop())
	time.Sleep(100 * time.Millisecond)
	s.False(fired.Load())
}

func (s *RealTestSuite) TestEveryStops() {
	var ticks atomic.Int32
	h := scheduler.New().Every(2*time.Millisecond, func() { ticks.Add(1) })

	s.Eventually(func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	s.True(h.Stop())
	s.False(h.Stop())

	time.Sleep(10 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	s.Equal(after, ticks.Load())
}
