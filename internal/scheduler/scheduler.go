// Package scheduler runs periodic and delayed callbacks. The real
// implementation uses wall-clock timers; Manual fires callbacks only when
// its clock is advanced, for tests and replays.
package scheduler

//go:generate mockgen -destination=mock/mock.go -package=schedulermock github.com/KirkDiggler/cultivation-sim/internal/scheduler Scheduler,Handle

import (
	"sync"
	"time"
)

// Handle cancels a scheduled callback
type Handle interface {
	// Stop cancels future firings. It reports whether the callback was
	// still pending; false means it had already been stopped or, for a
	// one-shot, had already fired.
	Stop() bool
}

// Scheduler schedules callbacks
type Scheduler interface {
	// Every runs fn each interval until stopped
	Every(interval time.Duration, fn func()) Handle
	// After runs fn once after delay unless stopped first
	After(delay time.Duration, fn func()) Handle
}

// Real schedules on the system clock
type Real struct{}

// New returns a wall-clock scheduler
func New() *Real {
	return &Real{}
}

type tickerHandle struct {
	once   sync.Once
	stopCh chan struct{}
}

func (h *tickerHandle) Stop() bool {
	stopped := false
	h.once.Do(func() {
		close(h.stopCh)
		stopped = true
	})
	return stopped
}

// Every implements Scheduler. Ticks are delivered on a dedicated goroutine,
// one at a time.
func (r *Real) Every(interval time.Duration, fn func()) Handle {
	h := &tickerHandle{stopCh: make(chan struct{})}
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.stopCh:
				return
			case <-ticker.C:
				// a stop racing the tick wins
				select {
				case <-h.stopCh:
					return
				default:
				}
				fn()
			}
		}
	}()

	return h
}

type timerHandle struct {
	timer *time.Timer
}

func (h *timerHandle) Stop() bool {
	return h.timer.Stop()
}

// After implements Scheduler
func (r *Real) After(delay time.Duration, fn func()) Handle {
	return &timerHandle{timer: time.AfterFunc(delay, fn)}
}
