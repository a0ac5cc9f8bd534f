package scheduler

import (
	"sync"
	"time"

	"github.com/KirkDiggler/cultivation-sim/internal/pkg/clock"
)

type task struct {
	id       uint64
	due      time.Time
	interval time.Duration
	fn       func()
	stopped  bool
}

// Manual is a Scheduler driven by a manual clock. Callbacks fire inside
// Advance, in due order, on the caller's goroutine.
type Manual struct {
	mu     sync.Mutex
	clock  *clock.Manual
	tasks  map[uint64]*task
	nextID uint64
}

// NewManual creates a manual scheduler on c
func NewManual(c *clock.Manual) *Manual {
	return &Manual{clock: c, tasks: make(map[uint64]*task)}
}

type manualHandle struct {
	m  *Manual
	id uint64
}

func (h *manualHandle) Stop() bool {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()

	t, ok := h.m.tasks[h.id]
	if !ok || t.stopped {
		return false
	}
	t.stopped = true
	delete(h.m.tasks, h.id)
	return true
}

func (m *Manual) add(delay, interval time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.tasks[m.nextID] = &task{
		id:       m.nextID,
		due:      m.clock.Now().Add(delay),
		interval: interval,
		fn:       fn,
	}
	return &manualHandle{m: m, id: m.nextID}
}

// Every implements Scheduler
func (m *Manual) Every(interval time.Duration, fn func()) Handle {
	return m.add(interval, interval, fn)
}

// After implements Scheduler
func (m *Manual) After(delay time.Duration, fn func()) Handle {
	return m.add(delay, 0, fn)
}

// Pending is the number of scheduled callbacks
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Advance moves the clock forward by d, firing every callback that falls
// due on the way. Callbacks may schedule or stop other callbacks.
func (m *Manual) Advance(d time.Duration) {
	target := m.clock.Now().Add(d)

	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.clock.Set(t.due)
		t.fn()
	}

	m.clock.Set(target)
}

// nextDue pops the earliest task due at or before target, re-arming it if
// it repeats. Ties fire in scheduling order.
func (m *Manual) nextDue(target time.Time) *task {
	m.mu.Lock()
	defer m.mu.Unlock()

	var next *task
	for _, t := range m.tasks {
		if t.due.After(target) {
			continue
		}
		if next == nil || t.due.Before(next.due) || (t.due.Equal(next.due) && t.id < next.id) {
			next = t
		}
	}
	if next == nil {
		return nil
	}

	fire := *next
	if next.interval > 0 {
		next.due = next.due.Add(next.interval)
	} else {
		delete(m.tasks, next.id)
	}
	return &fire
}
