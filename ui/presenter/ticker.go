package presenter

import (
	"sync"
	"time"

	"github.com/zoobz-io/clockz"
)

// Scheduler runs fn once after d on the context that owns the view. The
// returned func cancels the call if it has not run yet.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// ClockScheduler schedules on a clockz.Clock. Callbacks run on the clock's
// goroutine, so it suits headless use and tests rather than a UI toolkit
// with thread affinity. clockz.FakeClock runs callbacks while holding its
// own lock, so a callback that reads the same fake clock will block.
type ClockScheduler struct {
	Clock clockz.Clock
}

func (s ClockScheduler) After(d time.Duration, fn func()) func() {
	c := s.Clock
	if c == nil {
		c = clockz.RealClock
	}
	t := c.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// TickController invokes a callback at a fixed cadence until stopped.
//
// At most one chain of scheduled calls is live: Start cancels any previous
// chain before installing a new one, and a generation counter discards
// callbacks belonging to a canceled chain.
type TickController struct {
	sched    Scheduler
	interval time.Duration
	now      func() time.Time
	onTick   func(now time.Time)

	mu     sync.Mutex
	gen    uint64
	cancel func()
}

// NewTickController returns a stopped controller.
func NewTickController(sched Scheduler, interval time.Duration, now func() time.Time, onTick func(time.Time)) *TickController {
	if now == nil {
		now = time.Now
	}
	return &TickController{sched: sched, interval: interval, now: now, onTick: onTick}
}

// Start (re)starts ticking.
func (c *TickController) Start() {
	if c == nil || c.sched == nil {
		return
	}
	c.mu.Lock()
	c.stopLocked()
	c.gen++
	c.scheduleLocked(c.gen)
	c.mu.Unlock()
}

// Stop cancels ticking. Idempotent.
func (c *TickController) Stop() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.stopLocked()
	c.mu.Unlock()
}

// Active reports whether a tick chain is installed.
func (c *TickController) Active() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

func (c *TickController) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
		c.gen++
	}
}

func (c *TickController) scheduleLocked(gen uint64) {
	c.cancel = c.sched.After(c.interval, func() { c.fire(gen) })
}

func (c *TickController) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.cancel == nil {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if c.onTick != nil {
		c.onTick(c.now())
	}

	c.mu.Lock()
	if gen == c.gen && c.cancel != nil {
		c.scheduleLocked(gen)
	}
	c.mu.Unlock()
}
