package presenter

import (
	"testing"
	"time"

	"github.com/zoobz-io/clockz"
)

var t0 = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func TestTickController_TicksAtCadence(t *testing.T) {
	c := clockz.NewFakeClockAt(t0)
	s := newStepScheduler(c)
	var ticks []time.Time
	tc := NewTickController(s, 100*time.Millisecond, c.Now, func(now time.Time) {
		ticks = append(ticks, now)
	})
	tc.Start()
	s.advance(time.Second)
	if len(ticks) != 10 {
		t.Fatalf("expected 10 ticks in 1s, got %d", len(ticks))
	}
	if !ticks[0].Equal(t0.Add(100 * time.Millisecond)) {
		t.Fatalf("first tick at %v", ticks[0])
	}
	tc.Stop()
	s.advance(time.Second)
	if len(ticks) != 10 {
		t.Fatalf("ticked after stop: %d", len(ticks))
	}
	if tc.Active() || s.pending() != 0 {
		t.Fatalf("stop should leave nothing scheduled: active=%v pending=%d", tc.Active(), s.pending())
	}
}

func TestTickController_RestartKeepsSingleChain(t *testing.T) {
	c := clockz.NewFakeClockAt(t0)
	s := newStepScheduler(c)
	n := 0
	tc := NewTickController(s, 100*time.Millisecond, c.Now, func(time.Time) { n++ })
	for i := 0; i < 5; i++ {
		tc.Start()
	}
	if s.pending() != 1 {
		t.Fatalf("expected one scheduled call, got %d", s.pending())
	}
	s.advance(500 * time.Millisecond)
	if n != 5 {
		t.Fatalf("duplicate chains would tick more than 5 times, got %d", n)
	}
}

func TestTickController_StopFromCallback(t *testing.T) {
	c := clockz.NewFakeClockAt(t0)
	s := newStepScheduler(c)
	var tc *TickController
	n := 0
	tc = NewTickController(s, 100*time.Millisecond, c.Now, func(time.Time) {
		n++
		if n == 3 {
			tc.Stop()
		}
	})
	tc.Start()
	s.advance(time.Second)
	if n != 3 || tc.Active() {
		t.Fatalf("expected ticking to stop after 3, got n=%d active=%v", n, tc.Active())
	}
}

func TestClockScheduler_FiresAndCancels(t *testing.T) {
	c := clockz.NewFakeClockAt(t0)
	s := ClockScheduler{Clock: c}
	fired, canceled := 0, 0
	s.After(time.Second, func() { fired++ })
	cancel := s.After(time.Second, func() { canceled++ })
	cancel()
	c.Advance(999 * time.Millisecond)
	if fired != 0 {
		t.Fatal("fired early")
	}
	c.Advance(time.Millisecond)
	if fired != 1 || canceled != 0 {
		t.Fatalf("fired=%d canceled=%d", fired, canceled)
	}
}

// A cancel that loses the race with delivery must not run the callback.
type manualScheduler struct{ fns []func() }

func (m *manualScheduler) After(_ time.Duration, fn func()) func() {
	m.fns = append(m.fns, fn)
	return func() {}
}

func TestTickController_StaleCallbackIgnored(t *testing.T) {
	s := &manualScheduler{}
	n := 0
	tc := NewTickController(s, time.Millisecond, nil, func(time.Time) { n++ })
	tc.Start()
	tc.Start()
	s.fns[0]()
	if n != 0 {
		t.Fatal("callback from the replaced chain ran")
	}
	s.fns[1]()
	if n != 1 {
		t.Fatalf("current chain should tick once, got %d", n)
	}
	tc.Stop()
	s.fns[2]()
	if n != 1 {
		t.Fatal("callback after stop ran")
	}
}
