package alarm

import (
	"testing"
	"time"

	"github.com/zoobz-io/clockz"
)

var t0 = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type recorder struct{ alerts []Alert }

func (r *recorder) Notify(a Alert) { r.alerts = append(r.alerts, a) }

func TestScheduler_FiresOnce(t *testing.T) {
	c := clockz.NewFakeClockAt(t0)
	r := &recorder{}
	s := NewScheduler(c, r, nil)
	sound := 3
	s.Schedule("timer", 10*time.Second, "Done", &sound)
	sound = 4 // caller mutation must not leak into the alert

	c.Advance(9 * time.Second)
	if len(r.alerts) != 0 {
		t.Fatalf("fired early: %+v", r.alerts)
	}
	c.Advance(time.Second)
	if len(r.alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(r.alerts))
	}
	a := r.alerts[0]
	if a.ID != "timer" || a.Title != "Done" || a.SoundID == nil || *a.SoundID != 3 || !a.Due.Equal(t0.Add(10*time.Second)) {
		t.Fatalf("unexpected alert %+v", a)
	}
	if s.Pending("timer") {
		t.Fatal("fired alarm should not stay pending")
	}
	c.Advance(time.Minute)
	if len(r.alerts) != 1 {
		t.Fatalf("alarm fired more than once: %d", len(r.alerts))
	}
}

func TestScheduler_RescheduleReplaces(t *testing.T) {
	c := clockz.NewFakeClockAt(t0)
	r := &recorder{}
	s := NewScheduler(c, r, nil)
	s.Schedule("timer", 10*time.Second, "first", nil)
	s.Schedule("timer", 30*time.Second, "second", nil)

	c.Advance(20 * time.Second)
	if len(r.alerts) != 0 {
		t.Fatalf("replaced alarm fired: %+v", r.alerts)
	}
	c.Advance(10 * time.Second)
	if len(r.alerts) != 1 || r.alerts[0].Title != "second" {
		t.Fatalf("expected only the second alarm, got %+v", r.alerts)
	}
}

func TestScheduler_CancelIsIdempotent(t *testing.T) {
	c := clockz.NewFakeClockAt(t0)
	r := &recorder{}
	s := NewScheduler(c, r, nil)
	s.Cancel("timer")
	s.Schedule("timer", time.Second, "Done", nil)
	s.Cancel("timer")
	s.Cancel("timer")
	c.Advance(time.Minute)
	if len(r.alerts) != 0 {
		t.Fatalf("canceled alarm fired: %+v", r.alerts)
	}
	if s.Pending("timer") {
		t.Fatal("canceled alarm still pending")
	}
}

func TestScheduler_StaleTokenDropped(t *testing.T) {
	c := clockz.NewFakeClockAt(t0)
	r := &recorder{}
	s := NewScheduler(c, r, nil)
	s.Schedule("timer", time.Second, "Done", nil)
	// Simulate a callback that was already in flight for an older schedule.
	s.mu.Lock()
	old := s.pending["timer"].token
	s.mu.Unlock()
	s.Schedule("timer", time.Hour, "Done", nil)
	s.fire("timer", old, "Done", nil, t0)
	if len(r.alerts) != 0 {
		t.Fatalf("stale fire delivered: %+v", r.alerts)
	}
	if !s.Pending("timer") {
		t.Fatal("current alarm should still be pending")
	}
}

func TestNotifiers_FanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Notifiers{a, nil, b}.Notify(Alert{ID: "x"})
	if len(a.alerts) != 1 || len(b.alerts) != 1 {
		t.Fatalf("fan-out failed: %d %d", len(a.alerts), len(b.alerts))
	}
}
