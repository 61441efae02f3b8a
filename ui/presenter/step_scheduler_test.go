package presenter

import (
	"time"

	"github.com/zoobz-io/clockz"
)

// stepScheduler delivers scheduled calls in time order while moving a fake
// clock forward. Calls run outside the clock's lock, so they may read it.
type stepScheduler struct {
	clock *clockz.FakeClock
	seq   int
	calls []*stepCall
}

type stepCall struct {
	at       time.Time
	seq      int
	fn       func()
	canceled bool
}

func newStepScheduler(c *clockz.FakeClock) *stepScheduler {
	return &stepScheduler{clock: c}
}

func (s *stepScheduler) After(d time.Duration, fn func()) func() {
	s.seq++
	call := &stepCall{at: s.clock.Now().Add(d), seq: s.seq, fn: fn}
	s.calls = append(s.calls, call)
	return func() { call.canceled = true }
}

func (s *stepScheduler) pending() int {
	n := 0
	for _, c := range s.calls {
		if !c.canceled {
			n++
		}
	}
	return n
}

func (s *stepScheduler) advance(d time.Duration) {
	end := s.clock.Now().Add(d)
	for {
		idx := -1
		for i, c := range s.calls {
			if c.canceled || c.at.After(end) {
				continue
			}
			if idx < 0 || c.at.Before(s.calls[idx].at) ||
				(c.at.Equal(s.calls[idx].at) && c.seq < s.calls[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			break
		}
		call := s.calls[idx]
		s.calls = append(s.calls[:idx], s.calls[idx+1:]...)
		if call.at.After(s.clock.Now()) {
			s.clock.SetTime(call.at)
		}
		call.fn()
	}
	if end.After(s.clock.Now()) {
		s.clock.SetTime(end)
	}
}

var _ Scheduler = (*stepScheduler)(nil)
