// Package alarm delivers the one-shot notification that marks the end of a
// countdown.
package alarm

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zoobz-io/clockz"

	"github.com/soocke/countdown-go/domain/countdown"
)

// Alert describes a fired alarm.
type Alert struct {
	ID      string
	Title   string
	SoundID *int
	Due     time.Time // when the alarm was set to go off
}

// Notifier presents a fired alarm to the user.
type Notifier interface {
	Notify(Alert)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Alert)

func (f NotifierFunc) Notify(a Alert) { f(a) }

type pending struct {
	token uuid.UUID
	timer clockz.Timer
}

// Scheduler keeps at most one pending alarm per id. Scheduling an id that is
// already pending replaces it; a fire whose token is no longer current is
// dropped, so a cancel racing with delivery never notifies.
type Scheduler struct {
	clock    clockz.Clock
	notifier Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[string]pending
}

// NewScheduler returns a scheduler firing on c.
func NewScheduler(c clockz.Clock, notifier Notifier, logger *slog.Logger) *Scheduler {
	if c == nil {
		c = clockz.RealClock
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{clock: c, notifier: notifier, logger: logger, pending: make(map[string]pending)}
}

// Schedule arranges for an alert after fireIn. Non-positive delays fire on
// the next clock callback.
func (s *Scheduler) Schedule(id string, fireIn time.Duration, title string, soundID *int) {
	if fireIn < 0 {
		fireIn = 0
	}
	var sound *int
	if soundID != nil {
		v := *soundID
		sound = &v
	}
	token := uuid.New()
	due := s.clock.Now().Add(fireIn)

	s.mu.Lock()
	if p, ok := s.pending[id]; ok {
		p.timer.Stop()
	}
	s.pending[id] = pending{
		token: token,
		timer: s.clock.AfterFunc(fireIn, func() { s.fire(id, token, title, sound, due) }),
	}
	s.mu.Unlock()
	s.logger.Debug("alarm scheduled", "id", id, "in", fireIn, "token", token.String())
}

// Cancel drops the pending alarm for id, if any.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	p, ok := s.pending[id]
	if ok {
		p.timer.Stop()
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if ok {
		s.logger.Debug("alarm canceled", "id", id, "token", p.token.String())
	}
}

// Pending reports whether id has an alarm waiting.
func (s *Scheduler) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}

// fire runs on the clock's callback. It must not call back into the clock:
// clockz.FakeClock invokes callbacks while holding its lock.
func (s *Scheduler) fire(id string, token uuid.UUID, title string, sound *int, due time.Time) {
	s.mu.Lock()
	p, ok := s.pending[id]
	if !ok || p.token != token {
		s.mu.Unlock()
		s.logger.Debug("stale alarm dropped", "id", id, "token", token.String())
		return
	}
	delete(s.pending, id)
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("alarm notifier panic", "error", r, "stack", string(debug.Stack()))
		}
	}()
	s.logger.Info("alarm fired", "id", id, "title", title)
	if s.notifier != nil {
		s.notifier.Notify(Alert{ID: id, Title: title, SoundID: sound, Due: due})
	}
}

var _ countdown.AlarmScheduler = (*Scheduler)(nil)
