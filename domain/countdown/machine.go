package countdown

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/zoobz-io/clockz"
)

// AlarmID identifies the single timer's alarm with the alarm bridge.
const AlarmID = "countdown.timer"

const (
	DefaultExpiryGrace = 500 * time.Millisecond
	DefaultMinDuration = 100 * time.Millisecond
	DefaultAlarmTitle  = "Timer Done"
)

// AlarmScheduler schedules a one-shot notification. Calls are idempotent and
// last-write-wins per id.
type AlarmScheduler interface {
	Schedule(id string, fireIn time.Duration, title string, soundID *int)
	Cancel(id string)
}

// Listener is called after every state mutation with the snapshots taken
// before and after it.
type Listener func(prev, next Snapshot)

// Option configures a Machine.
type Option func(*Machine)

func WithClock(c clockz.Clock) Option { return func(m *Machine) { m.clock = c } }

func WithAlarm(a AlarmScheduler) Option { return func(m *Machine) { m.alarm = a } }

func WithLogger(l *slog.Logger) Option { return func(m *Machine) { m.logger = l } }

// WithExpiryGrace sets how far past zero a non-forced tick may observe before
// the timer expires.
func WithExpiryGrace(d time.Duration) Option { return func(m *Machine) { m.grace = d } }

// WithMinDuration sets the shortest configured duration that can be started.
func WithMinDuration(d time.Duration) Option { return func(m *Machine) { m.minDuration = d } }

func WithAlarmTitle(title string) Option { return func(m *Machine) { m.title = title } }

// WithStrictTransitions makes invalid transitions panic instead of returning
// ErrInvalidTransition. Meant for development builds.
func WithStrictTransitions(strict bool) Option { return func(m *Machine) { m.strict = strict } }

// Machine owns the timer state and its transition rules.
//
// Mutations are serialized by an internal mutex; listeners run after the lock
// is released, in registration order, on the goroutine that made the call.
type Machine struct {
	mu          sync.Mutex
	state       State
	configured  time.Duration
	sound       *int
	derived     Derived
	clock       clockz.Clock
	alarm       AlarmScheduler
	logger      *slog.Logger
	grace       time.Duration
	minDuration time.Duration
	title       string
	strict      bool
	listeners   []Listener
}

// NewMachine restores a machine from rec.
func NewMachine(rec Record, opts ...Option) *Machine {
	m := &Machine{
		clock:       clockz.RealClock,
		alarm:       noopAlarm{},
		logger:      slog.New(slog.DiscardHandler),
		grace:       DefaultExpiryGrace,
		minDuration: DefaultMinDuration,
		title:       DefaultAlarmTitle,
	}
	for _, o := range opts {
		o(m)
	}
	if rec.ConfiguredDuration < 0 {
		rec.ConfiguredDuration = 0
	}
	m.state = rec.State()
	m.configured = rec.ConfiguredDuration
	m.sound = copyInt(rec.SoundID)
	m.derived = Compute(m.clock.Now(), m.state, m.configured)
	return m
}

// AddListener registers l for all subsequent mutations.
func (m *Machine) AddListener(l Listener) {
	if l == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

// Start begins a run of the configured duration.
func (m *Machine) Start() error {
	return m.mutate("start", func(now time.Time) error {
		if _, ok := m.state.(Stopped); !ok {
			return m.invalidLocked("start")
		}
		if m.configured < m.minDuration {
			return fmt.Errorf("start with %v: %w", m.configured, ErrDurationTooShort)
		}
		due := now.Add(m.configured)
		m.state = Running{Due: due}
		m.derived = Derived{Remaining: m.configured, Fraction: 1.0}
		m.alarm.Schedule(AlarmID, due.Sub(now), m.title, copyInt(m.sound))
		return nil
	})
}

// Pause freezes the countdown at now.
func (m *Machine) Pause() error {
	return m.mutate("pause", func(now time.Time) error {
		r, ok := m.state.(Running)
		if !ok {
			return m.invalidLocked("pause")
		}
		m.state = Paused{Due: r.Due, Anchor: now}
		m.derived = Compute(now, m.state, m.configured)
		m.alarm.Cancel(AlarmID)
		return nil
	})
}

// Resume shifts the due time forward by exactly the paused interval. A paused
// state missing either anchor is reset instead.
func (m *Machine) Resume() error {
	return m.mutate("resume", func(now time.Time) error {
		p, ok := m.state.(Paused)
		if !ok {
			return m.invalidLocked("resume")
		}
		if p.Due.IsZero() || p.Anchor.IsZero() {
			m.logger.Warn("inconsistent paused state, resetting", "due", p.Due, "anchor", p.Anchor)
			m.resetLocked()
			return nil
		}
		due := p.Due.Add(now.Sub(p.Anchor))
		m.state = Running{Due: due}
		m.derived = Compute(now, m.state, m.configured)
		m.alarm.Schedule(AlarmID, due.Sub(now), m.title, copyInt(m.sound))
		return nil
	})
}

// Reset stops a running or paused timer.
func (m *Machine) Reset() error {
	return m.mutate("reset", func(time.Time) error {
		if _, ok := m.state.(Stopped); ok {
			return m.invalidLocked("reset")
		}
		m.resetLocked()
		return nil
	})
}

// SetConfiguredDuration sets the duration used by the next Start.
func (m *Machine) SetConfiguredDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("configure %v: %w", d, ErrNegativeDuration)
	}
	return m.mutate("configure", func(time.Time) error {
		if d == m.configured {
			return errUnchanged
		}
		m.configured = d
		return nil
	})
}

// SetSoundID selects the alarm sound; nil selects the default. It takes
// effect the next time the alarm is scheduled.
func (m *Machine) SetSoundID(id *int) {
	_ = m.mutate("sound", func(time.Time) error {
		if equalInt(m.sound, id) {
			return errUnchanged
		}
		m.sound = copyInt(id)
		return nil
	})
}

// TickUpdate recomputes the derived values at now. Unless forced, a remaining
// time at or below minus the expiry grace resets the timer.
func (m *Machine) TickUpdate(now time.Time, forced bool) Derived {
	m.mu.Lock()
	d := Compute(now, m.state, m.configured)
	if forced || m.state.Status() == StatusStopped || d.Remaining > -m.grace {
		m.derived = d
		m.mu.Unlock()
		return d
	}
	prev := m.snapshotLocked()
	m.resetLocked()
	next := m.snapshotLocked()
	next.Expired = true
	listeners := m.listeners
	m.mu.Unlock()

	m.logger.Info("timer expired", "overdue", -d.Remaining)
	m.logTransition(prev, next)
	for _, l := range listeners {
		l(prev, next)
	}
	return next.Derived
}

// RearmAlarm schedules the alarm for a running timer restored from storage,
// which has no pending alarm yet. Runs already past the expiry grace are left
// for the next tick to expire.
func (m *Machine) RearmAlarm() {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.state.(Running)
	if !ok {
		return
	}
	in := r.Due.Sub(m.clock.Now())
	if in <= -m.grace {
		return
	}
	m.alarm.Schedule(AlarmID, in, m.title, copyInt(m.sound))
}

// Snapshot returns the current state with the last computed derived values.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Record returns the durable form of the current state.
func (m *Machine) Record() Record { return m.Snapshot().Record() }

// Status returns the current status.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Status()
}

// CanStart reports whether Start would succeed now.
func (m *Machine) CanStart() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, stopped := m.state.(Stopped)
	return stopped && m.configured >= m.minDuration
}

// MinDuration returns the shortest startable duration.
func (m *Machine) MinDuration() time.Duration { return m.minDuration }

// errUnchanged short-circuits mutate without notifying listeners.
var errUnchanged = errors.New("unchanged")

type invalidTransition struct{ err error }

func (m *Machine) invalidLocked(op string) error {
	return invalidTransition{err: fmt.Errorf("%s from %s: %w", op, m.state.Status(), ErrInvalidTransition)}
}

func (e invalidTransition) Error() string { return e.err.Error() }
func (e invalidTransition) Unwrap() error { return e.err }

func (m *Machine) mutate(op string, fn func(now time.Time) error) error {
	m.mu.Lock()
	prev := m.snapshotLocked()
	err := fn(m.clock.Now())
	if err != nil {
		m.mu.Unlock()
		if errors.Is(err, errUnchanged) {
			return nil
		}
		var it invalidTransition
		if errors.As(err, &it) {
			if m.strict {
				panic(it.err)
			}
			m.logger.Error("rejected timer operation", "op", op, "error", it.err)
			return it.err
		}
		return err
	}
	next := m.snapshotLocked()
	listeners := m.listeners
	m.mu.Unlock()

	m.logTransition(prev, next)
	for _, l := range listeners {
		l(prev, next)
	}
	return nil
}

func (m *Machine) resetLocked() {
	m.state = Stopped{}
	m.derived = stoppedDerived
	m.alarm.Cancel(AlarmID)
}

func (m *Machine) snapshotLocked() Snapshot {
	return Snapshot{State: m.state, Configured: m.configured, SoundID: copyInt(m.sound), Derived: m.derived}
}

func (m *Machine) logTransition(prev, next Snapshot) {
	if prev.Status() == next.Status() {
		return
	}
	m.logger.Debug("timer state transition", "from", prev.Status().String(), "to", next.Status().String())
}

type noopAlarm struct{}

func (noopAlarm) Schedule(string, time.Duration, string, *int) {}
func (noopAlarm) Cancel(string)                                {}
