package countdown

import (
	"errors"
	"fmt"
	"time"
)

// Status enumerates the life-cycle states of the timer.
type Status int

const (
	StatusStopped Status = iota
	StatusRunning
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "stopped":
		return StatusStopped, nil
	case "running":
		return StatusRunning, nil
	case "paused":
		return StatusPaused, nil
	}
	return StatusStopped, fmt.Errorf("unknown timer status %q", s)
}

var (
	// ErrInvalidTransition is returned when an operation is not valid from the
	// current status. The state is left untouched.
	ErrInvalidTransition = errors.New("invalid timer transition")
	// ErrDurationTooShort is returned by Start when the configured duration is
	// below the minimum startable duration.
	ErrDurationTooShort = errors.New("configured duration too short")
	// ErrNegativeDuration is returned when a negative duration is configured.
	ErrNegativeDuration = errors.New("negative configured duration")
)

// State is the tagged union of timer states. Each variant carries exactly the
// anchors that are meaningful for it.
type State interface {
	Status() Status
	isState()
}

// Stopped carries no anchors.
type Stopped struct{}

// Running counts down towards Due.
type Running struct {
	Due time.Time
}

// Paused froze consumption at Anchor; Due has not moved since the pause began.
type Paused struct {
	Due    time.Time
	Anchor time.Time
}

func (Stopped) Status() Status { return StatusStopped }
func (Running) Status() Status { return StatusRunning }
func (Paused) Status() Status  { return StatusPaused }

func (Stopped) isState() {}
func (Running) isState() {}
func (Paused) isState()  {}

// Derived holds the display values computed from a state at some instant.
type Derived struct {
	Remaining time.Duration
	Fraction  float64
}

// stoppedDerived is what a stopped timer reports.
var stoppedDerived = Derived{Remaining: 0, Fraction: 1.0}

// Snapshot is a consistent view of the machine after a mutation.
type Snapshot struct {
	State      State
	Configured time.Duration
	SoundID    *int
	Derived    Derived
	// Expired is set on the snapshot produced by an expiry reset.
	Expired bool
}

// Status is shorthand for s.State.Status().
func (s Snapshot) Status() Status {
	if s.State == nil {
		return StatusStopped
	}
	return s.State.Status()
}

// DueTime returns the due time when one is present.
func (s Snapshot) DueTime() (time.Time, bool) {
	switch st := s.State.(type) {
	case Running:
		return st.Due, true
	case Paused:
		return st.Due, !st.Due.IsZero()
	}
	return time.Time{}, false
}

// Record returns the durable form of the snapshot.
func (s Snapshot) Record() Record {
	return RecordOf(s.State, s.Configured, s.SoundID)
}

// Record is the flat, durable shape of the timer persisted by a Store.
type Record struct {
	Status             Status
	DueTime            *time.Time
	PauseAnchor        *time.Time
	ConfiguredDuration time.Duration
	SoundID            *int
}

// DefaultRecord is used when nothing has been stored yet.
func DefaultRecord(configured time.Duration) Record {
	return Record{Status: StatusStopped, ConfiguredDuration: configured}
}

// RecordOf flattens a state into a Record.
func RecordOf(st State, configured time.Duration, sound *int) Record {
	r := Record{ConfiguredDuration: configured, SoundID: copyInt(sound)}
	switch v := st.(type) {
	case Running:
		r.Status = StatusRunning
		r.DueTime = timePtr(v.Due)
	case Paused:
		// Zero times come from a repaired record and stay absent.
		r.Status = StatusPaused
		if !v.Due.IsZero() {
			r.DueTime = timePtr(v.Due)
		}
		if !v.Anchor.IsZero() {
			r.PauseAnchor = timePtr(v.Anchor)
		}
	default:
		r.Status = StatusStopped
	}
	return r
}

// Valid reports whether the record satisfies the status/anchor co-presence
// rules and carries a non-negative duration.
func (r Record) Valid() bool {
	if r.ConfiguredDuration < 0 {
		return false
	}
	switch r.Status {
	case StatusStopped:
		return r.DueTime == nil && r.PauseAnchor == nil
	case StatusRunning:
		return r.DueTime != nil && r.PauseAnchor == nil
	case StatusPaused:
		return r.DueTime != nil && r.PauseAnchor != nil
	}
	return false
}

// State expands the record into the tagged union. Records that break the
// co-presence rules are repaired: stray anchors on a stopped record are
// dropped, a running record without a due time becomes Stopped, and a paused
// record missing an anchor is kept as a Paused value with zero anchors so that
// Resume falls back to Reset.
func (r Record) State() State {
	switch r.Status {
	case StatusRunning:
		if r.DueTime == nil {
			return Stopped{}
		}
		return Running{Due: *r.DueTime}
	case StatusPaused:
		var p Paused
		if r.DueTime != nil {
			p.Due = *r.DueTime
		}
		if r.PauseAnchor != nil {
			p.Anchor = *r.PauseAnchor
		}
		return p
	}
	return Stopped{}
}

// Equal compares two records field by field; times compare as instants.
func (r Record) Equal(o Record) bool {
	return r.Status == o.Status &&
		r.ConfiguredDuration == o.ConfiguredDuration &&
		equalTime(r.DueTime, o.DueTime) &&
		equalTime(r.PauseAnchor, o.PauseAnchor) &&
		equalInt(r.SoundID, o.SoundID)
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func equalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func timePtr(t time.Time) *time.Time { return &t }

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IntPtr is a convenience for optional sound ids.
func IntPtr(v int) *int { return &v }
