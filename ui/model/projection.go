package model

import (
	"fmt"
	"time"

	"github.com/soocke/countdown-go/domain/countdown"
)

// Emphasis is the visual weight of the right-hand control.
type Emphasis int

const (
	EmphasisAffirmative Emphasis = iota
	EmphasisCritical
)

func (e Emphasis) String() string {
	switch e {
	case EmphasisAffirmative:
		return "affirmative"
	case EmphasisCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Right-hand control labels.
const (
	LabelStart  = "Start"
	LabelPause  = "Pause"
	LabelResume = "Resume"
)

// SoundNamer resolves sound ids for display.
type SoundNamer interface {
	NameFor(id *int) (string, bool)
	DefaultName() string
}

// Projection is everything the timer screen displays. It is a pure function
// of a machine snapshot; see Project.
type Projection struct {
	LeftEnabled       bool
	RightLabel        string
	RightEmphasis     Emphasis
	RightEnabled      bool
	DueLabel          string
	Paused            bool
	RemainingLabel    string
	RemainingFraction float64 // clamped to [0,1]
	SoundLabel        string
	PickerVisible     bool
}

// Project maps a snapshot to display values. minDuration is the threshold the
// configured duration must exceed for the right-hand control to be enabled.
func Project(s countdown.Snapshot, minDuration time.Duration, sounds SoundNamer) Projection {
	status := s.Status()
	p := Projection{
		LeftEnabled:       status != countdown.StatusStopped,
		RightEnabled:      s.Configured > minDuration,
		Paused:            status == countdown.StatusPaused,
		RemainingLabel:    FormatRemaining(s.Derived.Remaining),
		RemainingFraction: clamp01(s.Derived.Fraction),
		PickerVisible:     status == countdown.StatusStopped,
	}
	switch status {
	case countdown.StatusRunning:
		p.RightLabel, p.RightEmphasis = LabelPause, EmphasisCritical
	case countdown.StatusPaused:
		p.RightLabel, p.RightEmphasis = LabelResume, EmphasisAffirmative
	default:
		p.RightLabel, p.RightEmphasis = LabelStart, EmphasisAffirmative
	}
	if due, ok := s.DueTime(); ok {
		p.DueLabel = FormatDue(due)
	}
	p.SoundLabel = soundLabel(s.SoundID, sounds)
	return p
}

// FormatRemaining renders a countdown as MM:SS, or H:MM:SS from an hour up.
// Partial seconds round up so the display reaches 00:00 exactly at zero;
// negative values render as zero.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64((d + time.Second - 1) / time.Second)
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatDue renders the wall-clock time a run ends.
func FormatDue(t time.Time) string { return t.Format("15:04") }

func soundLabel(id *int, sounds SoundNamer) string {
	if sounds == nil {
		return ""
	}
	if name, ok := sounds.NameFor(id); ok {
		return name
	}
	return sounds.DefaultName()
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
