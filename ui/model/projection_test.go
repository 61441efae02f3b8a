package model

import (
	"testing"
	"time"

	"github.com/soocke/countdown-go/domain/countdown"
)

var t0 = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type fakeSounds map[int]string

func (f fakeSounds) NameFor(id *int) (string, bool) {
	if id == nil {
		return "", false
	}
	n, ok := f[*id]
	return n, ok
}

func (fakeSounds) DefaultName() string { return "Default" }

var sounds = fakeSounds{1: "Radar"}

const minDuration = 100 * time.Millisecond

func TestProject_ByStatus(t *testing.T) {
	due := t0.Add(10 * time.Minute)
	cases := []struct {
		name         string
		snap         countdown.Snapshot
		left         bool
		rightLabel   string
		emphasis     Emphasis
		dueLabel     string
		paused       bool
		pickerVisible bool
	}{
		{
			name:         "stopped",
			snap:         countdown.Snapshot{State: countdown.Stopped{}, Configured: 600 * time.Second, Derived: countdown.Derived{Fraction: 1}},
			rightLabel:   LabelStart,
			emphasis:     EmphasisAffirmative,
			pickerVisible: true,
		},
		{
			name:       "running",
			snap:       countdown.Snapshot{State: countdown.Running{Due: due}, Configured: 600 * time.Second, Derived: countdown.Derived{Remaining: 590 * time.Second, Fraction: 590.0 / 600}},
			left:       true,
			rightLabel: LabelPause,
			emphasis:   EmphasisCritical,
			dueLabel:   "09:10",
		},
		{
			name:       "paused",
			snap:       countdown.Snapshot{State: countdown.Paused{Due: due, Anchor: t0}, Configured: 600 * time.Second},
			left:       true,
			rightLabel: LabelResume,
			emphasis:   EmphasisAffirmative,
			dueLabel:   "09:10",
			paused:     true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Project(tc.snap, minDuration, sounds)
			if p.LeftEnabled != tc.left || p.RightLabel != tc.rightLabel || p.RightEmphasis != tc.emphasis {
				t.Fatalf("controls: %+v", p)
			}
			if p.DueLabel != tc.dueLabel || p.Paused != tc.paused || p.PickerVisible != tc.pickerVisible {
				t.Fatalf("labels/flags: %+v", p)
			}
			if !p.RightEnabled {
				t.Fatalf("600s configured should enable the right control")
			}
		})
	}
}

func TestProject_RightEnabledThreshold(t *testing.T) {
	for _, tc := range []struct {
		configured time.Duration
		want       bool
	}{
		{0, false},
		{minDuration, false},
		{minDuration + time.Millisecond, true},
	} {
		p := Project(countdown.Snapshot{State: countdown.Stopped{}, Configured: tc.configured}, minDuration, sounds)
		if p.RightEnabled != tc.want {
			t.Fatalf("configured %v: enabled=%v want %v", tc.configured, p.RightEnabled, tc.want)
		}
	}
}

func TestProject_RemainingAndFraction(t *testing.T) {
	p := Project(countdown.Snapshot{
		State:      countdown.Running{Due: t0},
		Configured: time.Minute,
		Derived:    countdown.Derived{Remaining: -300 * time.Millisecond, Fraction: -0.005},
	}, minDuration, sounds)
	if p.RemainingLabel != "00:00" || p.RemainingFraction != 0 {
		t.Fatalf("negative values should clamp: %+v", p)
	}
}

func TestProject_SoundLabel(t *testing.T) {
	one, nine := 1, 9
	for _, tc := range []struct {
		id   *int
		want string
	}{
		{nil, "Default"},
		{&one, "Radar"},
		{&nine, "Default"},
	} {
		p := Project(countdown.Snapshot{State: countdown.Stopped{}, SoundID: tc.id}, minDuration, sounds)
		if p.SoundLabel != tc.want {
			t.Fatalf("sound %v: label %q want %q", tc.id, p.SoundLabel, tc.want)
		}
	}
}

func TestFormatRemaining(t *testing.T) {
	for _, tc := range []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-5 * time.Second, "00:00"},
		{1 * time.Millisecond, "00:01"},
		{590 * time.Second, "09:50"},
		{589*time.Second + 100*time.Millisecond, "09:50"},
		{time.Hour, "1:00:00"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2:03:04"},
	} {
		if got := FormatRemaining(tc.d); got != tc.want {
			t.Fatalf("FormatRemaining(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
