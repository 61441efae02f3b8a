package presenter

import (
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/countdown-go/domain/countdown"
	"github.com/soocke/countdown-go/ui/model"
)

// TimerMachine narrows the countdown machine to what the presenter drives.
type TimerMachine interface {
	Start() error
	Pause() error
	Resume() error
	Reset() error
	SetConfiguredDuration(d time.Duration) error
	SetSoundID(id *int)
	TickUpdate(now time.Time, forced bool) countdown.Derived
	Snapshot() countdown.Snapshot
	MinDuration() time.Duration
	AddListener(l countdown.Listener)
}

// TimerView is the display contract of the timer screen. One setter per
// projected field; the presenter only calls a setter when its value changed.
type TimerView interface {
	SetLeftEnabled(enabled bool)
	SetRightControl(label string, emphasis model.Emphasis, enabled bool)
	SetDueLabel(text string)
	SetPaused(paused bool)
	SetRemainingLabel(text string)
	SetRemainingFraction(f float64)
	SetSoundLabel(text string)
	SetPickerVisible(visible bool)
	// SetSelection shows the configured duration and sound in the picker.
	SetSelection(configured time.Duration, soundID *int)
}

type selection struct {
	configured time.Duration
	hasSound   bool
	sound      int
}

// TimerPresenter translates view input into machine operations and renders
// machine snapshots into the view.
type TimerPresenter struct {
	machine TimerMachine
	view    TimerView
	sounds  model.SoundNamer
	ticker  *TickController
	now     func() time.Time
	logger  *slog.Logger

	mu       sync.Mutex
	visible  bool
	rendered bool
	last     model.Projection
	lastSel  selection
}

// NewTimerPresenter wires the presenter to machine and view. Ticks are
// scheduled through sched every interval while the view is visible and the
// timer runs.
func NewTimerPresenter(machine TimerMachine, view TimerView, sounds model.SoundNamer, sched Scheduler, interval time.Duration, now func() time.Time, logger *slog.Logger) *TimerPresenter {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &TimerPresenter{machine: machine, view: view, sounds: sounds, now: now, logger: logger}
	p.ticker = NewTickController(sched, interval, now, p.tick)
	if machine != nil {
		machine.AddListener(p.onChange)
	}
	return p
}

// CancelPressed handles the left control.
func (p *TimerPresenter) CancelPressed() {
	if p == nil || p.machine == nil {
		return
	}
	if err := p.machine.Reset(); err != nil {
		p.logger.Warn("reset rejected", "error", err)
	}
}

// StartPausePressed handles the right control: start when stopped, pause when
// running, resume when paused.
func (p *TimerPresenter) StartPausePressed() {
	if p == nil || p.machine == nil {
		return
	}
	var err error
	switch p.machine.Snapshot().Status() {
	case countdown.StatusStopped:
		err = p.machine.Start()
	case countdown.StatusRunning:
		err = p.machine.Pause()
	case countdown.StatusPaused:
		err = p.machine.Resume()
	}
	if err != nil {
		p.logger.Warn("start/pause rejected", "error", err)
	}
}

// DurationChanged applies a new configured duration from the picker.
func (p *TimerPresenter) DurationChanged(d time.Duration) {
	if p == nil || p.machine == nil {
		return
	}
	if err := p.machine.SetConfiguredDuration(d); err != nil {
		p.logger.Warn("duration rejected", "duration", d, "error", err)
		p.render(p.machine.Snapshot())
	}
}

// SoundChanged applies a sound selection; nil selects the default sound.
func (p *TimerPresenter) SoundChanged(id *int) {
	if p == nil || p.machine == nil {
		return
	}
	p.machine.SetSoundID(id)
}

// ViewAppeared refreshes the view and resumes ticking if the timer runs.
// Calls while the view is already visible do nothing.
func (p *TimerPresenter) ViewAppeared() {
	if p == nil || p.machine == nil {
		return
	}
	p.mu.Lock()
	if p.visible {
		p.mu.Unlock()
		return
	}
	p.visible = true
	p.mu.Unlock()

	p.machine.TickUpdate(p.now(), true)
	snap := p.machine.Snapshot()
	if snap.Status() == countdown.StatusRunning {
		p.ticker.Start()
	}
	p.render(snap)
}

// ViewDisappeared stops ticking. The timer itself keeps its state.
func (p *TimerPresenter) ViewDisappeared() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.visible = false
	p.mu.Unlock()
	p.ticker.Stop()
}

// Ticking reports whether periodic updates are active.
func (p *TimerPresenter) Ticking() bool { return p != nil && p.ticker.Active() }

func (p *TimerPresenter) tick(now time.Time) {
	p.machine.TickUpdate(now, false)
	p.render(p.machine.Snapshot())
}

func (p *TimerPresenter) onChange(prev, next countdown.Snapshot) {
	p.mu.Lock()
	visible := p.visible
	p.mu.Unlock()

	switch {
	case next.Status() != countdown.StatusRunning:
		p.ticker.Stop()
	case visible && prev.Status() != countdown.StatusRunning:
		p.ticker.Start()
	}
	if next.Expired {
		p.logger.Info("countdown finished")
	}
	p.render(next)
}

func (p *TimerPresenter) render(s countdown.Snapshot) {
	if p.view == nil {
		return
	}
	proj := model.Project(s, p.machine.MinDuration(), p.sounds)
	sel := selection{configured: s.Configured}
	if s.SoundID != nil {
		sel.hasSound, sel.sound = true, *s.SoundID
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	prev, first := p.last, !p.rendered
	p.last, p.rendered = proj, true

	if first || proj.LeftEnabled != prev.LeftEnabled {
		p.view.SetLeftEnabled(proj.LeftEnabled)
	}
	if first || proj.RightLabel != prev.RightLabel || proj.RightEmphasis != prev.RightEmphasis || proj.RightEnabled != prev.RightEnabled {
		p.view.SetRightControl(proj.RightLabel, proj.RightEmphasis, proj.RightEnabled)
	}
	if first || proj.DueLabel != prev.DueLabel {
		p.view.SetDueLabel(proj.DueLabel)
	}
	if first || proj.Paused != prev.Paused {
		p.view.SetPaused(proj.Paused)
	}
	if first || proj.RemainingLabel != prev.RemainingLabel {
		p.view.SetRemainingLabel(proj.RemainingLabel)
	}
	if first || proj.RemainingFraction != prev.RemainingFraction {
		p.view.SetRemainingFraction(proj.RemainingFraction)
	}
	if first || proj.SoundLabel != prev.SoundLabel {
		p.view.SetSoundLabel(proj.SoundLabel)
	}
	if first || proj.PickerVisible != prev.PickerVisible {
		p.view.SetPickerVisible(proj.PickerVisible)
	}
	if first || sel != p.lastSel {
		p.lastSel = sel
		var id *int
		if sel.hasSound {
			id = countdown.IntPtr(sel.sound)
		}
		p.view.SetSelection(sel.configured, id)
	}
}

var _ TimerMachine = (*countdown.Machine)(nil)
