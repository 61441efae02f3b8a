package alarm

import (
	"log/slog"
)

// BeepCodes resolves a sound id to a platform beep code.
type BeepCodes interface {
	Beep(id *int) (uint32, bool)
}

// Notifiers fans an alert out to several notifiers in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(a Alert) {
	for _, n := range ns {
		if n != nil {
			n.Notify(a)
		}
	}
}

// LogNotifier records alerts in the log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(a Alert) {
	if n.Logger == nil {
		return
	}
	attrs := []any{"id", a.ID, "title", a.Title, "due", a.Due}
	if a.SoundID != nil {
		attrs = append(attrs, "sound_id", *a.SoundID)
	}
	n.Logger.Info("timer alarm", attrs...)
}

// BeepNotifier plays the platform beep for the alert's sound.
type BeepNotifier struct {
	Codes  BeepCodes
	Logger *slog.Logger
}

func (n BeepNotifier) Notify(a Alert) {
	code := defaultBeep
	if n.Codes != nil {
		if c, ok := n.Codes.Beep(a.SoundID); ok {
			code = c
		}
	}
	if err := beep(code); err != nil && n.Logger != nil {
		n.Logger.Warn("alarm beep failed", "error", err, "code", code)
	}
}
