package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/zoobz-io/clockz"

	"github.com/soocke/countdown-go/config"
	"github.com/soocke/countdown-go/domain/alarm"
	"github.com/soocke/countdown-go/domain/countdown"
	"github.com/soocke/countdown-go/domain/sound"
	"github.com/soocke/countdown-go/store"
	"github.com/soocke/countdown-go/ui/presenter"
	"github.com/soocke/countdown-go/ui/view"
)

// AppContainer assembles the timer, its collaborators, the presenter and the
// root view.
type AppContainer struct {
	Config    *config.Config
	Logger    *slog.Logger
	Clock     clockz.Clock
	Sounds    *sound.Catalog
	Store     countdown.Store
	Alarm     *alarm.Scheduler
	Machine   *countdown.Machine
	Persister *countdown.Persister
	RootView  *view.RootView
	Presenter *presenter.TimerPresenter

	closers []io.Closer
}

// BuildContainer constructs all components. sched drives display ticks; the
// Tk app passes view.TkScheduler. No widgets are created here.
func BuildContainer(cfg *config.Config, logger *slog.Logger, c clockz.Clock, sched presenter.Scheduler) (*AppContainer, error) {
	if c == nil {
		c = clockz.RealClock
	}
	ac := &AppContainer{Config: cfg, Logger: logger, Clock: c, Sounds: sound.Builtin()}

	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	ac.Store = st
	if cl, ok := st.(io.Closer); ok {
		ac.closers = append(ac.closers, cl)
	}

	rec := countdown.LoadRecord(st, countdown.DefaultRecord(cfg.DefaultDuration()), logger)

	ac.Alarm = alarm.NewScheduler(c, alarm.Notifiers{
		alarm.LogNotifier{Logger: logger},
		alarm.BeepNotifier{Codes: ac.Sounds, Logger: logger},
	}, logger)

	ac.Machine = countdown.NewMachine(rec,
		countdown.WithClock(c),
		countdown.WithAlarm(ac.Alarm),
		countdown.WithLogger(logger),
		countdown.WithExpiryGrace(cfg.ExpiryGrace()),
		countdown.WithMinDuration(cfg.MinDuration()),
		countdown.WithAlarmTitle(cfg.AlarmTitle),
		countdown.WithStrictTransitions(cfg.Debug),
	)
	ac.Machine.RearmAlarm()

	ac.Persister = countdown.NewPersister(st, rec, logger)
	ac.Machine.AddListener(ac.Persister.OnChange)

	ac.RootView = view.NewRootView(logger)
	ac.Presenter = presenter.NewTimerPresenter(ac.Machine, ac.RootView, ac.Sounds, sched, cfg.TickInterval(), c.Now, logger)
	return ac, nil
}

// SoundOptions lists the selector entries, default sound first.
func (ac *AppContainer) SoundOptions() []view.SoundOption {
	opts := []view.SoundOption{{ID: nil, Name: ac.Sounds.DefaultName()}}
	for _, e := range ac.Sounds.Entries() {
		opts = append(opts, view.SoundOption{ID: countdown.IntPtr(e.ID), Name: e.Name})
	}
	return opts
}

// Close flushes the pending record and releases the store.
func (ac *AppContainer) Close() error {
	if ac == nil {
		return nil
	}
	if ac.Persister != nil {
		ac.Persister.Close()
	}
	var errs []error
	for _, cl := range ac.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	ac.closers = nil
	return errors.Join(errs...)
}

func openStore(cfg *config.Config) (countdown.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		s, err := store.OpenSQLite(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	default:
		return store.NewFileStore(cfg.StorePath), nil
	}
}

// timerStatus reports timer state to the debug loggers.
func (ac *AppContainer) timerStatus(start time.Time) func() []any {
	return func() []any {
		snap := ac.Machine.Snapshot()
		return []any{
			"status", snap.Status().String(),
			"remaining", snap.Derived.Remaining.String(),
			"ticking", ac.Presenter.Ticking(),
			"uptime", ac.Clock.Since(start).Round(time.Second).String(),
		}
	}
}
