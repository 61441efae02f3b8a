package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/zoobz-io/clockz"

	"github.com/soocke/countdown-go/config"
	"github.com/soocke/countdown-go/debug"
	"github.com/soocke/countdown-go/ui/theme"
	"github.com/soocke/countdown-go/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

type app struct {
	config *config.Config
	logger *slog.Logger
	c      *AppContainer
	start  time.Time
	exited bool
}

// NewApp builds the container and configures the main window.
func NewApp(title string, cfg *config.Config, logger *slog.Logger) (*app, error) {
	c, err := BuildContainer(cfg, logger, clockz.RealClock, view.TkScheduler{})
	if err != nil {
		return nil, err
	}
	a := &app{config: cfg, logger: logger, c: c, start: time.Now()}

	App.WmTitle(title)
	theme.SetDark(cfg.DarkMode)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", cfg.WindowWidth, cfg.WindowHeight))
	return a, nil
}

// Start builds the UI and blocks in the Tk event loop until the window closes.
func (a *app) Start() {
	p := a.c.Presenter
	a.c.RootView.Build(a.c.SoundOptions(), view.Handlers{
		OnCancel:     p.CancelPressed,
		OnStartPause: p.StartPausePressed,
		OnDuration:   p.DurationChanged,
		OnSound:      p.SoundChanged,
		OnExit:       a.exitHandler,
	})

	// Minimizing the window stops display ticks; restoring refreshes. Tk
	// delivers <Map> once per child at startup and ViewAppeared ignores repeats.
	Bind(App, "<Unmap>", Command(p.ViewDisappeared))
	Bind(App, "<Map>", Command(p.ViewAppeared))

	if a.config.Debug {
		status := a.c.timerStatus(a.start)
		debug.StartGoroutineLogger(5*time.Second, a.logger, status)
		debug.StartMemLogger(10*time.Second, a.logger, status)
	}

	p.ViewAppeared()
	App.Wait()
	a.shutdown()
}

func (a *app) exitHandler() {
	if a.exited {
		return
	}
	a.exited = true
	a.c.Presenter.ViewDisappeared()
	Destroy(App)
}

func (a *app) shutdown() {
	a.c.Presenter.ViewDisappeared()
	if err := a.c.Close(); err != nil {
		a.logger.Error("shutdown", "error", err)
		return
	}
	a.logger.Info("timer state flushed", "status", a.c.Machine.Status().String())
}
