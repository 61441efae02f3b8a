package view

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/countdown-go/ui/model"
	"github.com/soocke/countdown-go/ui/presenter"
	"github.com/soocke/countdown-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers receive user input from the root view.
type Handlers struct {
	OnCancel     func()
	OnStartPause func()
	OnDuration   func(time.Duration)
	OnSound      func(id *int)
	OnExit       func()
}

// RootView composes the timer window. It implements presenter.TimerView.
type RootView struct {
	logger *slog.Logger

	Picker Picker

	RemainingLabel *LabelWidget
	PercentLabel   *LabelWidget
	DueLabel       *LabelWidget
	PausedLabel    *LabelWidget
	SoundLabel     *LabelWidget
	CancelButton   *ButtonWidget
	RightButton    *ButtonWidget
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger}
}

// Build constructs the layout and binds h to the controls.
func (rv *RootView) Build(sounds []SoundOption, h Handlers) {
	if rv == nil {
		return
	}
	pal := theme.CurrentPalette()

	// Row 0: remaining time and percentage
	rv.RemainingLabel = Label(Txt("00:00"), Width(10), Borderwidth(1), Relief("ridge"))
	Grid(rv.RemainingLabel, Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.PercentLabel = Label(Txt("100%"), Width(6), Foreground(pal.TextMuted))
	Grid(rv.PercentLabel, Row(0), Column(1), Sticky("w"), Padx("0.4m"), Pady("0.3m"))

	// Row 1: due time, paused marker, sound
	rv.DueLabel = Label(Txt(""), Width(10), Anchor("w"))
	Grid(rv.DueLabel, Row(1), Column(0), Sticky("w"), Padx("0.4m"))
	rv.PausedLabel = Label(Txt(""), Width(8), Foreground(pal.Critical))
	Grid(rv.PausedLabel, Row(1), Column(1), Sticky("w"), Padx("0.4m"))
	rv.SoundLabel = Label(Txt(""), Anchor("w"), Foreground(pal.TextMuted))
	Grid(rv.SoundLabel, Row(2), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"))

	// Row 3: controls
	btnFrame := Frame()
	Grid(btnFrame, Row(3), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.CancelButton = Button(Txt("Cancel"), Command(h.OnCancel), Background(pal.Neutral), Foreground("white"))
	Grid(rv.CancelButton, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.RightButton = Button(Txt(model.LabelStart), Command(h.OnStartPause), Background(pal.Affirmative), Foreground("white"))
	Grid(rv.RightButton, In(btnFrame), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(h.OnExit))
	Grid(exitBtn, In(btnFrame), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Rows 4+: picker
	pickFrame := Frame()
	Grid(pickFrame, Row(4), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.Picker = NewPicker(sounds, h.OnDuration, h.OnSound, rv.logger)
	rv.Picker.Build(pickFrame, 0)
}

func (rv *RootView) SetLeftEnabled(enabled bool) {
	if rv != nil && rv.CancelButton != nil {
		rv.CancelButton.Configure(State(widgetState(enabled)))
	}
}

func (rv *RootView) SetRightControl(label string, emphasis model.Emphasis, enabled bool) {
	if rv == nil || rv.RightButton == nil {
		return
	}
	rv.RightButton.Configure(Txt(label), Background(theme.EmphasisColor(emphasis)), State(widgetState(enabled)))
}

func (rv *RootView) SetDueLabel(text string) {
	if rv != nil && rv.DueLabel != nil {
		if text != "" {
			text = "Ends " + text
		}
		rv.DueLabel.Configure(Txt(text))
	}
}

func (rv *RootView) SetPaused(paused bool) {
	if rv == nil || rv.PausedLabel == nil {
		return
	}
	text := ""
	if paused {
		text = "Paused"
	}
	rv.PausedLabel.Configure(Txt(text))
}

func (rv *RootView) SetRemainingLabel(text string) {
	if rv != nil && rv.RemainingLabel != nil {
		rv.RemainingLabel.Configure(Txt(text))
	}
}

func (rv *RootView) SetRemainingFraction(f float64) {
	if rv != nil && rv.PercentLabel != nil {
		rv.PercentLabel.Configure(Txt(fmt.Sprintf("%.0f%%", f*100)))
	}
}

func (rv *RootView) SetSoundLabel(text string) {
	if rv != nil && rv.SoundLabel != nil {
		rv.SoundLabel.Configure(Txt("Sound: " + text))
	}
}

// SetPickerVisible locks the picker while a run is in progress.
func (rv *RootView) SetPickerVisible(visible bool) {
	if rv != nil && rv.Picker != nil {
		rv.Picker.SetEditable(visible)
	}
}

func (rv *RootView) SetSelection(configured time.Duration, soundID *int) {
	if rv != nil && rv.Picker != nil {
		rv.Picker.Select(configured, soundID)
	}
}

func widgetState(enabled bool) string {
	if enabled {
		return "normal"
	}
	return "disabled"
}

var _ presenter.TimerView = (*RootView)(nil)
