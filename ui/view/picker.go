package view

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/soocke/countdown-go/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SoundOption is one entry of the sound selector. A nil ID is the default sound.
type SoundOption struct {
	ID   *int
	Name string
}

// Picker holds the duration and sound selection widgets.
type Picker interface {
	Build(parent *FrameWidget, startRow int) (endRow int)
	SetEditable(enabled bool)
	Select(configured time.Duration, soundID *int)
}

type picker struct {
	logger     *slog.Logger
	sounds     []SoundOption
	onDuration func(time.Duration)
	onSound    func(id *int)
	editable   bool

	presets *TComboboxWidget
	custom  *TextWidget
	apply   *ButtonWidget
	sound   *TComboboxWidget
}

// NewPicker creates the picker; callbacks receive user selections.
func NewPicker(sounds []SoundOption, onDuration func(time.Duration), onSound func(id *int), logger *slog.Logger) Picker {
	return &picker{logger: logger, sounds: sounds, onDuration: onDuration, onSound: onSound, editable: true}
}

func (v *picker) Build(parent *FrameWidget, startRow int) (row int) {
	row = startRow
	labels := make([]string, len(model.DurationPresets))
	for i, p := range model.DurationPresets {
		labels[i] = p.Label
	}

	Grid(Label(Txt("Duration"), Anchor("w")), In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.presets = TCombobox(Values(labels), Width(10))
	Grid(v.presets, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	Bind(v.presets, "<<ComboboxSelected>>", Command(func() {
		idx, err := strconv.Atoi(v.presets.Current(nil))
		if err != nil || idx < 0 || idx >= len(model.DurationPresets) {
			v.logf("preset selection parse error", err)
			return
		}
		v.emitDuration(model.DurationPresets[idx].Duration)
	}))
	row++

	Grid(Label(Txt("Custom (mm:ss)"), Anchor("w")), In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.custom = Text(Height(1), Width(10))
	Grid(v.custom, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.apply = Button(Txt("Set"), Command(v.applyCustom))
	Grid(v.apply, In(parent), Row(row), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	row++

	names := make([]string, len(v.sounds))
	for i, s := range v.sounds {
		names[i] = s.Name
	}
	if len(names) == 0 {
		names = []string{"<none>"}
	}
	Grid(Label(Txt("Sound"), Anchor("w")), In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.sound = TCombobox(Values(names), Width(10))
	Grid(v.sound, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	Bind(v.sound, "<<ComboboxSelected>>", Command(func() {
		idx, err := strconv.Atoi(v.sound.Current(nil))
		if err != nil || idx < 0 || idx >= len(v.sounds) {
			v.logf("sound selection parse error", err)
			return
		}
		if v.onSound != nil {
			v.onSound(v.sounds[idx].ID)
		}
	}))
	row++
	return row
}

// SetEditable toggles the duration widgets. The sound selector stays usable.
func (v *picker) SetEditable(enabled bool) {
	v.editable = enabled
	state := "disabled"
	if enabled {
		state = "normal"
	}
	if v.custom != nil {
		v.custom.Configure(State(state))
	}
	if v.apply != nil {
		v.apply.Configure(State(state))
	}
	if v.presets != nil {
		if enabled {
			state = "readonly"
		}
		v.presets.Configure(State(state))
	}
}

// Select reflects the machine's configured duration and sound.
func (v *picker) Select(configured time.Duration, soundID *int) {
	if v.presets != nil {
		if i := model.PresetIndex(configured); i >= 0 {
			v.presets.Current(i)
		}
	}
	if v.custom != nil {
		// A disabled Text widget ignores edits.
		v.custom.Configure(State("normal"))
		v.custom.Delete("1.0", END)
		v.custom.Insert("1.0", model.FormatRemaining(configured))
		if !v.editable {
			v.custom.Configure(State("disabled"))
		}
	}
	if v.sound != nil {
		for i, s := range v.sounds {
			if sameID(s.ID, soundID) {
				v.sound.Current(i)
				break
			}
		}
	}
}

func (v *picker) applyCustom() {
	if v.custom == nil {
		return
	}
	text := strings.Join(v.custom.Get("1.0", END), "")
	d, err := model.ParseDuration(text)
	if err != nil {
		v.logf("custom duration rejected", err)
		return
	}
	v.emitDuration(d)
}

func (v *picker) emitDuration(d time.Duration) {
	if v.onDuration != nil {
		v.onDuration(d)
	}
}

func (v *picker) logf(msg string, err error) {
	if v.logger != nil {
		v.logger.Warn(msg, "error", err)
	}
}

func sameID(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
