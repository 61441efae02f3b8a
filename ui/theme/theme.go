package theme

// Palette and style setup for the timer window. Colors follow the current
// light/dark mode; emphasis colors tint the right-hand control.

import (
	"github.com/soocke/countdown-go/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg          = "#f7f9fb" // app background
	ColorSurface     = "#ffffff"
	ColorBorder      = "#d0d7de"
	ColorAffirmative = "#16a34a" // start / resume
	ColorCritical    = "#ea580c" // pause
	ColorNeutral     = "#64748b" // cancel
	ColorText        = "#1e293b"
	ColorTextMuted   = "#64748b"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg       string
	Surface     string
	Border      string
	Affirmative string
	Critical    string
	Neutral     string
	Text        string
	TextMuted   string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:       "#0f172a",
			Surface:     "#1e293b",
			Border:      "#334155",
			Affirmative: "#22c55e",
			Critical:    "#f97316",
			Neutral:     "#475569",
			Text:        "#f1f5f9",
			TextMuted:   "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:       ColorBg,
		Surface:     ColorSurface,
		Border:      ColorBorder,
		Affirmative: ColorAffirmative,
		Critical:    ColorCritical,
		Neutral:     ColorNeutral,
		Text:        ColorText,
		TextMuted:   ColorTextMuted,
	}
}

// EmphasisColor maps a control emphasis to its background color.
func EmphasisColor(e model.Emphasis) string {
	p := CurrentPalette()
	if e == model.EmphasisCritical {
		return p.Critical
	}
	return p.Affirmative
}

var darkMode bool

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles() }

// SetDark toggles dark mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles()
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles() {
	mode := "azure light"
	if darkMode {
		mode = "azure dark"
	}
	_ = ActivateTheme(mode)
	App.Configure(Background(CurrentPalette().AppBg))
}
