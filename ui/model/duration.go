package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Preset is a picker entry.
type Preset struct {
	Label    string
	Duration time.Duration
}

// DurationPresets are offered by the picker in display order.
var DurationPresets = []Preset{
	{"1 min", time.Minute},
	{"3 min", 3 * time.Minute},
	{"5 min", 5 * time.Minute},
	{"10 min", 10 * time.Minute},
	{"15 min", 15 * time.Minute},
	{"25 min", 25 * time.Minute},
	{"30 min", 30 * time.Minute},
	{"45 min", 45 * time.Minute},
	{"1 h", time.Hour},
}

// PresetIndex returns the index of the preset matching d, or -1.
func PresetIndex(d time.Duration) int {
	for i, p := range DurationPresets {
		if p.Duration == d {
			return i
		}
	}
	return -1
}

// ParseDuration reads a duration typed by the user. Accepted forms are
// plain seconds ("90"), clock notation ("1:30", "1:02:03") and Go duration
// syntax ("1h30m", "45s"). Negative values are rejected.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if strings.Contains(s, ":") {
		return parseClock(s)
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative duration %q", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

func parseClock(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("parse duration %q: too many fields", s)
	}
	var total time.Duration
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("parse duration %q: bad field %q", s, p)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("parse duration %q: field %q out of range", s, p)
		}
		total = total*60 + time.Duration(n)
	}
	return total * time.Second, nil
}
