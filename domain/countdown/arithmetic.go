package countdown

import "time"

// Remaining returns the time left on st at now.
//
// The result depends only on absolute anchors, so it carries no error from
// how often or how irregularly it is polled. While paused the elapsed pause
// is added back because the due time has not moved.
func Remaining(now time.Time, st State) time.Duration {
	switch v := st.(type) {
	case Running:
		return v.Due.Sub(now)
	case Paused:
		if v.Due.IsZero() || v.Anchor.IsZero() {
			return 0
		}
		return v.Due.Add(now.Sub(v.Anchor)).Sub(now)
	}
	return 0
}

// Fraction returns remaining/configured. It may be negative past the due
// time; display code clamps it.
func Fraction(remaining, configured time.Duration) float64 {
	if configured <= 0 {
		return 0
	}
	return float64(remaining) / float64(configured)
}

// Compute derives the display values for st at now.
func Compute(now time.Time, st State, configured time.Duration) Derived {
	if st == nil || st.Status() == StatusStopped {
		return stoppedDerived
	}
	rem := Remaining(now, st)
	return Derived{Remaining: rem, Fraction: Fraction(rem, configured)}
}
