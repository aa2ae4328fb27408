package timeofday

import "time"

// Window is a half-open time-of-day range [Earliest, Latest) used to decide
// whether an event or scheduled run is relevant today.
//
// Callers are expected to keep Earliest before Latest; an inverted window
// contains nothing.
type Window struct {
	Earliest TimeOfDay
	Latest   TimeOfDay
}

// Contains reports whether instant falls within the window on ref's day:
// Earliest ≤ instant < Latest.
func (w Window) Contains(instant, ref time.Time) bool {
	start := w.Earliest.At(ref)
	end := w.Latest.At(ref)
	return !instant.Before(start) && instant.Before(end)
}

// String renders the window as "HH:MM-HH:MM".
func (w Window) String() string {
	return w.Earliest.String() + "-" + w.Latest.String()
}
