package scheduler

import "time"

// Clock supplies the current time.
// Injecting it keeps the run predicate deterministic under test.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
