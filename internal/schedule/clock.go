package schedule

import "time"

// Clock supplies the notion of "now" to everything that reasons about time:
// slot boundary checks, status reconciliation, availability ceilings. Business
// logic never reads the system clock directly, so the whole service can be
// driven by a simulated clock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. Used for tests and for the
// admin-configured simulated clock.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
